package quota

import (
	"fmt"
	"time"
)

// Subject is a study material with a fixed amount of work.
// The engine reads subjects but never modifies them.
type Subject struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	TotalUnits     int        `json:"total_units"`
	CompletedUnits int        `json:"completed_units"`
	ExamDate       *time.Time `json:"exam_date,omitempty"`
	ReportDeadline *time.Time `json:"report_deadline,omitempty"`
	BufferDays     *int       `json:"buffer_days,omitempty"` // nil → Settings.ExamBufferDays.
	Priority       Level      `json:"priority,omitempty"`    // zero earns no bonus.
	Importance     Level      `json:"importance,omitempty"`
}

// Remaining returns the units left to complete, never negative.
func (s Subject) Remaining() int {
	return max(0, s.TotalUnits-s.CompletedUnits)
}

// Completion returns the completed fraction in [0, 1].
// A subject with no units counts as fully complete.
func (s Subject) Completion() float64 {
	if s.TotalUnits <= 0 {
		return 1
	}
	return min(1, float64(s.CompletedUnits)/float64(s.TotalUnits))
}

// IsComplete reports whether every unit has been completed.
func (s Subject) IsComplete() bool {
	return s.Completion() >= 1
}

// Deadline returns the earlier of ExamDate and ReportDeadline,
// or nil when the subject has neither.
func (s Subject) Deadline() *time.Time {
	switch {
	case s.ExamDate == nil:
		return s.ReportDeadline
	case s.ReportDeadline == nil:
		return s.ExamDate
	case s.ReportDeadline.Before(*s.ExamDate):
		return s.ReportDeadline
	default:
		return s.ExamDate
	}
}

// bufferDays resolves the subject's buffer against the global default.
func (s Subject) bufferDays(settings Settings) int {
	if s.BufferDays != nil {
		return *s.BufferDays
	}
	return settings.ExamBufferDays
}

// Validate checks the subject's invariants: a non-empty ID,
// 0 ≤ CompletedUnits ≤ TotalUnits, a non-negative buffer, and
// valid levels where set.
func (s Subject) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidSubject)
	}
	if s.TotalUnits < 0 || s.CompletedUnits < 0 || s.CompletedUnits > s.TotalUnits {
		return fmt.Errorf("%w: %s: completed %d of %d units",
			ErrInvalidSubject, s.ID, s.CompletedUnits, s.TotalUnits)
	}
	if s.BufferDays != nil && *s.BufferDays < 0 {
		return fmt.Errorf("%w: %s: buffer days %d must not be negative",
			ErrInvalidSubject, s.ID, *s.BufferDays)
	}
	if s.Priority != 0 && !s.Priority.IsValid() {
		return fmt.Errorf("%w: %s: priority %v", ErrInvalidSubject, s.ID, s.Priority)
	}
	if s.Importance != 0 && !s.Importance.IsValid() {
		return fmt.Errorf("%w: %s: importance %v", ErrInvalidSubject, s.ID, s.Importance)
	}
	return nil
}

// clone returns a deep copy of the subject. Pointer fields are copied by value.
func (s Subject) clone() Subject {
	out := s
	if s.ExamDate != nil {
		v := *s.ExamDate
		out.ExamDate = &v
	}
	if s.ReportDeadline != nil {
		v := *s.ReportDeadline
		out.ReportDeadline = &v
	}
	if s.BufferDays != nil {
		v := *s.BufferDays
		out.BufferDays = &v
	}
	return out
}
