package quota

import (
	"sort"
	"time"
)

// ProgressRecord is one append-only entry in a subject's study log.
type ProgressRecord struct {
	ID         string         `json:"id,omitempty"`
	SubjectID  string         `json:"subject_id"`
	Units      int            `json:"units"`
	RecordedAt time.Time      `json:"recorded_at"`
	Duration   *time.Duration `json:"duration,omitempty"` // optional time spent.
}

// ProgressLookup reads a subject's progress log. Implementations return the
// records with start ≤ RecordedAt < end.
type ProgressLookup interface {
	RecordsInRange(subjectID string, start, end time.Time) ([]ProgressRecord, error)
}

// ProgressLookupFunc adapts a function to the ProgressLookup interface.
type ProgressLookupFunc func(subjectID string, start, end time.Time) ([]ProgressRecord, error)

// RecordsInRange calls f.
func (f ProgressLookupFunc) RecordsInRange(subjectID string, start, end time.Time) ([]ProgressRecord, error) {
	return f(subjectID, start, end)
}

// Records is an in-memory progress log.
type Records []ProgressRecord

var _ ProgressLookup = Records(nil)

// RecordsInRange returns the subject's records inside [start, end),
// ordered by RecordedAt.
func (rs Records) RecordsInRange(subjectID string, start, end time.Time) ([]ProgressRecord, error) {
	var out []ProgressRecord
	for _, r := range rs {
		if r.SubjectID == subjectID && inRange(r.RecordedAt, start, end) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecordedAt.Before(out[j].RecordedAt)
	})
	return out, nil
}

// inRange reports whether start ≤ t < end.
func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
