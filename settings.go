package quota

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Default settings values. DefaultSettings returns them as a fresh value.
const (
	DefaultMaxConcurrentSubjects = 3
	DefaultDailyStudyMinutes     = 120
	DefaultStudyDaysPerWeek      = 5
	DefaultAverageUnitTime       = 3.0 // minutes per unit
	DefaultExamBufferDays        = 3
)

var validate = validator.New()

// Settings are the learner's scheduling preferences.
type Settings struct {
	MaxConcurrentSubjects int     `json:"max_concurrent_subjects" validate:"min=1"`
	DailyStudyMinutes     int     `json:"daily_study_minutes" validate:"min=0,max=1440"`
	StudyDaysPerWeek      int     `json:"study_days_per_week" validate:"min=1,max=7"`
	AverageUnitTime       float64 `json:"average_unit_time" validate:"gt=0"` // minutes per unit
	ExamBufferDays        int     `json:"exam_buffer_days" validate:"min=0"`
}

// DefaultSettings returns a new Settings holding the package defaults.
func DefaultSettings() Settings {
	return Settings{
		MaxConcurrentSubjects: DefaultMaxConcurrentSubjects,
		DailyStudyMinutes:     DefaultDailyStudyMinutes,
		StudyDaysPerWeek:      DefaultStudyDaysPerWeek,
		AverageUnitTime:       DefaultAverageUnitTime,
		ExamBufferDays:        DefaultExamBufferDays,
	}
}

// SettingsOverrides lists the fields to replace; nil fields keep their value.
// DailyStudyHours is converted to minutes and is applied before
// DailyStudyMinutes, so an explicit minute value wins.
type SettingsOverrides struct {
	MaxConcurrentSubjects *int     `json:"max_concurrent_subjects,omitempty"`
	DailyStudyHours       *float64 `json:"daily_study_hours,omitempty"`
	DailyStudyMinutes     *int     `json:"daily_study_minutes,omitempty"`
	StudyDaysPerWeek      *int     `json:"study_days_per_week,omitempty"`
	AverageUnitTime       *float64 `json:"average_unit_time,omitempty"`
	ExamBufferDays        *int     `json:"exam_buffer_days,omitempty"`
}

// Apply returns a copy of s with the overrides applied. s is not modified.
func (s Settings) Apply(o SettingsOverrides) Settings {
	out := s
	if o.MaxConcurrentSubjects != nil {
		out.MaxConcurrentSubjects = *o.MaxConcurrentSubjects
	}
	if o.DailyStudyHours != nil {
		out.DailyStudyMinutes = MinutesFromHours(*o.DailyStudyHours)
	}
	if o.DailyStudyMinutes != nil {
		out.DailyStudyMinutes = *o.DailyStudyMinutes
	}
	if o.StudyDaysPerWeek != nil {
		out.StudyDaysPerWeek = *o.StudyDaysPerWeek
	}
	if o.AverageUnitTime != nil {
		out.AverageUnitTime = *o.AverageUnitTime
	}
	if o.ExamBufferDays != nil {
		out.ExamBufferDays = *o.ExamBufferDays
	}
	return out
}

// MinutesFromHours converts a study-hours-per-day figure to whole minutes.
func MinutesFromHours(hours float64) int {
	return int(math.Round(hours * 60))
}

// WeeklyStudyMinutes returns the time budget for a whole week.
func (s Settings) WeeklyStudyMinutes() int {
	return s.DailyStudyMinutes * s.StudyDaysPerWeek
}

// budget returns the time budget for the given period.
func (s Settings) budget(p Period) int {
	if p == Weekly {
		return s.WeeklyStudyMinutes()
	}
	return s.DailyStudyMinutes
}

// Validate checks the settings against their bounds.
// The returned error wraps ErrInvalidSettings.
func (s Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s = %v violates %s=%s", fe.Field(), fe.Value(), fe.Tag(), fe.Param())
	}
	return fmt.Errorf("%w: %s", ErrInvalidSettings, strings.Join(msgs, "; "))
}
