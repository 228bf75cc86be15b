package quota

import (
	"math"
	"testing"
	"time"
)

const epsilon = 1e-9

// t0 is a Wednesday.
var t0 = time.Date(2025, 6, 18, 10, 0, 0, 0, time.UTC)

func assertFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %.6f, want %.6f (diff %.6f)", name, got, want, math.Abs(got-want))
	}
}

func daysFrom(base time.Time, days int) *time.Time {
	d := StartOfDay(base).AddDate(0, 0, days)
	return &d
}

func intPtr(v int) *int { return &v }

func mustDaily(t *testing.T, subjects []Subject, settings Settings, lookup ProgressLookup, now time.Time) PeriodQuota {
	t.Helper()
	q, err := ComputeDailyQuota(subjects, settings, lookup, now)
	if err != nil {
		t.Fatalf("ComputeDailyQuota: %v", err)
	}
	return q
}

func mustWeekly(t *testing.T, subjects []Subject, settings Settings, lookup ProgressLookup, now time.Time) PeriodQuota {
	t.Helper()
	q, err := ComputeWeeklyQuota(subjects, settings, lookup, now)
	if err != nil {
		t.Fatalf("ComputeWeeklyQuota: %v", err)
	}
	return q
}

// scenarioSubject is 100 units with 20 done and an exam ten days out.
func scenarioSubject() Subject {
	return Subject{
		ID:             "math",
		Name:           "Mathematics",
		TotalUnits:     100,
		CompletedUnits: 20,
		ExamDate:       daysFrom(t0, 10),
		BufferDays:     intPtr(0),
		Priority:       Medium,
		Importance:     Medium,
	}
}

func scenarioSettings(dailyMinutes int) Settings {
	return DefaultSettings().Apply(SettingsOverrides{
		DailyStudyMinutes: &dailyMinutes,
		AverageUnitTime:   func() *float64 { v := 2.0; return &v }(),
	})
}
