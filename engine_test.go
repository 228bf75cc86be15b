package quota

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"
)

func quietEngine(concurrency int) *Engine {
	return NewEngine(EngineConfig{
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Concurrency: concurrency,
	})
}

// --- reference scenarios ---

func TestDailyScenarioA(t *testing.T) {
	q := mustDaily(t, []Subject{scenarioSubject()}, scenarioSettings(60), nil, t0)

	if q.ActiveSubjects != 1 {
		t.Fatalf("ActiveSubjects = %d, want 1", q.ActiveSubjects)
	}
	it := q.Items[0]
	assertFloat(t, "AllocatedMinutes", it.AllocatedMinutes, 60)
	if it.UnitsRequired != 30 {
		t.Errorf("UnitsRequired = %d, want 30", it.UnitsRequired)
	}
	if it.EstimatedMinutes != 60 {
		t.Errorf("EstimatedMinutes = %d, want 60", it.EstimatedMinutes)
	}
	if it.PeriodsRemaining != 10 {
		t.Errorf("PeriodsRemaining = %d, want 10", it.PeriodsRemaining)
	}
	if q.TotalUnits != 30 || q.TotalMinutes != 60 {
		t.Errorf("totals = %d units / %d min, want 30 / 60", q.TotalUnits, q.TotalMinutes)
	}
	if it.DailyDistribution != nil {
		t.Error("daily quota should not carry a daily distribution")
	}
}

func TestDailyScenarioB(t *testing.T) {
	q := mustDaily(t, []Subject{scenarioSubject()}, scenarioSettings(10), nil, t0)
	if got := q.Items[0].UnitsRequired; got != 8 {
		t.Errorf("UnitsRequired = %d, want 8", got)
	}
}

func TestDailyScenarioC(t *testing.T) {
	s := scenarioSubject()
	s.ExamDate = nil
	q := mustDaily(t, []Subject{s}, scenarioSettings(60), nil, t0)
	it := q.Items[0]
	if it.UnitsRequired != 30 {
		t.Errorf("UnitsRequired = %d, want 30", it.UnitsRequired)
	}
	if it.PeriodsRemaining != NoDeadline {
		t.Errorf("PeriodsRemaining = %d, want NoDeadline", it.PeriodsRemaining)
	}

	q = mustDaily(t, []Subject{s}, scenarioSettings(10), nil, t0)
	if got := q.Items[0].UnitsRequired; got != 5 {
		t.Errorf("small budget UnitsRequired = %d, want 5", got)
	}
}

func TestDailyScenarioD(t *testing.T) {
	urgent := Subject{ID: "urgent", TotalUnits: 100, ExamDate: daysFrom(t0, 2), BufferDays: intPtr(0), Priority: High}
	relaxed := Subject{ID: "relaxed", TotalUnits: 100, CompletedUnits: 80, Priority: Low}
	q := mustDaily(t, []Subject{relaxed, urgent}, scenarioSettings(40), nil, t0)

	u, _ := q.Item("urgent")
	r, _ := q.Item("relaxed")
	if u.Tier != High || r.Tier != Low {
		t.Fatalf("tiers = %v/%v, want high/low", u.Tier, r.Tier)
	}
	assertFloat(t, "urgent minutes", u.AllocatedMinutes, 30)
	assertFloat(t, "relaxed minutes", r.AllocatedMinutes, 10)
	if q.Items[0].SubjectID != "urgent" {
		t.Errorf("items not ordered by score: first = %s", q.Items[0].SubjectID)
	}
	// urgent: deadline pace ceil(100/2) = 50 beats 15 affordable.
	if u.UnitsRequired != 50 {
		t.Errorf("urgent UnitsRequired = %d, want 50", u.UnitsRequired)
	}
	if r.UnitsRequired != 5 {
		t.Errorf("relaxed UnitsRequired = %d, want 5", r.UnitsRequired)
	}
}

func TestWeeklyScenario(t *testing.T) {
	q := mustWeekly(t, []Subject{scenarioSubject()}, scenarioSettings(60), nil, t0)

	if !q.Start.Equal(time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Start = %v, want Monday", q.Start)
	}
	it := q.Items[0]
	assertFloat(t, "AllocatedMinutes", it.AllocatedMinutes, 300)
	// weekly horizon floor(10/7) = 1, so the whole remainder is due this week.
	if it.UnitsRequired != 80 {
		t.Errorf("UnitsRequired = %d, want 80", it.UnitsRequired)
	}
	if it.DailyDistribution["2025-06-18"] != 16 || it.DailyDistribution["2025-06-16"] != 0 {
		t.Errorf("DailyDistribution = %v", it.DailyDistribution)
	}
}

// --- edge cases ---

func TestEmptySubjectsVacuouslyComplete(t *testing.T) {
	cases := map[string][]Subject{
		"none":         nil,
		"all complete": {{ID: "a", TotalUnits: 10, CompletedUnits: 10}},
	}
	for name, subjects := range cases {
		for _, p := range []Period{Daily, Weekly} {
			var q PeriodQuota
			if p == Daily {
				q = mustDaily(t, subjects, DefaultSettings(), nil, t0)
			} else {
				q = mustWeekly(t, subjects, DefaultSettings(), nil, t0)
			}
			if !q.IsCompleted || q.TotalUnits != 0 || q.ActiveSubjects != 0 || len(q.Items) != 0 {
				t.Errorf("%s/%v: got %+v, want empty complete quota", name, p, q)
			}
		}
	}
}

func TestInvalidSettingsRejected(t *testing.T) {
	s := DefaultSettings()
	s.MaxConcurrentSubjects = 0
	_, err := ComputeDailyQuota([]Subject{scenarioSubject()}, s, nil, t0)
	if !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("error = %v, want ErrInvalidSettings", err)
	}
	s = DefaultSettings()
	s.StudyDaysPerWeek = 9
	_, err = ComputeWeeklyQuota(nil, s, nil, t0)
	if !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("error = %v, want ErrInvalidSettings", err)
	}
}

func TestInvalidSubjectRejected(t *testing.T) {
	bad := Subject{ID: "bad", TotalUnits: 5, CompletedUnits: 6}
	_, err := ComputeDailyQuota([]Subject{scenarioSubject(), bad}, DefaultSettings(), nil, t0)
	if !errors.Is(err, ErrInvalidSubject) {
		t.Errorf("error = %v, want ErrInvalidSubject", err)
	}
}

func TestPastBufferStillSelected(t *testing.T) {
	s := scenarioSubject()
	s.ExamDate = daysFrom(t0, 1)
	s.BufferDays = intPtr(5)
	q := mustDaily(t, []Subject{s}, scenarioSettings(10), nil, t0)
	if q.ActiveSubjects != 1 {
		t.Fatal("subject past its buffer was dropped")
	}
	if got := q.Items[0].UnitsRequired; got != 80 {
		t.Errorf("UnitsRequired = %d, want the whole remainder 80", got)
	}
}

// --- reconciliation ---

func TestDailyReconciliation(t *testing.T) {
	log := Records{
		{SubjectID: "math", Units: 12, RecordedAt: t0.Add(-time.Hour)},
		{SubjectID: "math", Units: 50, RecordedAt: t0.AddDate(0, 0, -1)},
	}
	q := mustDaily(t, []Subject{scenarioSubject()}, scenarioSettings(60), log, t0)
	it := q.Items[0]
	if it.UnitsCompleted != 12 || it.Status != InProgress || it.IsCompleted {
		t.Errorf("item = %+v, want 12 units in progress", it)
	}
	assertFloat(t, "Percent", it.Percent, 40)
	if q.IsCompleted {
		t.Error("quota should not be complete")
	}
}

func TestCompletionIsPerPeriod(t *testing.T) {
	log := Records{{SubjectID: "math", Units: 30, RecordedAt: t0}}
	settings := scenarioSettings(60)

	today := mustDaily(t, []Subject{scenarioSubject()}, settings, log, t0)
	if !today.IsCompleted || today.Items[0].Status != Completed {
		t.Fatalf("today = %+v, want completed", today.Items[0])
	}

	tomorrow := mustDaily(t, []Subject{scenarioSubject()}, settings, log, t0.AddDate(0, 0, 1))
	if tomorrow.IsCompleted || tomorrow.Items[0].Status != NotStarted {
		t.Errorf("tomorrow = %+v, want not started", tomorrow.Items[0])
	}
}

func TestWeeklyReconciliation(t *testing.T) {
	monday := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	log := Records{
		{SubjectID: "math", Units: 40, RecordedAt: monday},
		{SubjectID: "math", Units: 40, RecordedAt: t0},
		{SubjectID: "math", Units: 99, RecordedAt: monday.Add(-2 * time.Hour)}, // previous Sunday
	}
	q := mustWeekly(t, []Subject{scenarioSubject()}, scenarioSettings(60), log, t0)
	it := q.Items[0]
	if it.UnitsCompleted != 80 || !it.IsCompleted {
		t.Errorf("item = %+v, want 80 units completed", it)
	}
}

func TestFailedLookupCountsAsNoProgress(t *testing.T) {
	failing := ProgressLookupFunc(func(string, time.Time, time.Time) ([]ProgressRecord, error) {
		return nil, errors.New("store unreachable")
	})
	q, err := quietEngine(0).ComputeDailyQuota([]Subject{scenarioSubject()}, scenarioSettings(60), failing, t0)
	if err != nil {
		t.Fatalf("lookup failure should not fail computation: %v", err)
	}
	it := q.Items[0]
	if it.UnitsRequired != 30 || it.UnitsCompleted != 0 || it.Status != NotStarted {
		t.Errorf("item = %+v, want quota 30 with no progress", it)
	}
}

func TestLookupFailureIsLogged(t *testing.T) {
	var buf strings.Builder
	e := NewEngine(EngineConfig{Logger: slog.New(slog.NewTextHandler(&buf, nil))})
	failing := ProgressLookupFunc(func(string, time.Time, time.Time) ([]ProgressRecord, error) {
		return nil, errors.New("timeout")
	})
	if _, err := e.ComputeDailyQuota([]Subject{scenarioSubject()}, scenarioSettings(60), failing, t0); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "subject_id=math") || !strings.Contains(buf.String(), "timeout") {
		t.Errorf("log output = %q, want warning naming subject and error", buf.String())
	}
}

func TestLookupAsksForPeriodBounds(t *testing.T) {
	var gotStart, gotEnd time.Time
	lookup := ProgressLookupFunc(func(_ string, start, end time.Time) ([]ProgressRecord, error) {
		gotStart, gotEnd = start, end
		return nil, nil
	})
	mustWeekly(t, []Subject{scenarioSubject()}, scenarioSettings(60), lookup, t0)
	wantStart, wantEnd := Weekly.Bounds(t0)
	if !gotStart.Equal(wantStart) || !gotEnd.Equal(wantEnd) {
		t.Errorf("lookup range = [%v, %v), want [%v, %v)", gotStart, gotEnd, wantStart, wantEnd)
	}
}

// --- properties ---

func propertySubjects() []Subject {
	return []Subject{
		{ID: "a", TotalUnits: 300, CompletedUnits: 10, ExamDate: daysFrom(t0, 5), Priority: High},
		{ID: "b", TotalUnits: 120, CompletedUnits: 100, ExamDate: daysFrom(t0, 45), Importance: High},
		{ID: "c", TotalUnits: 80, Priority: Low},
		{ID: "d", TotalUnits: 50, CompletedUnits: 50},
		{ID: "e", TotalUnits: 200, CompletedUnits: 60, ReportDeadline: daysFrom(t0, 12), BufferDays: intPtr(1)},
		{ID: "f", TotalUnits: 40, CompletedUnits: 39, ExamDate: daysFrom(t0, -3)},
	}
}

func TestCapRespected(t *testing.T) {
	subjects := propertySubjects()
	incomplete := 0
	for _, s := range subjects {
		if !s.IsComplete() {
			incomplete++
		}
	}
	for limit := 1; limit <= 7; limit++ {
		settings := DefaultSettings()
		settings.MaxConcurrentSubjects = limit
		q := mustDaily(t, subjects, settings, nil, t0)
		if want := min(limit, incomplete); q.ActiveSubjects != want {
			t.Errorf("limit %d: ActiveSubjects = %d, want %d", limit, q.ActiveSubjects, want)
		}
	}
}

func TestCeilingAndDeadlineFloor(t *testing.T) {
	settings := DefaultSettings()
	settings.MaxConcurrentSubjects = 6
	byID := map[string]Subject{}
	for _, s := range propertySubjects() {
		byID[s.ID] = s
	}
	for _, p := range []Period{Daily, Weekly} {
		var q PeriodQuota
		if p == Daily {
			q = mustDaily(t, propertySubjects(), settings, nil, t0)
		} else {
			q = mustWeekly(t, propertySubjects(), settings, nil, t0)
		}
		for _, it := range q.Items {
			s := byID[it.SubjectID]
			if it.UnitsRequired > s.Remaining() {
				t.Errorf("%v %s: %d exceeds remaining %d", p, s.ID, it.UnitsRequired, s.Remaining())
			}
			if it.PeriodsRemaining.IsBounded() {
				floor := min(s.Remaining(), DeadlinePace(s.Remaining(), it.PeriodsRemaining))
				if it.UnitsRequired < floor {
					t.Errorf("%v %s: %d below deadline floor %d", p, s.ID, it.UnitsRequired, floor)
				}
			}
		}
	}
}

func TestMonotonicInCompletedUnits(t *testing.T) {
	other := Subject{ID: "other", TotalUnits: 100, CompletedUnits: 40, ExamDate: daysFrom(t0, 20)}
	settings := scenarioSettings(90)
	for _, withOther := range []bool{false, true} {
		prev := -1
		for done := 0; done <= 100; done += 5 {
			s := scenarioSubject()
			s.CompletedUnits = done
			subjects := []Subject{s}
			if withOther {
				subjects = append(subjects, other)
			}
			q := mustDaily(t, subjects, settings, nil, t0)
			got := 0
			if it, ok := q.Item("math"); ok {
				got = it.UnitsRequired
			}
			if prev >= 0 && got > prev {
				t.Errorf("withOther=%v completed=%d: UnitsRequired rose %d → %d", withOther, done, prev, got)
			}
			prev = got
		}
	}
}

func TestIdempotent(t *testing.T) {
	log := Records{{SubjectID: "a", Units: 4, RecordedAt: t0}}
	for _, p := range []Period{Daily, Weekly} {
		var a, b PeriodQuota
		if p == Daily {
			a = mustDaily(t, propertySubjects(), DefaultSettings(), log, t0)
			b = mustDaily(t, propertySubjects(), DefaultSettings(), log, t0)
		} else {
			a = mustWeekly(t, propertySubjects(), DefaultSettings(), log, t0)
			b = mustWeekly(t, propertySubjects(), DefaultSettings(), log, t0)
		}
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%v: repeated computation differs:\n%+v\n%+v", p, a, b)
		}
	}
}

func TestConcurrentLookupsMatchSequential(t *testing.T) {
	log := Records{
		{SubjectID: "a", Units: 4, RecordedAt: t0},
		{SubjectID: "e", Units: 9, RecordedAt: t0},
	}
	settings := DefaultSettings()
	settings.MaxConcurrentSubjects = 6
	seq, err := quietEngine(1).ComputeWeeklyQuota(propertySubjects(), settings, log, t0)
	if err != nil {
		t.Fatal(err)
	}
	par, err := quietEngine(4).ComputeWeeklyQuota(propertySubjects(), settings, log, t0)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(seq, par) {
		t.Errorf("concurrent result differs:\n%+v\n%+v", seq, par)
	}
}

func TestComputeAll(t *testing.T) {
	e := quietEngine(2)
	daily, weekly, err := e.ComputeAll(propertySubjects(), DefaultSettings(), nil, t0)
	if err != nil {
		t.Fatal(err)
	}
	wantDaily, _ := e.ComputeDailyQuota(propertySubjects(), DefaultSettings(), nil, t0)
	wantWeekly, _ := e.ComputeWeeklyQuota(propertySubjects(), DefaultSettings(), nil, t0)
	if !reflect.DeepEqual(daily, wantDaily) || !reflect.DeepEqual(weekly, wantWeekly) {
		t.Error("ComputeAll differs from individual computations")
	}

	bad := DefaultSettings()
	bad.AverageUnitTime = 0
	if _, _, err := e.ComputeAll(nil, bad, nil, t0); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("ComputeAll error = %v, want ErrInvalidSettings", err)
	}
}

func TestInputsNotMutated(t *testing.T) {
	subjects := propertySubjects()
	before := make([]Subject, len(subjects))
	for i, s := range subjects {
		before[i] = s.clone()
	}
	mustDaily(t, subjects, DefaultSettings(), nil, t0)
	if !reflect.DeepEqual(subjects, before) {
		t.Error("computation mutated its input subjects")
	}
}

func TestPeriodQuotaJSON(t *testing.T) {
	q := mustWeekly(t, []Subject{scenarioSubject()}, scenarioSettings(60), nil, t0)
	data, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, want := range []string{`"period":"weekly"`, `"tier":"medium"`, `"status":"not_started"`, `"2025-06-18":16`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("JSON missing %s: %s", want, data)
		}
	}
}
