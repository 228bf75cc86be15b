package quota

import (
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// EngineConfig configures an Engine.
// Zero values produce sensible defaults; see field comments.
type EngineConfig struct {
	Logger      *slog.Logger // nil → slog.Default()
	Concurrency int          // ≤ 1 → progress lookups run sequentially
}

// Engine computes daily and weekly study quotas. It holds no mutable state
// and is safe for concurrent use.
type Engine struct {
	logger      *slog.Logger
	concurrency int
}

// NewEngine creates an Engine from the given config.
func NewEngine(cfg EngineConfig) *Engine {
	return &Engine{
		logger:      cfg.Logger,
		concurrency: cfg.Concurrency,
	}
}

var defaultEngine = NewEngine(EngineConfig{})

// ComputeDailyQuota computes today's quota with a default Engine.
func ComputeDailyQuota(subjects []Subject, settings Settings, lookup ProgressLookup, now time.Time) (PeriodQuota, error) {
	return defaultEngine.ComputeDailyQuota(subjects, settings, lookup, now)
}

// ComputeWeeklyQuota computes this week's quota with a default Engine.
func ComputeWeeklyQuota(subjects []Subject, settings Settings, lookup ProgressLookup, now time.Time) (PeriodQuota, error) {
	return defaultEngine.ComputeWeeklyQuota(subjects, settings, lookup, now)
}

// ComputeDailyQuota computes the quota for the day containing now.
// It returns an error only for invalid settings or subjects.
func (e *Engine) ComputeDailyQuota(subjects []Subject, settings Settings, lookup ProgressLookup, now time.Time) (PeriodQuota, error) {
	return e.compute(Daily, subjects, settings, lookup, now)
}

// ComputeWeeklyQuota computes the quota for the Monday-based week containing now.
// It returns an error only for invalid settings or subjects.
func (e *Engine) ComputeWeeklyQuota(subjects []Subject, settings Settings, lookup ProgressLookup, now time.Time) (PeriodQuota, error) {
	return e.compute(Weekly, subjects, settings, lookup, now)
}

// ComputeAll computes the daily and weekly quotas concurrently.
func (e *Engine) ComputeAll(subjects []Subject, settings Settings, lookup ProgressLookup, now time.Time) (daily, weekly PeriodQuota, err error) {
	var g errgroup.Group
	g.Go(func() error {
		var err error
		daily, err = e.ComputeDailyQuota(subjects, settings, lookup, now)
		return err
	})
	g.Go(func() error {
		var err error
		weekly, err = e.ComputeWeeklyQuota(subjects, settings, lookup, now)
		return err
	})
	if err := g.Wait(); err != nil {
		return PeriodQuota{}, PeriodQuota{}, err
	}
	return daily, weekly, nil
}

func (e *Engine) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return slog.Default()
}

func (e *Engine) compute(p Period, subjects []Subject, settings Settings, lookup ProgressLookup, now time.Time) (PeriodQuota, error) {
	if err := settings.Validate(); err != nil {
		return PeriodQuota{}, err
	}
	for _, s := range subjects {
		if err := s.Validate(); err != nil {
			return PeriodQuota{}, err
		}
	}

	today := StartOfDay(now)
	start, end := p.Bounds(now)
	result := PeriodQuota{
		Period: p,
		Start:  start,
		End:    end,
		Items:  []QuotaItem{},
	}

	selected := SelectSubjects(subjects, settings.MaxConcurrentSubjects, today)
	tiers := make([]Level, len(selected))
	for i, s := range selected {
		tiers[i] = s.Tier
	}
	allocated := Partition(settings.budget(p), tiers)
	records := e.fetchRecords(lookup, selected, start, end)

	result.IsCompleted = true
	for i, s := range selected {
		h := ResolveHorizon(s.Subject.Deadline(), s.Subject.bufferDays(settings), today, p)
		units := RequiredUnits(s.Subject.Remaining(), allocated[i], settings.AverageUnitTime, h)
		progress := Reconcile(units, records[i], start, end)

		item := QuotaItem{
			SubjectID:        s.Subject.ID,
			SubjectName:      s.Subject.Name,
			UnitsRequired:    units,
			EstimatedMinutes: EstimatedMinutes(units, settings.AverageUnitTime),
			AllocatedMinutes: allocated[i],
			Tier:             s.Tier,
			Score:            s.Score,
			Breakdown:        s.Breakdown,
			PeriodsRemaining: h,
			UnitsCompleted:   progress.UnitsCompleted,
			Percent:          progress.Percent,
			Status:           progress.Status,
			IsCompleted:      progress.IsCompleted,
		}
		if p == Weekly {
			item.DailyDistribution = DistributeWeek(units, now, settings.StudyDaysPerWeek)
		}

		result.Items = append(result.Items, item)
		result.TotalUnits += item.UnitsRequired
		result.TotalMinutes += item.EstimatedMinutes
		result.IsCompleted = result.IsCompleted && item.IsCompleted
	}
	result.ActiveSubjects = len(result.Items)

	e.log().Debug("computed quota",
		slog.String("period", p.String()),
		slog.Time("start", start),
		slog.Int("subjects", len(subjects)),
		slog.Int("active_subjects", result.ActiveSubjects),
		slog.Int("total_units", result.TotalUnits),
		slog.Int("total_minutes", result.TotalMinutes),
	)
	return result, nil
}

// fetchRecords reads each selected subject's progress for the period.
// A failed lookup counts as no progress; quota computation never fails on it.
func (e *Engine) fetchRecords(lookup ProgressLookup, selected []ScoredSubject, start, end time.Time) [][]ProgressRecord {
	out := make([][]ProgressRecord, len(selected))
	if lookup == nil || len(selected) == 0 {
		return out
	}

	read := func(i int) {
		id := selected[i].Subject.ID
		records, err := lookup.RecordsInRange(id, start, end)
		if err != nil {
			e.log().Warn("progress lookup failed, counting zero units",
				slog.String("subject_id", id),
				slog.Time("start", start),
				slog.Time("end", end),
				slog.String("error", err.Error()),
			)
			return
		}
		out[i] = records
	}

	if e.concurrency <= 1 {
		for i := range selected {
			read(i)
		}
		return out
	}

	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i := range selected {
		i := i
		g.Go(func() error {
			read(i)
			return nil
		})
	}
	_ = g.Wait()
	return out
}
