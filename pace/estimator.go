package pace

import (
	"context"
	"errors"

	"github.com/sky-flux/quota"
)

var (
	// ErrEmptyRecords is returned when no progress records are provided.
	ErrEmptyRecords = errors.New("pace: no progress records provided")

	// ErrInsufficientData is returned when fewer than MinSamples records carry a duration.
	ErrInsufficientData = errors.New("pace: insufficient timed records for estimation")
)

// EstimatorConfig configures an Estimator.
// Zero values are replaced with sensible defaults.
type EstimatorConfig struct {
	MinSamples  int     `json:"min_samples"`   // default 5
	MaxRecords  int     `json:"max_records"`   // default 64, most recent per subject
	Smoothing   float64 `json:"smoothing"`     // default 0.3, weight of the newest sample
	MinUnitTime float64 `json:"min_unit_time"` // default 0.25 minutes
	MaxUnitTime float64 `json:"max_unit_time"` // default 120 minutes
	Default     float64 `json:"default"`       // default quota.DefaultAverageUnitTime
}

// Estimator derives minutes-per-unit from timed progress records.
type Estimator struct {
	minSamples  int
	maxRecords  int
	smoothing   float64
	minUnitTime float64
	maxUnitTime float64
	fallback    float64
}

// NewEstimator creates an Estimator with the given config.
// Zero-valued fields receive defaults: MinSamples=5, MaxRecords=64,
// Smoothing=0.3, MinUnitTime=0.25, MaxUnitTime=120,
// Default=quota.DefaultAverageUnitTime.
func NewEstimator(cfg EstimatorConfig) *Estimator {
	e := &Estimator{
		minSamples:  cfg.MinSamples,
		maxRecords:  cfg.MaxRecords,
		smoothing:   cfg.Smoothing,
		minUnitTime: cfg.MinUnitTime,
		maxUnitTime: cfg.MaxUnitTime,
		fallback:    cfg.Default,
	}
	if e.minSamples == 0 {
		e.minSamples = 5
	}
	if e.maxRecords == 0 {
		e.maxRecords = 64
	}
	if e.smoothing <= 0 || e.smoothing > 1 {
		e.smoothing = 0.3
	}
	if e.minUnitTime == 0 {
		e.minUnitTime = 0.25
	}
	if e.maxUnitTime == 0 {
		e.maxUnitTime = 120
	}
	if e.fallback == 0 {
		e.fallback = quota.DefaultAverageUnitTime
	}
	return e
}

// EstimateUnitTime returns the learner's minutes per unit across all subjects.
// Each subject's recent samples are smoothed separately and the results are
// averaged, weighted by sample count.
//
// Returns ErrEmptyRecords if records is empty, or ErrInsufficientData (along
// with the default unit time) if fewer than MinSamples records are timed.
// The context is checked between subjects.
func (e *Estimator) EstimateUnitTime(ctx context.Context, records []quota.ProgressRecord) (float64, error) {
	if len(records) == 0 {
		return 0, ErrEmptyRecords
	}

	data := e.prepare(records)
	n := countSamples(data)
	if n < e.minSamples {
		return e.fallback, ErrInsufficientData
	}

	var weighted float64
	for _, id := range sortedSubjects(data) {
		if err := ctx.Err(); err != nil {
			return e.fallback, err
		}
		samples := data[id]
		weighted += e.smooth(samples) * float64(len(samples))
	}
	return e.clamp(weighted / float64(n)), nil
}

// EstimatePerSubject returns minutes per unit for every subject with at least
// MinSamples timed records. Subjects with fewer samples are left out.
func (e *Estimator) EstimatePerSubject(ctx context.Context, records []quota.ProgressRecord) (map[string]float64, error) {
	if len(records) == 0 {
		return nil, ErrEmptyRecords
	}

	data := e.prepare(records)
	out := make(map[string]float64, len(data))
	for _, id := range sortedSubjects(data) {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if samples := data[id]; len(samples) >= e.minSamples {
			out[id] = e.clamp(e.smooth(samples))
		}
	}
	return out, nil
}

// prepare groups the records and keeps the newest maxRecords per subject.
func (e *Estimator) prepare(records []quota.ProgressRecord) map[string][]sample {
	data := formatRecords(records)
	for id, samples := range data {
		if len(samples) > e.maxRecords {
			data[id] = samples[len(samples)-e.maxRecords:]
		}
	}
	return data
}

// smooth runs the moving average over time-ordered samples.
func (e *Estimator) smooth(samples []sample) float64 {
	avg := newMovingAverage(e.smoothing)
	for _, s := range samples {
		avg.update(s.minutesPerUnit)
	}
	return avg.value()
}

// clamp constrains a unit time to [minUnitTime, maxUnitTime].
func (e *Estimator) clamp(v float64) float64 {
	return min(max(v, e.minUnitTime), e.maxUnitTime)
}
