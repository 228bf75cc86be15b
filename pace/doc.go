// Package pace estimates how long one unit of study work takes from the
// durations recorded in the progress log.
//
// The engine in package quota converts time budgets into units through
// Settings.AverageUnitTime. An Estimator derives that figure from history:
//
//	est := pace.NewEstimator(pace.EstimatorConfig{})
//	unitTime, err := est.EstimateUnitTime(ctx, records)
//	settings = settings.Apply(quota.SettingsOverrides{AverageUnitTime: &unitTime})
//
// # Data Requirements
//
// Only records with a positive Duration and positive Units are used. At least
// MinSamples such records (default 5) are needed; with fewer, the default
// unit time is returned together with ErrInsufficientData.
package pace
