package pace

import "math"

// movingAverage is an exponentially weighted mean with bias correction:
//
//	m    = β·m + (1-β)·x
//	m̂    = m / (1 - β^t)
//
// Without the correction the first few values would be pulled toward zero.
type movingAverage struct {
	beta float64
	m    float64
	step int
}

func newMovingAverage(smoothing float64) *movingAverage {
	return &movingAverage{beta: 1 - smoothing}
}

// update folds x into the average.
func (a *movingAverage) update(x float64) {
	a.step++
	a.m = a.beta*a.m + (1-a.beta)*x
}

// value returns the bias-corrected average, or 0 before any update.
func (a *movingAverage) value() float64 {
	if a.step == 0 {
		return 0
	}
	return a.m / (1 - math.Pow(a.beta, float64(a.step)))
}
