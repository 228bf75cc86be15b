package quota

import "time"

// Horizon is the number of whole periods left before a subject's buffered
// deadline. A bounded horizon is always ≥ 1; NoDeadline marks a subject
// without deadline pressure.
type Horizon int

// NoDeadline is the infinite horizon of a subject with no deadline.
const NoDeadline Horizon = 0

// IsBounded reports whether h comes from an actual deadline.
func (h Horizon) IsBounded() bool {
	return h > 0
}

// ResolveHorizon converts a deadline and buffer into effective remaining
// periods counted from today. The target date is deadline − bufferDays.
//
//	Daily:  max(1, days until target)
//	Weekly: max(1, floor(days until target / 7))
//
// A target already in the past floors at 1, which asks for the whole
// remainder in the current period.
func ResolveHorizon(deadline *time.Time, bufferDays int, today time.Time, p Period) Horizon {
	if deadline == nil {
		return NoDeadline
	}
	days := daysBetween(today, *deadline) - bufferDays
	if p == Weekly {
		days /= 7
	}
	return Horizon(max(1, days))
}

// DaysUntil returns the calendar days from today to deadline, negative once
// the deadline has passed. ok is false when there is no deadline.
func DaysUntil(deadline *time.Time, today time.Time) (days int, ok bool) {
	if deadline == nil {
		return 0, false
	}
	return daysBetween(today, *deadline), true
}
