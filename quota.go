package quota

import (
	"math"
	"time"
)

// dateKey is the layout of DailyDistribution keys.
const dateKey = time.DateOnly

// floorSlack absorbs float error from the budget split before flooring.
const floorSlack = 1e-9

// AffordableUnits returns how many whole units fit into the allocated minutes.
func AffordableUnits(allocatedMinutes, unitTime float64) int {
	if unitTime <= 0 || allocatedMinutes <= 0 {
		return 0
	}
	return int(math.Floor(allocatedMinutes/unitTime + floorSlack))
}

// DeadlinePace returns the minimum units per period that finish remaining
// within h periods: ceil(remaining / h). It is 0 without a deadline.
func DeadlinePace(remaining int, h Horizon) int {
	if !h.IsBounded() || remaining <= 0 {
		return 0
	}
	n := int(h)
	return (remaining + n - 1) / n
}

// RequiredUnits reconciles the three candidates for one period:
//
//	min(remaining, max(affordable, deadlinePace))
//
// The deadline pace is a floor, the time budget a soft target and the
// remaining work an absolute ceiling.
func RequiredUnits(remaining int, allocatedMinutes, unitTime float64, h Horizon) int {
	if remaining <= 0 {
		return 0
	}
	want := max(AffordableUnits(allocatedMinutes, unitTime), DeadlinePace(remaining, h))
	return min(remaining, want)
}

// EstimatedMinutes converts units into study minutes, rounded to the minute.
func EstimatedMinutes(units int, unitTime float64) int {
	return int(math.Round(float64(units) * unitTime))
}

// DistributeWeek spreads a weekly total over the study days left in now's
// week. The number of days used is min(days left including today,
// studyDays); each of them gets ceil(left / days still to fill), so the last
// day takes whatever remains. Past days and days beyond the study-day count
// get 0. Keys cover every day of the week in "2006-01-02" form.
func DistributeWeek(total int, now time.Time, studyDays int) map[string]int {
	weekStart := StartOfWeek(now)
	offset := daysBetween(weekStart, now)
	slots := min(7-offset, max(1, studyDays))

	out := make(map[string]int, 7)
	left := max(0, total)
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		k := i - offset
		if k < 0 || k >= slots {
			out[day.Format(dateKey)] = 0
			continue
		}
		remainingSlots := slots - k
		share := (left + remainingSlots - 1) / remainingSlots
		out[day.Format(dateKey)] = share
		left -= share
	}
	return out
}
