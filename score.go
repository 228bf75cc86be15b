package quota

import "time"

type deadlineBand struct {
	maxDays int
	points  float64
}

// deadlineBands maps days remaining to base urgency points.
var deadlineBands = []deadlineBand{
	{3, 100},
	{7, 80},
	{14, 60},
	{30, 40},
	{60, 20},
}

type progressBand struct {
	below  float64
	points float64
}

// progressBands rewards subjects that are further behind.
var progressBands = []progressBand{
	{0.30, 15},
	{0.50, 10},
	{0.70, 5},
}

// Bonus tables indexed by Level.
var (
	priorityBonus   = [...]float64{High: 15, Medium: 10, Low: 0}
	importanceBonus = [...]float64{High: 10, Medium: 0, Low: 0}
)

// tierMediumRatio is the share of the top score needed for the medium tier.
const tierMediumRatio = 0.5

// ScoreBreakdown records each term of a subject's score.
type ScoreBreakdown struct {
	Deadline   float64 `json:"deadline"`
	Priority   float64 `json:"priority"`
	Progress   float64 `json:"progress"`
	Importance float64 `json:"importance"`
}

// Total sums the terms.
func (b ScoreBreakdown) Total() float64 {
	return b.Deadline + b.Priority + b.Progress + b.Importance
}

// ScoredSubject is a subject ranked for one computation. Tier is the display
// tier derived from relative score; the subject's stored Priority is left alone.
type ScoredSubject struct {
	Subject       Subject        `json:"subject"`
	Score         float64        `json:"score"`
	Breakdown     ScoreBreakdown `json:"breakdown"`
	DaysRemaining int            `json:"days_remaining"` // -1 when there is no deadline.
	Tier          Level          `json:"tier"`
}

// ScoreSubject computes the urgency score of a subject as of today.
func ScoreSubject(s Subject, today time.Time) ScoredSubject {
	out := ScoredSubject{Subject: s.clone(), DaysRemaining: -1}

	days, ok := DaysUntil(s.Deadline(), today)
	if ok {
		out.DaysRemaining = max(0, days)
		out.Breakdown.Deadline = deadlinePoints(days)
	}
	if s.Priority.IsValid() {
		out.Breakdown.Priority = priorityBonus[s.Priority]
	}
	if s.Importance.IsValid() {
		out.Breakdown.Importance = importanceBonus[s.Importance]
	}
	out.Breakdown.Progress = progressPoints(s.Completion())
	out.Score = out.Breakdown.Total()
	return out
}

// deadlinePoints returns the base points for the given days remaining.
func deadlinePoints(days int) float64 {
	for _, b := range deadlineBands {
		if days <= b.maxDays {
			return b.points
		}
	}
	return 0
}

// progressPoints returns the bonus for a completion fraction.
func progressPoints(completion float64) float64 {
	for _, b := range progressBands {
		if completion < b.below {
			return b.points
		}
	}
	return 0
}

// AssignTiers sets the display tier on subjects sorted by descending score.
// With more than one subject the first is High; any subject scoring at least
// half of the top score is Medium; the rest are Low.
func AssignTiers(ranked []ScoredSubject) {
	if len(ranked) == 0 {
		return
	}
	top := ranked[0].Score
	for i := range ranked {
		switch {
		case i == 0 && len(ranked) > 1:
			ranked[i].Tier = High
		case ranked[i].Score >= top*tierMediumRatio:
			ranked[i].Tier = Medium
		default:
			ranked[i].Tier = Low
		}
	}
}
