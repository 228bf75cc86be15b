package quota

import "time"

// QuotaItem is one selected subject's quota for a period.
type QuotaItem struct {
	SubjectID        string         `json:"subject_id"`
	SubjectName      string         `json:"subject_name"`
	UnitsRequired    int            `json:"units_required"`
	EstimatedMinutes int            `json:"estimated_minutes"`
	AllocatedMinutes float64        `json:"allocated_minutes"`
	Tier             Level          `json:"tier"`
	Score            float64        `json:"score"`
	Breakdown        ScoreBreakdown `json:"breakdown"`
	PeriodsRemaining Horizon        `json:"periods_remaining"` // 0 when there is no deadline.
	UnitsCompleted   int            `json:"units_completed"`   // logged during this period.
	Percent          float64        `json:"percent"`
	Status           Status         `json:"status"`
	IsCompleted      bool           `json:"is_completed"`

	// DailyDistribution is set for weekly quotas only.
	DailyDistribution map[string]int `json:"daily_distribution,omitempty"`
}

// PeriodQuota is the result of one computation. It is never updated in
// place; a new computation replaces it.
type PeriodQuota struct {
	Period         Period      `json:"period"`
	Start          time.Time   `json:"start"`
	End            time.Time   `json:"end"`
	Items          []QuotaItem `json:"items"`
	TotalUnits     int         `json:"total_units"`
	TotalMinutes   int         `json:"total_minutes"`
	IsCompleted    bool        `json:"is_completed"`
	ActiveSubjects int         `json:"active_subjects"`
}

// Item returns the quota item for a subject id.
func (q PeriodQuota) Item(subjectID string) (QuotaItem, bool) {
	for _, it := range q.Items {
		if it.SubjectID == subjectID {
			return it, true
		}
	}
	return QuotaItem{}, false
}
