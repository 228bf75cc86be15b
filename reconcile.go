package quota

import "time"

// Progress is a subject's logged work measured against its period quota.
type Progress struct {
	UnitsCompleted int     `json:"units_completed"`
	Percent        float64 `json:"percent"` // 0–100
	Status         Status  `json:"status"`
	IsCompleted    bool    `json:"is_completed"`
}

// Reconcile sums the units of records logged in [start, end) and compares
// them with required. A zero quota is trivially complete.
func Reconcile(required int, records []ProgressRecord, start, end time.Time) Progress {
	logged := 0
	for _, r := range records {
		if inRange(r.RecordedAt, start, end) {
			logged += r.Units
		}
	}
	logged = max(0, logged)

	p := Progress{UnitsCompleted: logged}
	switch {
	case logged >= required:
		p.Status = Completed
	case logged > 0:
		p.Status = InProgress
	default:
		p.Status = NotStarted
	}
	p.IsCompleted = p.Status == Completed

	if required <= 0 {
		p.Percent = 100
	} else {
		p.Percent = min(100, float64(logged)*100/float64(required))
	}
	return p
}
