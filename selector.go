package quota

import (
	"sort"
	"time"
)

// SelectSubjects scores the incomplete subjects, ranks them by descending
// score and keeps the first limit of them. Equal scores keep their input
// order. The selected subjects carry their display tier. The input slice is
// not reordered.
func SelectSubjects(subjects []Subject, limit int, today time.Time) []ScoredSubject {
	ranked := make([]ScoredSubject, 0, len(subjects))
	for _, s := range subjects {
		if s.IsComplete() {
			continue
		}
		ranked = append(ranked, ScoreSubject(s, today))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if limit < 0 {
		limit = 0
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	AssignTiers(ranked)
	return ranked
}
