package pace

import (
	"sort"
	"time"

	"github.com/sky-flux/quota"
)

// sample is one usable progress record reduced to its pace.
type sample struct {
	minutesPerUnit float64
	recordedAt     time.Time
}

// formatRecords groups usable records by subject and sorts each group by time.
// Records without a positive duration or unit count are skipped.
func formatRecords(records []quota.ProgressRecord) map[string][]sample {
	if len(records) == 0 {
		return nil
	}

	result := make(map[string][]sample)
	for _, r := range records {
		if r.Duration == nil || *r.Duration <= 0 || r.Units <= 0 {
			continue
		}
		result[r.SubjectID] = append(result[r.SubjectID], sample{
			minutesPerUnit: r.Duration.Minutes() / float64(r.Units),
			recordedAt:     r.RecordedAt,
		})
	}
	for _, samples := range result {
		sort.SliceStable(samples, func(i, j int) bool {
			return samples[i].recordedAt.Before(samples[j].recordedAt)
		})
	}
	return result
}

// countSamples counts the samples across all subjects.
func countSamples(data map[string][]sample) int {
	count := 0
	for _, samples := range data {
		count += len(samples)
	}
	return count
}

// sortedSubjects returns the subject ids in ascending order.
func sortedSubjects(data map[string][]sample) []string {
	ids := make([]string, 0, len(data))
	for id := range data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
