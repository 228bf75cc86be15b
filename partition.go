package quota

// Fractions returns each tier's share of the budget, weight / Σweights.
// The shares sum to 1 unless every weight is zero, in which case all are 0.
func Fractions(tiers []Level) []float64 {
	out := make([]float64, len(tiers))
	total := 0
	for _, t := range tiers {
		total += t.Weight()
	}
	if total == 0 {
		return out
	}
	for i, t := range tiers {
		out[i] = float64(t.Weight()) / float64(total)
	}
	return out
}

// Partition splits budget minutes across tiers in proportion to their weights.
func Partition(budget int, tiers []Level) []float64 {
	out := make([]float64, len(tiers))
	total := 0
	for _, t := range tiers {
		total += t.Weight()
	}
	if total == 0 {
		return out
	}
	for i, t := range tiers {
		// Multiply before dividing so whole-minute splits stay exact.
		out[i] = float64(budget) * float64(t.Weight()) / float64(total)
	}
	return out
}
