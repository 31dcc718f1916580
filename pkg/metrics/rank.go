package metrics

import "sort"

// ranks converts values to 1-based ranks, averaging ties, so that Spearman
// correlation reduces to Pearson correlation over the ranked data.
func ranks(values []float64) []float64 {
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return values[order[a]] < values[order[b]]
	})

	ranked := make([]float64, len(values))
	for i := 0; i < len(order); {
		j := i
		for j+1 < len(order) && values[order[j+1]] == values[order[i]] {
			j++
		}
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranked[order[k]] = avg
		}
		i = j + 1
	}
	return ranked
}
