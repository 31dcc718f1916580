package reporter

import (
	"sort"

	"exiteval/pkg/core"
)

// Reporter writes an evaluation report.
type Reporter interface {
	Report(report core.EvalReport) error
}

const (
	FormatJSON     = "json"
	FormatTable    = "table"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
)

func sortedMetricNames(metrics map[string]float64) []string {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
