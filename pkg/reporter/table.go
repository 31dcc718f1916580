package reporter

import (
	"fmt"
	"io"

	"exiteval/pkg/core"

	"github.com/olekukonko/tablewriter"
)

type TableReporter struct {
	Writer io.Writer
}

func (r TableReporter) Report(report core.EvalReport) error {
	summary := tablewriter.NewWriter(r.Writer)
	summary.Header([]string{"Field", "Value"})
	summary.Append([]string{"Task", report.TaskName})
	summary.Append([]string{"Dataset", report.DatasetName})
	summary.Append([]string{"Samples", fmt.Sprintf("%d", report.TotalSamples)})
	summary.Append([]string{"Exits", fmt.Sprintf("%d", report.NumExits)})
	summary.Render()

	table := tablewriter.NewWriter(r.Writer)
	table.Header([]string{"Source", "Metric", "Value"})
	for _, res := range report.ExitResults {
		for _, name := range sortedMetricNames(res.Metrics) {
			table.Append([]string{fmt.Sprintf("exit %d", res.Exit), name, fmt.Sprintf("%.4f", res.Metrics[name])})
		}
	}
	for _, res := range report.PolicyResults {
		for _, name := range sortedMetricNames(res.Metrics) {
			table.Append([]string{res.Name, name, fmt.Sprintf("%.4f", res.Metrics[name])})
		}
		table.Append([]string{res.Name, "mean_exit", fmt.Sprintf("%.4f", res.MeanExit)})
	}
	table.Render()
	return nil
}
