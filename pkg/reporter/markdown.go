package reporter

import (
	"fmt"
	"io"

	"exiteval/pkg/core"
)

type MarkdownReporter struct {
	Writer io.Writer
}

func (r MarkdownReporter) Report(report core.EvalReport) error {
	if _, err := fmt.Fprintf(r.Writer, "# Exit Evaluation Report\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.Writer, "- Task: %s\n- Dataset: %s\n- Samples: %d\n- Exits: %d\n\n",
		report.TaskName, report.DatasetName, report.TotalSamples, report.NumExits); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(r.Writer, "## Per-exit metrics\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.Writer, "| Exit | Metric | Value |\n|---|---|---|\n"); err != nil {
		return err
	}
	for _, res := range report.ExitResults {
		for _, name := range sortedMetricNames(res.Metrics) {
			if _, err := fmt.Fprintf(r.Writer, "| %d | %s | %.4f |\n", res.Exit, name, res.Metrics[name]); err != nil {
				return err
			}
		}
	}

	if len(report.PolicyResults) == 0 {
		return nil
	}

	if _, err := fmt.Fprintf(r.Writer, "\n## Policy baselines\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.Writer, "| Policy | Metric | Value |\n|---|---|---|\n"); err != nil {
		return err
	}
	for _, res := range report.PolicyResults {
		for _, name := range sortedMetricNames(res.Metrics) {
			if _, err := fmt.Fprintf(r.Writer, "| %s | %s | %.4f |\n", res.Name, name, res.Metrics[name]); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(r.Writer, "| %s | mean_exit | %.4f |\n", res.Name, res.MeanExit); err != nil {
			return err
		}
	}
	return nil
}
