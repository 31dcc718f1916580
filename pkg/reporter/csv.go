package reporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"exiteval/pkg/core"
)

type CSVReporter struct {
	Writer io.Writer
}

func (r CSVReporter) Report(report core.EvalReport) error {
	writer := csv.NewWriter(r.Writer)
	header := []string{"source", "metric", "value"}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, res := range report.ExitResults {
		source := fmt.Sprintf("exit-%d", res.Exit)
		for _, name := range sortedMetricNames(res.Metrics) {
			record := []string{source, name, strconv.FormatFloat(res.Metrics[name], 'f', 6, 64)}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}
	for _, res := range report.PolicyResults {
		for _, name := range sortedMetricNames(res.Metrics) {
			record := []string{res.Name, name, strconv.FormatFloat(res.Metrics[name], 'f', 6, 64)}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
		record := []string{res.Name, "mean_exit", strconv.FormatFloat(res.MeanExit, 'f', 6, 64)}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
