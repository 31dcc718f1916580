package commands

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"exiteval/pkg/core"
	"exiteval/pkg/metrics"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newScoreCommand() *cobra.Command {
	var (
		taskName    string
		predictions string
		labels      string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute task metrics for one predictions/labels pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			if predictions == "" || labels == "" {
				return errors.New("predictions and labels are required")
			}
			task, err := core.ParseTask(taskName)
			if err != nil {
				return err
			}

			preds, err := parseVector(predictions)
			if err != nil {
				return fmt.Errorf("predictions: %w", err)
			}
			golds, err := parseVector(labels)
			if err != nil {
				return fmt.Errorf("labels: %w", err)
			}

			result, err := metrics.Compute(task, preds, golds)
			if err != nil {
				return err
			}

			names := make([]string, 0, len(result))
			for name := range result {
				names = append(names, name)
			}
			sort.Strings(names)

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header([]string{"Metric", "Value"})
			for _, name := range names {
				table.Append([]string{name, fmt.Sprintf("%.6f", result[name])})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&taskName, "task", "", "task identifier")
	cmd.Flags().StringVar(&predictions, "predictions", "", "comma-separated predicted values")
	cmd.Flags().StringVar(&labels, "labels", "", "comma-separated ground-truth values")

	return cmd
}

func parseVector(text string) ([]float64, error) {
	fields := strings.Split(text, ",")
	values := make([]float64, 0, len(fields))
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", field)
		}
		values = append(values, value)
	}
	if len(values) == 0 {
		return nil, errors.New("empty vector")
	}
	return values, nil
}
