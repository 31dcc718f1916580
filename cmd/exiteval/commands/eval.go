package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"exiteval/pkg/core"
	"exiteval/pkg/dataset"
	"exiteval/pkg/metrics"
	"exiteval/pkg/policy"
	"exiteval/pkg/reporter"
	"exiteval/pkg/runlog"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newEvalCommand() *cobra.Command {
	var (
		matrixPath  string
		taskName    string
		policyNames []string
		workers     int
		outputPath  string
		format      string
		logDir      string
		logFormat   string
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a prediction matrix",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := resolveString(matrixPath, appConfig.Matrix)
			if path == "" {
				return errors.New("matrix path is required")
			}
			taskResolved := resolveString(taskName, appConfig.Task)
			if taskResolved == "" {
				return errors.New("task is required")
			}
			task, err := core.ParseTask(taskResolved)
			if err != nil {
				return err
			}
			formatResolved := resolveString(format, appConfig.Format)
			if formatResolved == "" {
				formatResolved = "table"
			}
			outputResolved := resolveString(outputPath, appConfig.Output)
			logDirResolved := resolveString(logDir, appConfig.LogDir)
			logFormatResolved := resolveString(logFormat, appConfig.LogFormat)
			if logFormatResolved == "" {
				logFormatResolved = "json"
			}
			workerCount := resolveInt(workers, appConfig.Workers, 1)
			policiesResolved := policyNames
			if len(policiesResolved) == 0 {
				policiesResolved = appConfig.Policies
			}
			if len(policiesResolved) == 0 {
				policiesResolved = []string{"final", "oracle"}
			}

			policies, err := buildPolicies(policiesResolved)
			if err != nil {
				return err
			}

			ds := dataset.NewMatrixDataset(path)
			totalSamples := 0
			if count, err := ds.Len(context.Background()); err == nil {
				totalSamples = count
			}
			progress := newProgressBar(progressWriter(cmd), totalSamples)

			eval := core.Evaluator{
				Dataset:      ds,
				Scorer:       metrics.TaskScorer{Task: task},
				Policies:     policies,
				Workers:      workerCount,
				TotalSamples: totalSamples,
				Progress:     progress.Update,
			}

			report, err := eval.Run(context.Background())
			if err != nil {
				return err
			}
			if report.Metadata == nil {
				report.Metadata = map[string]string{}
			}
			report.Metadata["matrix"] = path
			report.Metadata["policies"] = strings.Join(policiesResolved, ",")

			writer := os.Stdout
			if outputResolved != "" {
				file, err := os.Create(outputResolved)
				if err != nil {
					return err
				}
				defer file.Close()
				writer = file
			}

			rep, err := buildReporter(formatResolved, writer)
			if err != nil {
				return err
			}
			if err := rep.Report(report); err != nil {
				return err
			}

			if logFormatResolved != "none" {
				logPath, err := runlog.Write(logDirResolved, report)
				if err != nil {
					return err
				}
				logger.Info("evaluation logged",
					zap.String("task", report.TaskName),
					zap.Int("samples", report.TotalSamples),
					zap.Int("exits", report.NumExits),
					zap.String("path", logPath),
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&matrixPath, "matrix", "", "path to prediction matrix file")
	cmd.Flags().StringVar(&taskName, "task", "", "task identifier (sst-2, mrpc, sts-b, snli, scitail, imdb)")
	cmd.Flags().StringSliceVar(&policyNames, "policy", nil, "exit policy to evaluate (final, oracle, exit-N); repeatable")
	cmd.Flags().IntVar(&workers, "workers", 0, "number of workers")
	cmd.Flags().StringVar(&outputPath, "output", "", "output file path")
	cmd.Flags().StringVar(&format, "format", "", "output format (table, json, markdown, csv)")
	cmd.Flags().StringVar(&logDir, "log-dir", "", "directory for run logs")
	cmd.Flags().StringVar(&logFormat, "log-format", "", "run log format (json, none)")

	return cmd
}

func buildPolicies(names []string) ([]core.Policy, error) {
	policies := make([]core.Policy, 0, len(names))
	for _, name := range names {
		p, err := buildPolicy(name)
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, nil
}

func buildPolicy(name string) (core.Policy, error) {
	switch name {
	case "final":
		return policy.FinalExit{}, nil
	case "oracle":
		return policy.Oracle{}, nil
	}
	if rest, ok := strings.CutPrefix(name, "exit-"); ok {
		exit, err := strconv.Atoi(rest)
		if err != nil {
			return nil, fmt.Errorf("unknown policy: %s", name)
		}
		return policy.FixedExit{Exit: exit}, nil
	}
	return nil, fmt.Errorf("unknown policy: %s", name)
}

func buildReporter(format string, writer io.Writer) (reporter.Reporter, error) {
	switch format {
	case reporter.FormatJSON:
		return reporter.JSONReporter{Writer: writer, Pretty: true}, nil
	case reporter.FormatTable:
		return reporter.TableReporter{Writer: writer}, nil
	case reporter.FormatMarkdown:
		return reporter.MarkdownReporter{Writer: writer}, nil
	case reporter.FormatCSV:
		return reporter.CSVReporter{Writer: writer}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

type progressBar struct {
	writer io.Writer
	total  int
	start  time.Time
	isTTY  bool
}

func newProgressBar(writer io.Writer, total int) *progressBar {
	return &progressBar{
		writer: writer,
		total:  total,
		start:  time.Now(),
		isTTY:  isTerminal(writer),
	}
}

func (p *progressBar) Update(completed int, total int) {
	if total <= 0 {
		total = p.total
	}
	width := 30
	if total <= 0 {
		elapsed := time.Since(p.start).Truncate(time.Second)
		if p.isTTY {
			fmt.Fprintf(p.writer, "\rProcessed %d samples (%s)", completed, elapsed)
		} else {
			fmt.Fprintf(p.writer, "Processed %d samples (%s)\n", completed, elapsed)
		}
		return
	}

	ratio := float64(completed) / float64(total)
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))

	bar := strings.Repeat("=", filled) + strings.Repeat(".", width-filled)
	percent := int(ratio * 100)
	elapsed := time.Since(p.start).Truncate(time.Second)

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	line := fmt.Sprintf("[%s] %3d%% (%d/%d) %s", barStyle.Render(bar), percent, completed, total, elapsed)
	if p.isTTY {
		fmt.Fprintf(p.writer, "\r%s", line)
	} else {
		fmt.Fprintf(p.writer, "%s\n", line)
	}

	if completed >= total {
		fmt.Fprintln(p.writer)
	}
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func progressWriter(cmd *cobra.Command) io.Writer {
	stderr := cmd.ErrOrStderr()
	stdout := cmd.OutOrStdout()

	if isTerminal(stderr) {
		return stderr
	}
	if isTerminal(stdout) {
		return stdout
	}
	return stderr
}

func resolveString(value string, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func resolveInt(value int, fallback int, defaultValue int) int {
	if value > 0 {
		return value
	}
	if fallback > 0 {
		return fallback
	}
	return defaultValue
}
