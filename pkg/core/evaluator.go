package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Evaluator drains a dataset of prediction-matrix rows, scores every exit
// head against the ground-truth column, and scores the predictions chosen
// by each configured policy.
type Evaluator struct {
	Dataset      Dataset
	Scorer       Scorer
	Policies     []Policy
	Workers      int
	Progress     func(completed, total int)
	TotalSamples int
}

type rowEval struct {
	sample  Sample
	choices []int
}

// Run executes an evaluation and returns a report. A run either fully
// succeeds or returns an error; no partial reports are produced.
func (e *Evaluator) Run(ctx context.Context) (EvalReport, error) {
	if e.Dataset == nil || e.Scorer == nil {
		return EvalReport{}, errors.New("evaluator: dataset and scorer are required")
	}

	workers := e.Workers
	if workers <= 0 {
		workers = 1
	}

	started := time.Now()
	sampleCh, errCh := e.Dataset.Samples(ctx)

	resultsCh := make(chan rowEval, workers)
	policyErrCh := make(chan error, workers)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		failed := false
		for sample := range sampleCh {
			select {
			case <-ctx.Done():
				return
			default:
			}
			if failed {
				// keep draining so the dataset producer can finish
				continue
			}

			row := rowEval{sample: sample, choices: make([]int, len(e.Policies))}
			for i, policy := range e.Policies {
				exit, err := policy.Choose(sample)
				if err != nil {
					select {
					case policyErrCh <- fmt.Errorf("policy %s: %w", policy.Name(), err):
					default:
					}
					failed = true
					break
				}
				row.choices[i] = exit
			}
			if failed {
				continue
			}

			select {
			case resultsCh <- row:
			case <-ctx.Done():
				return
			}
		}
	}

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go worker()
	}

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	var rows []rowEval
	var runErr error
	for {
		select {
		case <-ctx.Done():
			return EvalReport{}, ctx.Err()
		case err, ok := <-errCh:
			if ok && err != nil && runErr == nil {
				runErr = err
			}
		case err := <-policyErrCh:
			if err != nil && runErr == nil {
				runErr = err
			}
		case row, ok := <-resultsCh:
			if !ok {
				// workers are done; pick up any error still queued
				select {
				case err, open := <-errCh:
					if open && err != nil && runErr == nil {
						runErr = err
					}
				default:
				}
				select {
				case err := <-policyErrCh:
					if err != nil && runErr == nil {
						runErr = err
					}
				default:
				}
				if runErr != nil {
					return EvalReport{}, runErr
				}
				return e.buildReport(rows, started)
			}
			rows = append(rows, row)
			if e.Progress != nil {
				e.Progress(len(rows), e.TotalSamples)
			}
		}
	}
}

func (e *Evaluator) buildReport(rows []rowEval, started time.Time) (EvalReport, error) {
	samples := make([]Sample, len(rows))
	for i, row := range rows {
		samples[i] = row.sample
	}

	matrix, err := NewPredictionMatrix(samples)
	if err != nil {
		return EvalReport{}, err
	}
	labels := matrix.Labels()

	report := EvalReport{
		TaskName:     e.Scorer.Name(),
		DatasetName:  e.Dataset.Name(),
		TotalSamples: matrix.Len(),
		NumExits:     matrix.NumExits(),
		StartedAt:    started,
	}

	for exit := 0; exit < matrix.NumExits(); exit++ {
		column, err := matrix.ExitColumn(exit)
		if err != nil {
			return EvalReport{}, err
		}
		scores, err := e.Scorer.Score(column, labels)
		if err != nil {
			return EvalReport{}, err
		}
		report.ExitResults = append(report.ExitResults, ExitResult{Exit: exit, Metrics: scores})
	}

	for i, policy := range e.Policies {
		chosen := make([]float64, len(rows))
		var depth float64
		for j, row := range rows {
			exit := row.choices[i]
			chosen[j] = row.sample.Predictions[exit]
			depth += float64(exit)
		}
		scores, err := e.Scorer.Score(chosen, labels)
		if err != nil {
			return EvalReport{}, err
		}
		report.PolicyResults = append(report.PolicyResults, PolicyResult{
			Name:     policy.Name(),
			Metrics:  scores,
			MeanExit: depth / float64(len(rows)),
		})
	}

	report.FinishedAt = time.Now()
	return report, nil
}
