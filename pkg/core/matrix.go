package core

import (
	"errors"
	"fmt"
)

// PredictionMatrix is a rectangular samples-by-exits table of predicted
// labels with the ground-truth label attached to each row.
type PredictionMatrix struct {
	exits   int
	samples []Sample
}

// NewPredictionMatrix validates that every row carries the same number of
// exit predictions and wraps the rows.
func NewPredictionMatrix(samples []Sample) (*PredictionMatrix, error) {
	if len(samples) == 0 {
		return nil, errors.New("matrix: no samples")
	}
	exits := len(samples[0].Predictions)
	if exits == 0 {
		return nil, errors.New("matrix: rows carry no exit predictions")
	}
	for i, sample := range samples {
		if len(sample.Predictions) != exits {
			return nil, fmt.Errorf("matrix: row %d has %d exit predictions, expected %d", i, len(sample.Predictions), exits)
		}
	}
	return &PredictionMatrix{exits: exits, samples: samples}, nil
}

func (m *PredictionMatrix) Len() int {
	return len(m.samples)
}

func (m *PredictionMatrix) NumExits() int {
	return m.exits
}

func (m *PredictionMatrix) Row(i int) Sample {
	return m.samples[i]
}

// ExitColumn returns every sample's prediction at the given exit.
func (m *PredictionMatrix) ExitColumn(exit int) ([]float64, error) {
	if exit < 0 || exit >= m.exits {
		return nil, fmt.Errorf("matrix: exit %d out of range [0, %d)", exit, m.exits)
	}
	column := make([]float64, len(m.samples))
	for i, sample := range m.samples {
		column[i] = sample.Predictions[exit]
	}
	return column, nil
}

// Labels returns the ground-truth column.
func (m *PredictionMatrix) Labels() []float64 {
	labels := make([]float64, len(m.samples))
	for i, sample := range m.samples {
		labels[i] = sample.Label
	}
	return labels
}
