package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPredictionMatrixColumns(t *testing.T) {
	matrix, err := NewPredictionMatrix([]Sample{
		{ID: "1", Predictions: []float64{0, 1, 1}, Label: 1},
		{ID: "2", Predictions: []float64{0, 0, 1}, Label: 1},
		{ID: "3", Predictions: []float64{1, 1, 0}, Label: 0},
	})
	require.NoError(t, err)
	require.Equal(t, 3, matrix.Len())
	require.Equal(t, 3, matrix.NumExits())

	column, err := matrix.ExitColumn(1)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 0, 1}, column)

	require.Equal(t, []float64{1, 1, 0}, matrix.Labels())
	require.Equal(t, "2", matrix.Row(1).ID)
}

func TestPredictionMatrixRejectsRaggedRows(t *testing.T) {
	_, err := NewPredictionMatrix([]Sample{
		{Predictions: []float64{0, 1}, Label: 1},
		{Predictions: []float64{0, 1, 1}, Label: 1},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "row 1")
	require.Contains(t, err.Error(), "expected 2")
}

func TestPredictionMatrixRejectsEmpty(t *testing.T) {
	_, err := NewPredictionMatrix(nil)
	require.Error(t, err)

	_, err = NewPredictionMatrix([]Sample{{Label: 1}})
	require.Error(t, err)
}

func TestPredictionMatrixExitOutOfRange(t *testing.T) {
	matrix, err := NewPredictionMatrix([]Sample{{Predictions: []float64{0, 1}, Label: 1}})
	require.NoError(t, err)

	_, err = matrix.ExitColumn(2)
	require.Error(t, err)
	_, err = matrix.ExitColumn(-1)
	require.Error(t, err)
}

func TestEvalReportJSONRoundTrip(t *testing.T) {
	report := EvalReport{
		TaskName:     "sst-2",
		DatasetName:  "dev.csv",
		TotalSamples: 2,
		NumExits:     2,
		ExitResults: []ExitResult{
			{Exit: 0, Metrics: map[string]float64{"acc": 0.5}},
			{Exit: 1, Metrics: map[string]float64{"acc": 1.0}},
		},
		PolicyResults: []PolicyResult{
			{Name: "final", Metrics: map[string]float64{"acc": 1.0}, MeanExit: 1},
		},
	}

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded EvalReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, report.TaskName, decoded.TaskName)
	require.Equal(t, report.NumExits, decoded.NumExits)
	require.Len(t, decoded.ExitResults, 2)
	require.Equal(t, 1.0, decoded.ExitResults[1].Metrics["acc"])
	require.Equal(t, "final", decoded.PolicyResults[0].Name)
}
