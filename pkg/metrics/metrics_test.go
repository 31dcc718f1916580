package metrics

import (
	"testing"

	"exiteval/pkg/core"

	"github.com/stretchr/testify/require"
)

func TestAccuracyCountsMatchingPositions(t *testing.T) {
	acc, err := Accuracy([]float64{1, 0, 1, 1}, []float64{1, 0, 0, 1})
	require.NoError(t, err)
	require.Equal(t, 0.75, acc)
}

func TestAccuracyIdenticalVectors(t *testing.T) {
	preds := []float64{0, 1, 2, 1, 0}
	acc, err := Accuracy(preds, preds)
	require.NoError(t, err)
	require.Equal(t, 1.0, acc)
}

func TestAccuracyFullyDisjointVectors(t *testing.T) {
	acc, err := Accuracy([]float64{1, 1, 1}, []float64{0, 0, 0})
	require.NoError(t, err)
	require.Equal(t, 0.0, acc)
}

func TestAccuracyAndF1(t *testing.T) {
	result, err := AccuracyAndF1([]float64{1, 1, 0, 0}, []float64{1, 0, 0, 0})
	require.NoError(t, err)

	// tp=1 fp=1 fn=0: precision 0.5, recall 1
	require.Equal(t, 0.75, result["acc"])
	require.InDelta(t, 2.0/3.0, result["f1"], 1e-12)
	require.Equal(t, (result["acc"]+result["f1"])/2, result["acc_and_f1"])
}

func TestPearsonAndSpearman(t *testing.T) {
	result, err := PearsonAndSpearman([]float64{1.0, 2.0, 3.0}, []float64{1.1, 1.9, 3.2})
	require.NoError(t, err)

	require.InDelta(t, 1.0, result["pearson"], 0.02)
	require.InDelta(t, 1.0, result["spearmanr"], 1e-12)
	require.InDelta(t, 1.0, result["corr"], 0.01)
	require.Equal(t, (result["pearson"]+result["spearmanr"])/2, result["corr"])
}

func TestSpearmanIgnoresMonotoneDistortion(t *testing.T) {
	// same ordering, wildly different scale
	result, err := PearsonAndSpearman([]float64{1, 2, 3, 4}, []float64{1, 10, 100, 1000})
	require.NoError(t, err)
	require.InDelta(t, 1.0, result["spearmanr"], 1e-12)
	require.Less(t, result["pearson"], 1.0)
}

func TestMatthewsCorrCoef(t *testing.T) {
	mcc, err := MatthewsCorrCoef([]float64{1, 0, 1, 0}, []float64{1, 0, 1, 0})
	require.NoError(t, err)
	require.Equal(t, 1.0, mcc)

	mcc, err = MatthewsCorrCoef([]float64{1, 0, 1, 0}, []float64{0, 1, 0, 1})
	require.NoError(t, err)
	require.Equal(t, -1.0, mcc)

	// degenerate confusion matrix
	mcc, err = MatthewsCorrCoef([]float64{1, 1}, []float64{1, 1})
	require.NoError(t, err)
	require.Equal(t, 0.0, mcc)
}

func TestComputeTaskTable(t *testing.T) {
	preds := []float64{1, 0, 1, 1}
	labels := []float64{1, 0, 0, 1}

	for _, task := range []core.Task{core.TaskSST2, core.TaskSNLI, core.TaskSciTail, core.TaskIMDB} {
		result, err := Compute(task, preds, labels)
		require.NoError(t, err)
		require.Equal(t, map[string]float64{"acc": 0.75}, result)
	}

	result, err := Compute(core.TaskMRPC, preds, labels)
	require.NoError(t, err)
	require.Len(t, result, 3)
	require.Contains(t, result, "acc")
	require.Contains(t, result, "f1")
	require.Contains(t, result, "acc_and_f1")

	result, err = Compute(core.TaskSTSB, []float64{1.0, 2.0, 3.0}, []float64{1.1, 1.9, 3.2})
	require.NoError(t, err)
	require.Len(t, result, 3)
	require.Contains(t, result, "pearson")
	require.Contains(t, result, "spearmanr")
	require.Contains(t, result, "corr")
}

func TestComputeLengthMismatch(t *testing.T) {
	_, err := Compute(core.TaskSST2, []float64{1, 0, 1}, []float64{1, 0, 1, 0})
	require.Error(t, err)
	require.Contains(t, err.Error(), "3")
	require.Contains(t, err.Error(), "4")
}

func TestComputeUnknownTask(t *testing.T) {
	_, err := Compute(core.Task("unknown-task"), []float64{1}, []float64{1})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown-task")
}

func TestRanksAverageTies(t *testing.T) {
	require.Equal(t, []float64{1.5, 1.5, 3, 4}, ranks([]float64{2, 2, 5, 9}))
	require.Equal(t, []float64{3, 1, 2}, ranks([]float64{30, 10, 20}))
}

func TestTaskScorerName(t *testing.T) {
	sc := TaskScorer{Task: core.TaskSST2}
	require.Equal(t, "sst-2", sc.Name())

	result, err := sc.Score([]float64{1, 0}, []float64{1, 1})
	require.NoError(t, err)
	require.Equal(t, 0.5, result["acc"])
}
