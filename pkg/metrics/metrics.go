// Package metrics computes the task-keyed evaluation metrics for
// multi-exit classifier predictions: plain accuracy for the
// classification tasks, accuracy plus binary F1 for mrpc, and
// Pearson plus Spearman correlation for sts-b.
package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"exiteval/pkg/core"
)

// Compute dispatches on the task and returns its metric map. Predictions
// and labels must be parallel-indexed and equal in length.
func Compute(task core.Task, predictions, labels []float64) (map[string]float64, error) {
	if err := checkLengths(predictions, labels); err != nil {
		return nil, err
	}

	switch task {
	case core.TaskSST2, core.TaskSNLI, core.TaskSciTail, core.TaskIMDB:
		return map[string]float64{"acc": accuracy(predictions, labels)}, nil
	case core.TaskMRPC:
		return AccuracyAndF1(predictions, labels)
	case core.TaskSTSB:
		return PearsonAndSpearman(predictions, labels)
	default:
		return nil, fmt.Errorf("unknown task: %s", task)
	}
}

// Accuracy returns the fraction of positions where prediction and label
// are equal.
func Accuracy(predictions, labels []float64) (float64, error) {
	if err := checkLengths(predictions, labels); err != nil {
		return 0, err
	}
	return accuracy(predictions, labels), nil
}

// AccuracyAndF1 returns accuracy, binary F1 (positive class 1), and their
// arithmetic mean under "acc_and_f1".
func AccuracyAndF1(predictions, labels []float64) (map[string]float64, error) {
	if err := checkLengths(predictions, labels); err != nil {
		return nil, err
	}
	acc := accuracy(predictions, labels)
	f1 := f1Binary(predictions, labels)
	return map[string]float64{
		"acc":        acc,
		"f1":         f1,
		"acc_and_f1": (acc + f1) / 2,
	}, nil
}

// PearsonAndSpearman returns the Pearson and Spearman correlation
// coefficients and their arithmetic mean under "corr". Significance
// values are not computed.
func PearsonAndSpearman(predictions, labels []float64) (map[string]float64, error) {
	if err := checkLengths(predictions, labels); err != nil {
		return nil, err
	}
	pearson := stat.Correlation(predictions, labels, nil)
	spearman := stat.Correlation(ranks(predictions), ranks(labels), nil)
	return map[string]float64{
		"pearson":   pearson,
		"spearmanr": spearman,
		"corr":      (pearson + spearman) / 2,
	}, nil
}

// MatthewsCorrCoef returns the Matthews correlation coefficient for binary
// predictions. No task in the dispatch table currently routes here; the
// cola mapping is pending upstream confirmation.
func MatthewsCorrCoef(predictions, labels []float64) (float64, error) {
	if err := checkLengths(predictions, labels); err != nil {
		return 0, err
	}
	tp, tn, fp, fn := confusion(predictions, labels)
	denom := math.Sqrt(float64(tp+fp) * float64(tp+fn) * float64(tn+fp) * float64(tn+fn))
	if denom == 0 {
		return 0, nil
	}
	return (float64(tp*tn) - float64(fp*fn)) / denom, nil
}

func checkLengths(predictions, labels []float64) error {
	if len(predictions) != len(labels) {
		return fmt.Errorf("predictions and labels differ in length: %d vs %d", len(predictions), len(labels))
	}
	return nil
}

func accuracy(predictions, labels []float64) float64 {
	if len(predictions) == 0 {
		return 0
	}
	matched := 0
	for i := range predictions {
		if predictions[i] == labels[i] {
			matched++
		}
	}
	return float64(matched) / float64(len(predictions))
}

func f1Binary(predictions, labels []float64) float64 {
	tp, _, fp, fn := confusion(predictions, labels)
	if tp == 0 {
		return 0
	}
	precision := float64(tp) / float64(tp+fp)
	recall := float64(tp) / float64(tp+fn)
	return 2 * precision * recall / (precision + recall)
}

func confusion(predictions, labels []float64) (tp, tn, fp, fn int) {
	for i := range predictions {
		switch {
		case predictions[i] == 1 && labels[i] == 1:
			tp++
		case predictions[i] == 1 && labels[i] != 1:
			fp++
		case predictions[i] != 1 && labels[i] == 1:
			fn++
		default:
			tn++
		}
	}
	return tp, tn, fp, fn
}
