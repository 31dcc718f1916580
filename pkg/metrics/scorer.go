package metrics

import "exiteval/pkg/core"

// TaskScorer adapts the task dispatch to the core.Scorer seam used by the
// evaluator.
type TaskScorer struct {
	Task core.Task
}

func (s TaskScorer) Name() string {
	return string(s.Task)
}

func (s TaskScorer) Score(predictions, labels []float64) (map[string]float64, error) {
	return Compute(s.Task, predictions, labels)
}
