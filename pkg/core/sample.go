package core

// Sample is one prediction-matrix row: the prediction of every exit head
// for a single input, plus the ground-truth label.
type Sample struct {
	ID          string    `json:"id,omitempty" yaml:"id,omitempty"`
	Predictions []float64 `json:"predictions" yaml:"predictions"`
	Label       float64   `json:"label" yaml:"label"`
}
