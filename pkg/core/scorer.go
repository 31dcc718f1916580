package core

// Scorer computes named metrics for a predictions/labels pair.
type Scorer interface {
	Name() string
	Score(predictions, labels []float64) (map[string]float64, error)
}
