package core

import "context"

// Dataset provides prediction-matrix rows for evaluation.
type Dataset interface {
	Name() string
	Len(ctx context.Context) (int, error)
	Samples(ctx context.Context) (<-chan Sample, <-chan error)
}
