package core

// Policy selects which exit's prediction to trust for a sample.
type Policy interface {
	Name() string
	Choose(sample Sample) (int, error)
}
