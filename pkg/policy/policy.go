// Package policy provides baseline exit-selection strategies used as
// reference points when evaluating learned selection algorithms.
package policy

import (
	"errors"
	"fmt"

	"exiteval/pkg/core"
)

// FixedExit always trusts the same exit head.
type FixedExit struct {
	Exit int
}

func (p FixedExit) Name() string {
	return fmt.Sprintf("exit-%d", p.Exit)
}

func (p FixedExit) Choose(sample core.Sample) (int, error) {
	if p.Exit < 0 || p.Exit >= len(sample.Predictions) {
		return 0, fmt.Errorf("exit %d out of range [0, %d)", p.Exit, len(sample.Predictions))
	}
	return p.Exit, nil
}

// FinalExit always trusts the deepest exit head.
type FinalExit struct{}

func (FinalExit) Name() string {
	return "final"
}

func (FinalExit) Choose(sample core.Sample) (int, error) {
	if len(sample.Predictions) == 0 {
		return 0, errors.New("sample carries no exit predictions")
	}
	return len(sample.Predictions) - 1, nil
}

// Oracle picks the shallowest exit whose prediction matches the label,
// falling back to the final exit when none does. It reads the label, so it
// is an upper bound on selection quality, never a deployable policy.
type Oracle struct{}

func (Oracle) Name() string {
	return "oracle"
}

func (Oracle) Choose(sample core.Sample) (int, error) {
	if len(sample.Predictions) == 0 {
		return 0, errors.New("sample carries no exit predictions")
	}
	for exit, prediction := range sample.Predictions {
		if prediction == sample.Label {
			return exit, nil
		}
	}
	return len(sample.Predictions) - 1, nil
}
