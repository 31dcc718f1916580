package core

import "time"

// ExitResult holds the metric map for one exit head evaluated in isolation.
type ExitResult struct {
	Exit    int                `json:"exit" yaml:"exit"`
	Metrics map[string]float64 `json:"metrics" yaml:"metrics"`
}

// PolicyResult holds the metric map for predictions chosen by a policy,
// along with the average depth of the exits it picked.
type PolicyResult struct {
	Name     string             `json:"name" yaml:"name"`
	Metrics  map[string]float64 `json:"metrics" yaml:"metrics"`
	MeanExit float64            `json:"mean_exit" yaml:"mean_exit"`
}

// EvalReport summarizes an evaluation run over one prediction matrix.
type EvalReport struct {
	TaskName      string            `json:"task_name" yaml:"task_name"`
	DatasetName   string            `json:"dataset_name" yaml:"dataset_name"`
	TotalSamples  int               `json:"total_samples" yaml:"total_samples"`
	NumExits      int               `json:"num_exits" yaml:"num_exits"`
	ExitResults   []ExitResult      `json:"exit_results" yaml:"exit_results"`
	PolicyResults []PolicyResult    `json:"policy_results,omitempty" yaml:"policy_results,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	StartedAt     time.Time         `json:"started_at" yaml:"started_at"`
	FinishedAt    time.Time         `json:"finished_at" yaml:"finished_at"`
}
