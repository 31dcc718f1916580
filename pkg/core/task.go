package core

import "fmt"

// Task identifies an evaluation benchmark and the metrics that apply to it.
type Task string

const (
	TaskSST2    Task = "sst-2"
	TaskMRPC    Task = "mrpc"
	TaskSTSB    Task = "sts-b"
	TaskSNLI    Task = "snli"
	TaskSciTail Task = "scitail"
	TaskIMDB    Task = "imdb"
)

// AllTasks lists the supported tasks in display order.
func AllTasks() []Task {
	return []Task{TaskSST2, TaskMRPC, TaskSTSB, TaskSNLI, TaskSciTail, TaskIMDB}
}

// ParseTask maps a task identifier onto the closed task set.
func ParseTask(name string) (Task, error) {
	for _, task := range AllTasks() {
		if string(task) == name {
			return task, nil
		}
	}
	return "", fmt.Errorf("unknown task: %s", name)
}

// Regression reports whether the task compares continuous scores rather
// than class indices.
func (t Task) Regression() bool {
	return t == TaskSTSB
}
