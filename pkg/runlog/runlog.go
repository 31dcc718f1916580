// Package runlog persists completed evaluation reports as JSON files in a
// log directory, one file per run.
package runlog

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"exiteval/pkg/core"
)

// Write stores the report under dir with a timestamped, collision-safe
// filename and returns the full path.
func Write(dir string, report core.EvalReport) (string, error) {
	if dir == "" {
		dir = "./logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	stamp := report.StartedAt
	if stamp.IsZero() {
		stamp = time.Now()
	}
	name := fmt.Sprintf("%s_%s_%s.json", stamp.UTC().Format("2006-01-02T15-04-05"), report.TaskName, suffix())
	path := filepath.Join(dir, name)

	tmp, err := os.CreateTemp(dir, "tmp-*.json")
	if err != nil {
		return "", err
	}
	encoder := json.NewEncoder(tmp)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return path, nil
}

// Read loads a report previously written by Write.
func Read(path string) (core.EvalReport, error) {
	file, err := os.Open(path)
	if err != nil {
		return core.EvalReport{}, err
	}
	defer file.Close()

	var report core.EvalReport
	if err := json.NewDecoder(file).Decode(&report); err != nil {
		return core.EvalReport{}, err
	}
	return report, nil
}

func suffix() string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
