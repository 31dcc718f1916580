package dataset

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"exiteval/pkg/core"
)

// MatrixDataset streams prediction-matrix rows from a file. Supported
// formats: json (array of rows), jsonl (row per line), csv and tsv
// (numeric columns, last column is the ground-truth label).
type MatrixDataset struct {
	Path     string
	NameHint string
}

func NewMatrixDataset(path string) *MatrixDataset {
	return &MatrixDataset{Path: path}
}

func (d *MatrixDataset) Name() string {
	if d.NameHint != "" {
		return d.NameHint
	}
	return filepath.Base(d.Path)
}

func (d *MatrixDataset) Len(ctx context.Context) (int, error) {
	format, err := detectFormat(d.Path)
	if err != nil {
		return 0, err
	}

	switch format {
	case "json":
		samples, err := loadJSONSamples(d.Path)
		if err != nil {
			return 0, err
		}
		return len(samples), nil
	case "jsonl":
		return countJSONLLines(ctx, d.Path)
	case "csv", "tsv":
		count := 0
		err := scanDelimited(ctx, d.Path, delimiter(format), func(core.Sample) error {
			count++
			return nil
		})
		return count, err
	default:
		return 0, errors.New("dataset: unsupported format")
	}
}

func (d *MatrixDataset) Samples(ctx context.Context) (<-chan core.Sample, <-chan error) {
	sampleCh := make(chan core.Sample)
	errCh := make(chan error, 1)

	go func() {
		defer close(sampleCh)
		defer close(errCh)

		format, err := detectFormat(d.Path)
		if err != nil {
			errCh <- err
			return
		}

		switch format {
		case "json":
			samples, err := loadJSONSamples(d.Path)
			if err != nil {
				errCh <- err
				return
			}
			for _, sample := range samples {
				select {
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				case sampleCh <- sample:
				}
			}
		case "jsonl":
			if err := streamJSONL(ctx, d.Path, sampleCh); err != nil {
				errCh <- err
			}
		case "csv", "tsv":
			err := scanDelimited(ctx, d.Path, delimiter(format), func(sample core.Sample) error {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case sampleCh <- sample:
					return nil
				}
			})
			if err != nil {
				errCh <- err
			}
		default:
			errCh <- errors.New("dataset: unsupported format")
		}
	}()

	return sampleCh, errCh
}

func delimiter(format string) rune {
	if format == "tsv" {
		return '\t'
	}
	return ','
}

func detectFormat(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jsonl":
		return "jsonl", nil
	case ".json":
		return "json", nil
	case ".csv":
		return "csv", nil
	case ".tsv":
		return "tsv", nil
	}

	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(string(b)) == "" {
			continue
		}
		if b == '[' {
			return "json", nil
		}
		if b == '{' {
			return "", errors.New("dataset: JSON object is not supported, use array or JSONL")
		}
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		if strings.ContainsRune(line, '\t') {
			return "tsv", nil
		}
		if strings.ContainsRune(line, ',') {
			return "csv", nil
		}
		return "", errors.New("dataset: unsupported format")
	}
}

func loadJSONSamples(path string) ([]core.Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var samples []core.Sample
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&samples); err != nil {
		return nil, err
	}
	return samples, nil
}

func streamJSONL(ctx context.Context, path string, out chan<- core.Sample) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 1024*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		var sample core.Sample
		if err := json.Unmarshal(line, &sample); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- sample:
		}
	}
	return scanner.Err()
}

func countJSONLLines(ctx context.Context, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 1024*1024)
	scanner.Buffer(buf, 1024*1024)

	count := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return count, nil
}

// scanDelimited parses a csv/tsv prediction matrix row by row. A
// non-numeric first record is treated as a header; every data row must
// carry the same column count, with the last column as the label.
func scanDelimited(ctx context.Context, path string, comma rune, fn func(core.Sample) error) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = comma
	reader.FieldsPerRecord = -1

	width := 0
	row := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		values, parseErr := parseNumericRecord(record)
		if parseErr != nil {
			if row == 0 && width == 0 {
				// header line
				continue
			}
			return fmt.Errorf("dataset: row %d: %w", row, parseErr)
		}
		if len(values) < 2 {
			return fmt.Errorf("dataset: row %d has %d columns, need at least one exit column and a label column", row, len(values))
		}
		if width == 0 {
			width = len(values)
		} else if len(values) != width {
			return fmt.Errorf("dataset: row %d has %d columns, expected %d", row, len(values), width)
		}

		sample := core.Sample{
			ID:          strconv.Itoa(row),
			Predictions: values[:len(values)-1],
			Label:       values[len(values)-1],
		}
		if err := fn(sample); err != nil {
			return err
		}
		row++
	}
}

func parseNumericRecord(record []string) ([]float64, error) {
	values := make([]float64, len(record))
	for i, field := range record {
		value, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("column %d is not numeric: %q", i, field)
		}
		values[i] = value
	}
	return values, nil
}
