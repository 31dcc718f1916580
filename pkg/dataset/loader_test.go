package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"exiteval/pkg/core"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func collect(t *testing.T, ds core.Dataset) []core.Sample {
	t.Helper()
	ch, errCh := ds.Samples(context.Background())
	var got []core.Sample
	for sample := range ch {
		got = append(got, sample)
	}
	for err := range errCh {
		require.NoError(t, err)
	}
	return got
}

func TestMatrixDatasetJSON(t *testing.T) {
	path := writeFile(t, "matrix.json",
		`[{"id":"1","predictions":[0,1,1],"label":1},{"id":"2","predictions":[0,0,1],"label":0}]`)

	ds := NewMatrixDataset(path)
	count, err := ds.Len(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, count)

	got := collect(t, ds)
	require.Len(t, got, 2)
	require.Equal(t, []float64{0, 1, 1}, got[0].Predictions)
	require.Equal(t, 1.0, got[0].Label)
}

func TestMatrixDatasetJSONL(t *testing.T) {
	path := writeFile(t, "matrix.jsonl",
		`{"id":"1","predictions":[1,1],"label":1}`+"\n"+`{"id":"2","predictions":[0,1],"label":1}`)

	ds := NewMatrixDataset(path)
	count, err := ds.Len(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, count)

	got := collect(t, ds)
	require.Len(t, got, 2)
	require.Equal(t, []float64{0, 1}, got[1].Predictions)
}

func TestMatrixDatasetCSVWithHeader(t *testing.T) {
	path := writeFile(t, "matrix.csv", "exit0,exit1,label\n1,1,1\n0,1,1\n0,0,0\n")

	ds := NewMatrixDataset(path)
	count, err := ds.Len(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, count)

	got := collect(t, ds)
	require.Len(t, got, 3)
	require.Equal(t, "0", got[0].ID)
	require.Equal(t, []float64{1, 1}, got[0].Predictions)
	require.Equal(t, 0.0, got[2].Label)
}

func TestMatrixDatasetTSV(t *testing.T) {
	path := writeFile(t, "matrix.tsv", "1\t0\t1\n0\t0\t0\n")

	got := collect(t, NewMatrixDataset(path))
	require.Len(t, got, 2)
	require.Equal(t, []float64{1, 0}, got[0].Predictions)
	require.Equal(t, 1.0, got[0].Label)
}

func TestMatrixDatasetRaggedRow(t *testing.T) {
	path := writeFile(t, "matrix.csv", "1,1,1\n0,1\n")

	ds := NewMatrixDataset(path)
	ch, errCh := ds.Samples(context.Background())
	for range ch {
	}
	err := <-errCh
	require.Error(t, err)
	require.Contains(t, err.Error(), "2 columns")
	require.Contains(t, err.Error(), "expected 3")
}

func TestMatrixDatasetNonNumericCell(t *testing.T) {
	path := writeFile(t, "matrix.csv", "1,1,1\n0,oops,1\n")

	ds := NewMatrixDataset(path)
	ch, errCh := ds.Samples(context.Background())
	for range ch {
	}
	err := <-errCh
	require.Error(t, err)
	require.Contains(t, err.Error(), "not numeric")
}

func TestDetectFormatBySniffing(t *testing.T) {
	jsonPath := writeFile(t, "matrix", `[{"predictions":[1],"label":1}]`)
	format, err := detectFormat(jsonPath)
	require.NoError(t, err)
	require.Equal(t, "json", format)

	tsvPath := writeFile(t, "matrix2", "1\t0\t1\n")
	format, err = detectFormat(tsvPath)
	require.NoError(t, err)
	require.Equal(t, "tsv", format)

	csvPath := writeFile(t, "matrix3", "1,0,1\n")
	format, err = detectFormat(csvPath)
	require.NoError(t, err)
	require.Equal(t, "csv", format)
}

func TestSliceDataset(t *testing.T) {
	samples := []core.Sample{
		{ID: "1", Predictions: []float64{1, 1}, Label: 1},
		{ID: "2", Predictions: []float64{0, 1}, Label: 1},
	}
	ds := NewSliceDataset(samples, "")
	require.Equal(t, "memory", ds.Name())

	count, err := ds.Len(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, count)

	got := collect(t, ds)
	require.Equal(t, samples, got)
}
