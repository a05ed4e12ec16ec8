package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capbudg.tsv")
	content := "Item\tQ1\tQ2\nWidgets\t100\t150\nGadgets\t200\t50\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SilenceErrors = true
	return cmd.Execute()
}

func TestCalcTableColumn(t *testing.T) {
	book := writeWorkbook(t)
	out := filepath.Join(t.TempDir(), "result.json")

	err := execute(t, "-w", book, "-o", out, "--log-level", "error",
		"calc", "--op", "sum", "--table", "Item", "--column", "Q1")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var res struct {
		Operation string  `json:"operation"`
		Value     float64 `json:"value"`
		Included  int     `json:"included"`
	}
	require.NoError(t, json.Unmarshal(data, &res))
	assert.Equal(t, "sum", res.Operation)
	assert.Equal(t, 300.0, res.Value)
	assert.Equal(t, 2, res.Included)
}

func TestCalcRejectsLabelsWithoutTable(t *testing.T) {
	book := writeWorkbook(t)
	tests := []struct {
		name string
		args []string
	}{
		{"range with column", []string{"--range", "B2:B3", "--column", "Q1"}},
		{"range with row", []string{"--range", "B2:B3", "--row", "Widgets"}},
		{"name with column", []string{"--name", "Print_Area", "--column", "Q1"}},
		{"name with row", []string{"--name", "Print_Area", "--row", "Widgets"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-w", book, "calc"}, tt.args...)
			assert.Error(t, execute(t, args...))
		})
	}
}

func TestCalcRequiresSelector(t *testing.T) {
	book := writeWorkbook(t)
	assert.Error(t, execute(t, "-w", book, "calc", "--column", "Q1"))
}
