package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/tablecalc-go/pkg/tablecalc"
)

const budgetTSV = "Revenue\n" +
	"Item\tQ1\tQ2\n" +
	"Widgets\t100\t150\n" +
	"Gadgets\t200\t50\n" +
	"\n" +
	"Costs\tAmount\n" +
	"Rent\t1200\n"

func newTestServer(t *testing.T, load bool) (*Server, string) {
	t.Helper()
	return newServerFor(t, budgetTSV, load)
}

func newServerFor(t *testing.T, content string, load bool) (*Server, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "budget.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts := tablecalc.DefaultOptions()
	opts.Logger = logger
	store := tablecalc.NewStore(path, opts)
	if load {
		_, err := store.Reload()
		require.NoError(t, err)
	}
	return NewServer(store, logger, gin.TestMode), path
}

func do(t *testing.T, s *Server, method, target string) (int, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(method, target, nil))
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w.Code, body
}

func TestNotLoaded(t *testing.T) {
	s, _ := newTestServer(t, false)

	code, body := do(t, s, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["loaded"])

	code, body = do(t, s, http.MethodGet, "/tables")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "not_loaded", body["code"])

	code, _ = do(t, s, http.MethodPost, "/reload")
	assert.Equal(t, http.StatusOK, code)
	code, body = do(t, s, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["loaded"])
}

func TestListTables(t *testing.T) {
	s, _ := newTestServer(t, true)

	code, body := do(t, s, http.MethodGet, "/tables")
	require.Equal(t, http.StatusOK, code)
	tables := body["tables"].([]any)
	require.Len(t, tables, 2)
	first := tables[0].(map[string]any)
	assert.Equal(t, "Revenue", first["label"])
	assert.Equal(t, "A1:C4", first["ref"])
	assert.NotEmpty(t, body["revision"])

	code, body = do(t, s, http.MethodGet, "/list_tables")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{"Revenue", "Costs"}, body["tables"])
}

func TestTableDetails(t *testing.T) {
	s, _ := newTestServer(t, true)

	code, body := do(t, s, http.MethodGet, "/tables/revenue")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{"Item", "Q1", "Q2"}, body["column_labels"])
	assert.Equal(t, []any{"Widgets", "Gadgets"}, body["row_labels"])

	code, body = do(t, s, http.MethodGet, "/get_table_details?table_name=Costs")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{"Rent"}, body["row_labels"])

	code, body = do(t, s, http.MethodGet, "/tables/Profit")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "table_not_found", body["code"])
	assert.Equal(t, "Profit", body["detail"].(map[string]any)["table"])

	code, body = do(t, s, http.MethodGet, "/get_table_details")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "missing_parameter", body["code"])
}

func TestCalc(t *testing.T) {
	s, _ := newTestServer(t, true)

	tests := []struct {
		target string
		code   int
		value  float64
		errStr string
	}{
		{"/tables/Revenue/calc?column=Q1", http.StatusOK, 300, ""},
		{"/tables/Revenue/calc?column=Q2&op=avg", http.StatusOK, 100, ""},
		{"/tables/Revenue/calc?row=Gadgets&op=max", http.StatusOK, 200, ""},
		{"/calc?range=A1:C4&op=count", http.StatusOK, 4, ""},
		{"/calc?range=B3:C3", http.StatusOK, 250, ""},
		{"/tables/Revenue/calc?column=Q9", http.StatusNotFound, 0, "label_not_found"},
		{"/tables/Nope/calc", http.StatusNotFound, 0, "table_not_found"},
		{"/names/Nope/calc", http.StatusNotFound, 0, "name_not_found"},
		{"/calc?range=A1:Z99", http.StatusBadRequest, 0, "out_of_bounds"},
		{"/calc?range=C3:B2", http.StatusBadRequest, 0, "out_of_bounds"},
		{"/calc?range=bad", http.StatusBadRequest, 0, "invalid_reference"},
		{"/calc?range=A1&op=median", http.StatusBadRequest, 0, "unknown_operation"},
		{"/calc?range=A1:A2&op=max", http.StatusUnprocessableEntity, 0, "empty_range"},
		{"/calc", http.StatusBadRequest, 0, "missing_parameter"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			code, body := do(t, s, http.MethodGet, tt.target)
			require.Equal(t, tt.code, code, body)
			if tt.errStr != "" {
				assert.Equal(t, tt.errStr, body["code"])
				assert.NotEmpty(t, body["error"])
				return
			}
			assert.Equal(t, tt.value, body["value"])
		})
	}
}

func TestCalcOverflow(t *testing.T) {
	s, _ := newServerFor(t, "Item\tBig\nA\t1e308\nB\t1e308\n", true)

	code, body := do(t, s, http.MethodGet, "/tables/Item/calc?column=Big")
	require.Equal(t, http.StatusUnprocessableEntity, code, body)
	assert.Equal(t, "numeric_overflow", body["code"])
	detail := body["detail"].(map[string]any)
	assert.Equal(t, "sum", detail["operation"])
	assert.Equal(t, "B2:B3", detail["range"])

	code, body = do(t, s, http.MethodGet, "/tables/Item/calc?column=Big&op=max")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1e308, body["value"])
}

func TestRowSum(t *testing.T) {
	s, _ := newTestServer(t, true)

	code, body := do(t, s, http.MethodGet, "/row_sum?table_name=revenue&row_name=Widgets")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Revenue", body["table_name"])
	assert.Equal(t, "Widgets", body["row_name"])
	assert.Equal(t, 250.0, body["sum"])

	code, body = do(t, s, http.MethodGet, "/row_sum?table_name=Revenue")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "row_name", body["detail"].(map[string]any)["parameter"])
}

func TestReloadFailureKeepsSnapshot(t *testing.T) {
	s, path := newTestServer(t, true)
	require.NoError(t, os.Remove(path))

	code, body := do(t, s, http.MethodPost, "/reload")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "load_failed", body["code"])

	code, _ = do(t, s, http.MethodGet, "/tables")
	assert.Equal(t, http.StatusOK, code)
}

func TestListNames(t *testing.T) {
	s, _ := newTestServer(t, true)

	code, body := do(t, s, http.MethodGet, "/names")
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, body["names"])
}
