package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ukaji3/tablecalc-go/internal/logging"
	"github.com/ukaji3/tablecalc-go/pkg/tablecalc"
	"github.com/ukaji3/tablecalc-go/pkg/tablecalc/calc"
	"github.com/ukaji3/tablecalc-go/pkg/tablecalc/models"
	"github.com/ukaji3/tablecalc-go/pkg/tablecalc/output"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error  string         `json:"error"`
	Code   string         `json:"code"`
	Detail map[string]any `json:"detail,omitempty"`
}

// errMissingParameter is returned for absent required query parameters.
var errMissingParameter = errors.New("missing parameter")

func (s *Server) snapshot(c *gin.Context) (*tablecalc.Snapshot, bool) {
	snap, err := s.store.Current()
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return snap, true
}

func operation(c *gin.Context) (calc.Operation, bool) {
	op, err := calc.ParseOperation(c.DefaultQuery("op", string(calc.OpSum)))
	if err != nil {
		writeError(c, err)
		return "", false
	}
	return op, true
}

func requireQuery(c *gin.Context, name string) (string, bool) {
	v := c.Query(name)
	if v == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:  errMissingParameter.Error() + ": " + name,
			Code:   "missing_parameter",
			Detail: map[string]any{"parameter": name},
		})
		return "", false
	}
	return v, true
}

// Health reports whether a workbook is loaded.
func (s *Server) Health(c *gin.Context) {
	body := gin.H{"status": "healthy", "loaded": false}
	if snap, err := s.store.Current(); err == nil {
		body["loaded"] = true
		body["revision"] = snap.Revision
	}
	c.JSON(http.StatusOK, body)
}

// ListTables lists the discovered tables.
func (s *Server) ListTables(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, output.TableList{Revision: snap.Revision, Tables: snap.Tables()})
}

// ListTableNames lists table labels only.
func (s *Server) ListTableNames(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"tables": snap.Catalog().Labels()})
}

// GetTable returns one table with its column and row labels.
func (s *Server) GetTable(c *gin.Context) {
	s.tableDetails(c, c.Param("name"))
}

// GetTableDetails is GetTable addressed by the table_name query parameter.
func (s *Server) GetTableDetails(c *gin.Context) {
	name, ok := requireQuery(c, "table_name")
	if !ok {
		return
	}
	s.tableDetails(c, name)
}

func (s *Server) tableDetails(c *gin.Context, name string) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	details, err := snap.TableDetails(name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// ListNames lists the workbook defined names of the loaded sheet.
func (s *Server) ListNames(c *gin.Context) {
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	names := make(map[string]string, len(snap.Catalog().Names))
	for name, rect := range snap.Catalog().Names {
		names[name] = rect.A1()
	}
	c.JSON(http.StatusOK, gin.H{"revision": snap.Revision, "names": names})
}

// CalcRange computes ?op= over the explicit ?range= reference.
func (s *Server) CalcRange(c *gin.Context) {
	ref, ok := requireQuery(c, "range")
	if !ok {
		return
	}
	spec, err := calc.RefSpec(ref)
	if err != nil {
		writeError(c, err)
		return
	}
	s.calculate(c, spec)
}

// CalcTable computes ?op= over a table, optionally filtered by ?column= and ?row=.
func (s *Server) CalcTable(c *gin.Context) {
	s.calculate(c, calc.TableSpec(c.Param("name"), c.Query("column"), c.Query("row")))
}

// CalcName computes ?op= over a defined name.
func (s *Server) CalcName(c *gin.Context) {
	s.calculate(c, calc.NameSpec(c.Param("name")))
}

func (s *Server) calculate(c *gin.Context, spec calc.Spec) {
	op, ok := operation(c)
	if !ok {
		return
	}
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	res, err := snap.Calculate(spec, op)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// RowSum sums a labelled row of a table, excluding the label column.
func (s *Server) RowSum(c *gin.Context) {
	table, ok := requireQuery(c, "table_name")
	if !ok {
		return
	}
	row, ok := requireQuery(c, "row_name")
	if !ok {
		return
	}
	snap, ok := s.snapshot(c)
	if !ok {
		return
	}
	res, err := snap.RowSum(table, row)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"table_name": res.Range.Table, "row_name": row, "sum": res.Value})
}

// Reload re-reads the configured workbook.
func (s *Server) Reload(c *gin.Context) {
	snap, err := s.store.Reload()
	if err != nil {
		logging.FromContext(c.Request.Context()).Warn("reload rejected", "error", err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"revision": snap.Revision,
		"source":   snap.Source,
		"tables":   len(snap.Catalog().Tables),
	})
}

// writeError maps core errors to status codes with structured detail.
func writeError(c *gin.Context, err error) {
	status, body := http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Code: "internal"}

	var (
		oob      *models.OutOfBoundsError
		noTable  *models.TableNotFoundError
		noLabel  *models.LabelNotFoundError
		noName   *models.NameNotFoundError
		empty    *models.EmptyRangeError
		overflow *models.OverflowError
		loadErr  *tablecalc.LoadError
	)
	switch {
	case errors.As(err, &oob):
		status, body.Code = http.StatusBadRequest, "out_of_bounds"
		body.Detail = map[string]any{"row": oob.Coord.Row, "col": oob.Coord.Col, "rows": oob.Rows, "cols": oob.Cols, "inverted": oob.Inverted}
	case errors.As(err, &noTable):
		status, body.Code = http.StatusNotFound, "table_not_found"
		body.Detail = map[string]any{"table": noTable.Name}
	case errors.As(err, &noLabel):
		status, body.Code = http.StatusNotFound, "label_not_found"
		body.Detail = map[string]any{"table": noLabel.Table, "label": noLabel.Label, "axis": noLabel.Axis}
	case errors.As(err, &noName):
		status, body.Code = http.StatusNotFound, "name_not_found"
		body.Detail = map[string]any{"name": noName.Name}
	case errors.As(err, &empty):
		status, body.Code = http.StatusUnprocessableEntity, "empty_range"
		body.Detail = map[string]any{"operation": empty.Operation, "range": empty.Range.Ref, "skipped": empty.Skipped}
	case errors.As(err, &overflow):
		status, body.Code = http.StatusUnprocessableEntity, "numeric_overflow"
		body.Detail = map[string]any{"operation": overflow.Operation, "range": overflow.Range.Ref, "included": overflow.Included}
	case errors.Is(err, models.ErrUnknownOperation):
		status, body.Code = http.StatusBadRequest, "unknown_operation"
	case errors.Is(err, models.ErrInvalidReference):
		status, body.Code = http.StatusBadRequest, "invalid_reference"
	case errors.Is(err, tablecalc.ErrNotLoaded):
		status, body.Code = http.StatusServiceUnavailable, "not_loaded"
	case errors.As(err, &loadErr):
		status, body.Code = http.StatusInternalServerError, "load_failed"
		body.Detail = map[string]any{"path": loadErr.Path, "sheet": loadErr.Sheet}
	}
	c.JSON(status, body)
}
