// Package output serialises extraction and calculation results.
package output

import (
	"encoding/json"

	"github.com/ukaji3/tablecalc-go/pkg/tablecalc/models"
)

// ToJSON serialises v, indenting when pretty is set.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// TablesToJSON serialises a table list under a "tables" key.
func TablesToJSON(revision string, tables []models.Table, pretty bool) ([]byte, error) {
	return ToJSON(TableList{Revision: revision, Tables: tables}, pretty)
}

// TableList is the listing shape shared by the CLI and the HTTP API.
type TableList struct {
	Revision string         `json:"revision,omitempty"`
	Tables   []models.Table `json:"tables"`
}
