package models

import (
	"maps"
	"slices"
	"strings"
)

// Catalog is the set of named regions derived from one grid.
type Catalog struct {
	// Tables are the discovered tables in reading order.
	Tables []Table `json:"tables"`
	// Names maps workbook defined names to their rectangles.
	Names map[string]Rect `json:"names,omitempty"`
}

// Table looks up a table by label, ignoring case.
func (c *Catalog) Table(name string) (Table, bool) {
	if c == nil {
		return Table{}, false
	}
	name = strings.TrimSpace(name)
	for _, t := range c.Tables {
		if strings.EqualFold(t.Label, name) {
			return t, true
		}
	}
	return Table{}, false
}

// Name looks up a defined name, ignoring case.
func (c *Catalog) Name(name string) (Rect, bool) {
	if c == nil {
		return Rect{}, false
	}
	name = strings.TrimSpace(name)
	if r, ok := c.Names[name]; ok {
		return r, true
	}
	for _, k := range slices.Sorted(maps.Keys(c.Names)) {
		if strings.EqualFold(k, name) {
			return c.Names[k], true
		}
	}
	return Rect{}, false
}

// Labels returns the table labels in reading order.
func (c *Catalog) Labels() []string {
	if c == nil {
		return nil
	}
	labels := make([]string, len(c.Tables))
	for i, t := range c.Tables {
		labels[i] = t.Label
	}
	return labels
}
