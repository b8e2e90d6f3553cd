// Package layout holds the coordinate tables that say where each logical
// field is drawn on each form template.
//
// Coordinates are PDF points measured from the bottom-left corner of the
// page. Tables are read-only once built; overrides produce a new Registry.
package layout

import (
	"fmt"
	"sort"

	"github.com/lvillar/formfill"
)

// Point is a field anchor: the left end of the text baseline, or the centre
// of a checkbox mark.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Group ties fields that are drawn as a unit and must stay MinGap apart,
// such as the letter and digit halves of a plate.
type Group struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
	MinGap  float64  `json:"min_gap"`
}

// Table is the coordinate table of one form type.
type Table struct {
	form   formfill.FormType
	points map[string]Point
	groups []Group
}

// NewTable builds a table from a field map. The map is copied.
func NewTable(ft formfill.FormType, points map[string]Point, groups ...Group) *Table {
	t := &Table{form: ft, points: make(map[string]Point, len(points))}
	for k, p := range points {
		t.points[k] = p
	}
	t.groups = append(t.groups, groups...)
	return t
}

// FormType returns the form the table belongs to.
func (t *Table) FormType() formfill.FormType { return t.form }

// Lookup returns the anchor of field. Absent fields are silently skipped
// by the overlay builder.
func (t *Table) Lookup(field string) (Point, bool) {
	p, ok := t.points[field]
	return p, ok
}

// Fields returns the field names in lexical order.
func (t *Table) Fields() []string {
	names := make([]string, 0, len(t.points))
	for k := range t.points {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Points returns a copy of the field map.
func (t *Table) Points() map[string]Point {
	out := make(map[string]Point, len(t.points))
	for k, p := range t.points {
		out[k] = p
	}
	return out
}

// Group returns the group called name.
func (t *Table) Group(name string) (Group, bool) {
	for _, g := range t.groups {
		if g.Name == name {
			return g, true
		}
	}
	return Group{}, false
}

// Groups returns the table's field groups.
func (t *Table) Groups() []Group {
	return append([]Group(nil), t.groups...)
}

func (t *Table) with(points map[string]Point) *Table {
	nt := NewTable(t.form, t.points, t.groups...)
	for k, p := range points {
		nt.points[k] = p
	}
	return nt
}

// Registry maps form types to their coordinate tables.
type Registry struct {
	tables map[formfill.FormType]*Table
}

// NewRegistry builds a registry from tables.
func NewRegistry(tables ...*Table) *Registry {
	r := &Registry{tables: make(map[formfill.FormType]*Table, len(tables))}
	for _, t := range tables {
		r.tables[t.form] = t
	}
	return r
}

// Table returns the table of ft. A nil registry has no tables.
func (r *Registry) Table(ft formfill.FormType) (*Table, error) {
	var t *Table
	ok := false
	if r != nil {
		t, ok = r.tables[ft]
	}
	if !ok {
		return nil, fmt.Errorf("layout: %w: %q", formfill.ErrUnsupportedFormType, ft)
	}
	return t, nil
}

// FormTypes returns the form types with a table, in lexical order.
func (r *Registry) FormTypes() []formfill.FormType {
	out := make([]formfill.FormType, 0, len(r.tables))
	for ft := range r.tables {
		out = append(out, ft)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
