// Package normalize turns loosely shaped payload values into the strings
// drawn on a form: field lookup across flat and nested layouts, document
// and plate cleanup, name reordering, keyword classification, Spanish
// dates and amounts.
package normalize

import "github.com/lvillar/formfill"

// VehicleSection is the nested section searched after the payload root.
const VehicleSection = "vehiculo"

// Source is one place a value may live: a key at the payload root when
// Section is empty, or a key inside the named section.
type Source struct {
	Section string
	Key     string
}

// Field is a logical field and the ordered places to look for it.
// The first non-empty hit wins.
type Field struct {
	Name    string
	Sources []Source
}

// VehicleField looks up key at the root, then its aliases at the root,
// then key and aliases inside the vehiculo section.
func VehicleField(key string, aliases ...string) Field {
	f := Field{Name: key}
	for _, section := range []string{"", VehicleSection} {
		f.Sources = append(f.Sources, Source{section, key})
		for _, a := range aliases {
			f.Sources = append(f.Sources, Source{section, a})
		}
	}
	return f
}

// Resolver reads logical fields out of a payload.
type Resolver struct {
	data formfill.Data
}

// NewResolver wraps data. A nil payload resolves every field to "".
func NewResolver(data formfill.Data) *Resolver {
	return &Resolver{data: data}
}

// Lookup returns the first non-empty value among f's sources.
func (r *Resolver) Lookup(f Field) (string, bool) {
	for _, src := range f.Sources {
		d := r.data
		if src.Section != "" {
			d = r.data.Section(src.Section)
		}
		if v := d.String(src.Key); v != "" {
			return v, true
		}
	}
	return "", false
}

// Resolve is Lookup without the presence flag.
func (r *Resolver) Resolve(f Field) string {
	v, _ := r.Lookup(f)
	return v
}

// Vehicle resolves a vehicle attribute; see VehicleField.
func (r *Resolver) Vehicle(key string, aliases ...string) string {
	return r.Resolve(VehicleField(key, aliases...))
}

// Root returns a top-level scalar.
func (r *Resolver) Root(key string) string {
	return r.data.String(key)
}

// In returns a scalar inside section.
func (r *Resolver) In(section, key string) string {
	return r.data.Section(section).String(key)
}

// Raw returns the untouched value stored at the payload root.
func (r *Resolver) Raw(key string) any {
	return r.data[key]
}
