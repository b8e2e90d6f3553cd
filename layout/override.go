package layout

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lvillar/formfill"
)

// overrideFile is the on-disk shape of a layout override:
//
//	contrato_mandato:
//	  mandante_nombre: [240, 662]
type overrideFile map[string]map[string][]float64

// LoadOverrides reads a YAML override file and returns a registry where
// the listed fields replace those of base. Unlisted fields keep their base
// coordinates. base is not modified.
func LoadOverrides(base *Registry, path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("layout: reading overrides %s: %w", path, err)
	}
	return ParseOverrides(base, raw)
}

// ParseOverrides is LoadOverrides on an in-memory document.
func ParseOverrides(base *Registry, raw []byte) (*Registry, error) {
	var doc overrideFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("layout: parsing overrides: %w", err)
	}

	out := NewRegistry()
	for ft, t := range base.tables {
		out.tables[ft] = t
	}
	for name, fields := range doc {
		ft, err := formfill.ParseFormType(name)
		if err != nil {
			return nil, fmt.Errorf("layout: overrides: %w", err)
		}
		t, ok := out.tables[ft]
		if !ok {
			t = NewTable(ft, nil)
		}
		points := make(map[string]Point, len(fields))
		for field, xy := range fields {
			if len(xy) != 2 {
				return nil, fmt.Errorf("layout: overrides: %s.%s: want [x, y], got %d values", ft, field, len(xy))
			}
			points[field] = Point{X: xy[0], Y: xy[1]}
		}
		out.tables[ft] = t.with(points)
	}
	return out, nil
}
