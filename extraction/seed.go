package extraction

import (
	"fmt"
	"maps"

	"github.com/lvillar/formfill"
	"github.com/lvillar/formfill/normalize"
)

// Seed builds the part of a form payload that a structured extraction can
// answer: the vehicle, the registered owner as the form's first party and
// the registration details. Other parties and contract terms come from the
// caller, usually through Merge.
func Seed(ft formfill.FormType, structured formfill.Data) (formfill.Data, error) {
	vehicle := structured.Section("vehiculo")
	owner := structured.Section("propietario")
	reg := structured.Section("registro")

	party := formfill.Data{}
	for _, k := range []string{"nombre", "direccion", "telefono", "ciudad"} {
		if v := owner.String(k); v != "" {
			party[k] = v
		}
	}
	if v := owner.String("identificacion"); v != "" {
		party["documento"] = v
	}

	out := formfill.Data{"vehiculo": maps.Clone(vehicle)}
	copyKeys(out, reg, "organismo_transito")

	switch ft {
	case formfill.Tramite:
		copyKeys(out, vehicle, vehicleKeys...)
		copyKeys(out, reg, "declaracion_importacion", "fecha_importacion", "fecha_matricula")
		if v := reg.String("licencia_transito_numero"); v != "" {
			out["licencia_transito"] = v
		}
		first, second, given := normalize.SplitName(party.String("nombre"))
		for k, v := range map[string]string{
			"propietario_primer_apellido":  first,
			"propietario_segundo_apellido": second,
			"propietario_nombres":          given,
		} {
			if v != "" {
				out[k] = v
			}
		}
		for _, k := range []string{"documento", "direccion", "telefono", "ciudad"} {
			if v := party.String(k); v != "" {
				out["propietario_"+k] = v
			}
		}
	case formfill.Compraventa:
		out["vendedor"] = party
	case formfill.Mandato:
		out["mandante"] = party
	default:
		return nil, fmt.Errorf("extraction: %w: %q", formfill.ErrUnsupportedFormType, ft)
	}

	if notes := structured.String("observaciones"); notes != "" {
		out["observaciones"] = notes
	}
	return out, nil
}

func copyKeys(dst, src formfill.Data, keys ...string) {
	for _, k := range keys {
		if v := src.String(k); v != "" {
			dst[k] = v
		}
	}
}

// Merge returns base overlaid with extra. Sections present in both are
// merged key by key; any other value in extra replaces the one in base.
func Merge(base, extra formfill.Data) formfill.Data {
	out := maps.Clone(base)
	if out == nil {
		out = formfill.Data{}
	}
	for k, v := range extra {
		bs, es := base.Section(k), extra.Section(k)
		if bs != nil && es != nil {
			merged := maps.Clone(bs)
			maps.Copy(merged, es)
			out[k] = merged
			continue
		}
		out[k] = v
	}
	return out
}
