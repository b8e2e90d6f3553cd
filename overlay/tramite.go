package overlay

import (
	"fmt"
	"strings"

	"github.com/lvillar/formfill/layout"
	"github.com/lvillar/formfill/normalize"
	"github.com/lvillar/formfill/textfit"
)

// Widths of the fitted boxes on the trámite form.
const (
	tramiteModelWidth  = 120
	tramiteIDWidth     = 260
	tramiteNotesWidth  = 350
	tramiteRegMarkSize = 10
)

// tramiteVehicle lists the plain vehicle fields: form field, payload key
// and payload aliases.
var tramiteVehicle = []struct {
	field   string
	key     string
	aliases []string
}{
	{"marca", "marca", nil},
	{"linea", "linea", nil},
	{"color", "color", nil},
	{"cilindrada", "cilindrada", []string{"cilindrada_cc"}},
	{"capacidad", "capacidad", []string{"capacidad_kg_psj"}},
	{"potencia", "potencia", []string{"potencia_hp"}},
	{"carroceria", "carroceria", []string{"tipo_carroceria"}},
}

// tramiteIdentifiers are drawn fitted, each followed by its REG S/N mark.
var tramiteIdentifiers = []struct {
	field   string
	key     string
	aliases []string
	reg     string
}{
	{"numero_motor", "numero_motor", nil, "reg_motor"},
	{"numero_chasis", "numero_chasis", nil, "reg_chasis"},
	{"numero_serie", "numero_serie", nil, "reg_serie"},
	{"numero_vin", "numero_vin", []string{"vin"}, ""},
}

var partyFields = []string{"primer_apellido", "segundo_apellido", "nombres", "documento", "direccion", "ciudad", "telefono"}

func fillTramite(f *filler) {
	f.text("fecha_dia", fmt.Sprintf("%02d", f.now.Day()), textfit.DefaultSize)
	f.text("fecha_mes", fmt.Sprintf("%02d", int(f.now.Month())), textfit.DefaultSize)
	f.text("fecha_año", fmt.Sprint(f.now.Year()), textfit.DefaultSize)
	f.text("organismo_transito", "RUNT", textfit.DefaultSize)

	f.plate()

	for _, v := range tramiteVehicle {
		f.text(v.field, f.res.Vehicle(v.key, v.aliases...), textfit.DefaultSize)
	}
	f.fit("modelo", f.res.Vehicle("modelo"), tramiteModelWidth)

	for _, id := range tramiteIdentifiers {
		f.fit(id.field, f.res.Vehicle(id.key, id.aliases...), tramiteIDWidth)
		if id.reg != "" {
			f.regMark(id.reg, f.res.Vehicle("reg_"+id.key))
		}
	}

	f.classify(normalize.FuelRules, f.res.Vehicle("combustible"))
	f.classify(normalize.ClassRules, f.res.Vehicle("clase_vehiculo"))
	f.classify(normalize.ServiceRules, f.res.Vehicle("servicio"))

	f.party("propietario", true)
	f.party("comprador", false)

	f.fit("observaciones", f.res.Root("observaciones"), tramiteNotesWidth)

	f.text("declaracion_importacion", f.res.Root("declaracion_importacion"), textfit.DefaultSize)
	if raw := f.res.Root("fecha_importacion"); raw != "" {
		d, err := normalize.SplitDate(raw)
		if err != nil {
			f.logger.Warn("import date skipped", "value", raw, "error", err)
		} else {
			f.text("importacion_dia", d.Day, textfit.DefaultSize)
			f.text("importacion_mes", d.Month, textfit.DefaultSize)
			f.text("importacion_ano", d.Year, textfit.DefaultSize)
		}
	}
}

// plate draws the plate split into letters and digits, kept apart by the
// table's plate group.
func (f *filler) plate() {
	letters, digits := normalize.SplitPlate(f.res.Vehicle("placa"))
	if letters == "" {
		return
	}

	g, grouped := f.table.Group(layout.PlateGroup.Name)
	lp, lok := f.table.Lookup("placa_letras")
	dp, dok := f.table.Lookup("placa_numeros")
	if !grouped || !lok || !dok {
		f.text("placa_letras", letters, textfit.DefaultSize)
		f.text("placa_numeros", digits, textfit.DefaultSize)
		return
	}

	var failed bool
	f.guard("placa", func() error {
		_, err := f.canvas.DrawGroup([]textfit.GroupPart{
			{Field: "placa_letras", At: lp, Text: letters},
			{Field: "placa_numeros", At: dp, Text: digits},
		}, textfit.DefaultSize, g.MinGap)
		failed = err != nil
		return err
	})
	if failed {
		f.text("placa_letras", letters, textfit.DefaultSize)
		f.text("placa_numeros", digits, textfit.DefaultSize)
	}
}

// regMark marks reg_<x>_s or reg_<x>_n when value is exactly S or N.
func (f *filler) regMark(prefix, value string) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "S":
		f.check(prefix+"_s", tramiteRegMarkSize)
	case "N":
		f.check(prefix+"_n", tramiteRegMarkSize)
	}
}

// partyValue reads <party>_<key> at the root, then <key> inside the
// <party> section.
func (f *filler) partyValue(party, key string) string {
	return f.res.Resolve(normalize.Field{
		Name: party + "_" + key,
		Sources: []normalize.Source{
			{Key: party + "_" + key},
			{Section: party, Key: key},
		},
	})
}

// party draws the identity block of the owner or the buyer. The owner
// always gets a document type mark; the buyer only when a type was given.
func (f *filler) party(party string, alwaysMarkType bool) {
	for _, key := range partyFields {
		v := f.partyValue(party, key)
		if key == "documento" {
			v = normalize.CleanDocumentNumber(v)
		}
		f.text(party+"_"+key, v, textfit.DefaultSize)
	}

	docType := f.partyValue(party, "tipo_documento")
	switch outcome, ok := normalize.DocumentTypeRules.Match(docType); {
	case ok:
		f.check(party+"_"+outcome, textfit.DefaultSize)
	case alwaysMarkType || docType != "":
		f.check(party+"_"+normalize.OtherDocument, textfit.DefaultSize)
	}
}
