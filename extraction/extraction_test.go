package extraction_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvillar/formfill"
	"github.com/lvillar/formfill/extraction"
	"github.com/lvillar/formfill/validate"
)

const response = "Claro, aquí está el resultado:\n```json\n" + `{
  "tipo_documento": "Licencia de Tránsito (Tarjeta de Propiedad)",
  "informacion_vehiculo": {
    "placa": "ABC123",
    "marca": "MAZDA",
    "linea": "3 TOURING",
    "modelo": "2020",
    "color": "GRIS",
    "numero_motor": "No disponible",
    "reg_numero_motor": "N",
    "puertas": 4
  },
  "informacion_propietario": {
    "nombre": "PEREZ GOMEZ JUAN CARLOS",
    "identificacion": "C.C. 12.345.678",
    "ciudad": "BOGOTA"
  },
  "detalles_registro": {
    "organismo_transito": "STRIA TTEYTTOE BOGOTA",
    "fecha_matricula": "2020-02-14",
    "licencia_transito_numero": "10012345678"
  },
  "restricciones_limitaciones": {"blindaje": "NO"}
}` + "\n```"

func TestParseExtractsObject(t *testing.T) {
	data, err := extraction.Parse(response)
	require.NoError(t, err)
	assert.Equal(t, "ABC123", data.Section(extraction.VehicleInfo).String("placa"))
	assert.Equal(t, "4", data.Section(extraction.VehicleInfo).String("puertas"))
}

func TestParseWithoutObjectGivesDefault(t *testing.T) {
	raw := strings.Repeat("sin datos ", 50)
	data, err := extraction.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, extraction.Unidentified, data["tipo_documento"])
	assert.Equal(t, formfill.Unavailable, data.Section(extraction.VehicleInfo)["placa"])
	assert.Equal(t, formfill.Unavailable, data.Section(extraction.Restrictions)["blindaje"])

	notes := data["observaciones"].(string)
	assert.True(t, strings.HasPrefix(notes, "Respuesta original: sin datos"))
	assert.Equal(t, len("Respuesta original: ")+300+len("..."), len(notes))
}

func TestParseMalformedObject(t *testing.T) {
	_, err := extraction.Parse(`respuesta {"placa": "ABC123",}`)
	assert.Error(t, err)
}

func TestStructure(t *testing.T) {
	data, err := extraction.Parse(response)
	require.NoError(t, err)

	got := extraction.Structure(data)
	want := formfill.Data{
		"vehiculo": formfill.Data{
			"placa":            "ABC123",
			"marca":            "MAZDA",
			"linea":            "3 TOURING",
			"modelo":           "2020",
			"color":            "GRIS",
			"reg_numero_motor": "N",
			"puertas":          "4",
		},
		"propietario": formfill.Data{
			"nombre":         "PEREZ GOMEZ JUAN CARLOS",
			"identificacion": "C.C. 12.345.678",
			"ciudad":         "BOGOTA",
		},
		"registro": formfill.Data{
			"organismo_transito":       "STRIA TTEYTTOE BOGOTA",
			"fecha_matricula":          "2020-02-14",
			"licencia_transito_numero": "10012345678",
		},
		"restricciones":  formfill.Data{"blindaje": "NO"},
		"tipo_documento": "Licencia de Tránsito (Tarjeta de Propiedad)",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Structure (-want +got):\n%s", diff)
	}
}

func TestStructureOfDefaultIsEmpty(t *testing.T) {
	got := extraction.Structure(extraction.Default(""))
	assert.Empty(t, got.Section("vehiculo"))
	assert.Empty(t, got.Section("propietario"))
	assert.False(t, got.Has("tipo_documento"))
	assert.True(t, got.Has("observaciones"))
}

func TestClassify(t *testing.T) {
	tests := map[string]extraction.DocumentKind{
		"Tarjeta de Propiedad":     extraction.KindOwnership,
		"Certificado de Matrícula": extraction.KindRegistration,
		"registro automotor":       extraction.KindRegistration,
		"No identificado":          extraction.KindUnknown,
		"No disponible":            extraction.KindUnknown,
		"":                         extraction.KindUnknown,
		"factura":                  extraction.KindUnknown,
	}
	for in, want := range tests {
		assert.Equal(t, want, extraction.Classify(in), in)
	}
}

func TestSeedTramitePassesValidation(t *testing.T) {
	data, err := extraction.Parse(response)
	require.NoError(t, err)

	payload, err := extraction.Seed(formfill.Tramite, extraction.Structure(data))
	require.NoError(t, err)

	assert.Equal(t, "PEREZ", payload["propietario_primer_apellido"])
	assert.Equal(t, "GOMEZ", payload["propietario_segundo_apellido"])
	assert.Equal(t, "JUAN CARLOS", payload["propietario_nombres"])
	assert.Equal(t, "C.C. 12.345.678", payload["propietario_documento"])
	assert.Equal(t, "10012345678", payload["licencia_transito"])
	assert.Equal(t, "ABC123", payload["placa"])

	ok, detail := validate.Validate(formfill.Tramite, payload)
	assert.True(t, ok, detail)
}

func TestSeedContractsAndMerge(t *testing.T) {
	data, err := extraction.Parse(response)
	require.NoError(t, err)
	structured := extraction.Structure(data)

	sale, err := extraction.Seed(formfill.Compraventa, structured)
	require.NoError(t, err)
	assert.Equal(t, "C.C. 12.345.678", sale.Section("vendedor").String("documento"))

	ok, detail := validate.Validate(formfill.Compraventa, sale)
	assert.False(t, ok)
	assert.Contains(t, detail, "comprador")

	full := extraction.Merge(sale, formfill.Data{
		"vehiculo":    map[string]any{"modelo": "2021"},
		"comprador":   map[string]any{"nombre": "ANA RUIZ", "documento": "87654321"},
		"valor_venta": 45000000,
	})
	assert.Equal(t, "2021", full.Section("vehiculo").String("modelo"))
	assert.Equal(t, "ABC123", full.Section("vehiculo").String("placa"))
	ok, detail = validate.Validate(formfill.Compraventa, full)
	assert.True(t, ok, detail)

	mandate, err := extraction.Seed(formfill.Mandato, structured)
	require.NoError(t, err)
	assert.Equal(t, "PEREZ GOMEZ JUAN CARLOS", mandate.Section("mandante").String("nombre"))
	assert.Equal(t, "STRIA TTEYTTOE BOGOTA", mandate["organismo_transito"])

	_, err = extraction.Seed("licencia", structured)
	assert.ErrorIs(t, err, formfill.ErrUnsupportedFormType)
}
