package overlay_test

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvillar/formfill"
	"github.com/lvillar/formfill/layout"
	"github.com/lvillar/formfill/overlay"
	"github.com/lvillar/formfill/textfit"
)

var fixedNow = time.Date(2024, time.March, 9, 12, 0, 0, 0, time.UTC)

func newBuilder(reg *layout.Registry) *overlay.Builder {
	return overlay.NewBuilder(reg,
		overlay.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		overlay.WithClock(func() time.Time { return fixedNow }),
	)
}

func byField(ov *overlay.Overlay) map[string]textfit.Placement {
	out := make(map[string]textfit.Placement, len(ov.Placements))
	for _, p := range ov.Placements {
		out[p.Field] = p
	}
	return out
}

func tramiteData() formfill.Data {
	return formfill.Data{
		"placa":                       "ABC123",
		"marca":                       "chevrolet",
		"linea":                       "spark gt",
		"modelo":                      "2015",
		"color":                       "rojo",
		"propietario_nombres":         "juan carlos",
		"propietario_primer_apellido": "gomez",
		"propietario_documento":       "C.C. 12.345.678",
		"vehiculo": map[string]any{
			"combustible":      "GASOLINA",
			"clase_vehiculo":   "AUTOMOVIL",
			"servicio":         "No disponible",
			"numero_motor":     "B10S1123456789",
			"reg_numero_motor": "s",
			"reg_numero_serie": "No disponible",
			"cilindrada_cc":    1200.0,
		},
		"fecha_importacion": "2014-11-03",
	}
}

func TestTramitePlateKeepsGap(t *testing.T) {
	for _, page := range []overlay.PageSize{overlay.Letter, {Width: 842, Height: 595}} {
		ov, err := newBuilder(nil).Build(formfill.Tramite, tramiteData(), page)
		require.NoError(t, err)

		got := byField(ov)
		letters, ok := got["placa_letras"]
		require.True(t, ok)
		digits, ok := got["placa_numeros"]
		require.True(t, ok)

		assert.Equal(t, "ABC", letters.Text)
		assert.Equal(t, "123", digits.Text)
		assert.GreaterOrEqual(t, digits.X, letters.X+letters.Width+layout.PlateGroup.MinGap-1e-9, "page %v", page)
		assert.LessOrEqual(t, digits.Right(), page.Width-textfit.PageInset+1e-9, "page %v", page)
	}
}

func TestTramiteFields(t *testing.T) {
	ov, err := newBuilder(nil).Build(formfill.Tramite, tramiteData(), overlay.Letter)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(ov.PDF, []byte("%PDF-")))
	assert.Empty(t, ov.Skipped)

	got := byField(ov)
	assert.Equal(t, "CHEVROLET", got["marca"].Text)
	assert.Equal(t, "SPARK GT", got["linea"].Text)
	assert.Equal(t, "1200", got["cilindrada"].Text)
	assert.Equal(t, "12345678", got["propietario_documento"].Text)
	assert.Equal(t, "GOMEZ", got["propietario_primer_apellido"].Text)
	assert.Equal(t, "B10S1123456789", got["numero_motor"].Text)

	for _, field := range []string{"combustible_gasolina", "clase_automovil", "servicio_particular", "reg_motor_s"} {
		p, ok := got[field]
		require.True(t, ok, field)
		assert.Equal(t, textfit.Mark, p.Text, field)
	}
	assert.Equal(t, 10.0, got["reg_motor_s"].Size)
	for _, field := range []string{"reg_motor_n", "reg_serie_s", "reg_serie_n", "clase_otro", "comprador_documento"} {
		_, ok := got[field]
		assert.False(t, ok, field)
	}

	assert.Equal(t, "03", got["importacion_dia"].Text)
	assert.Equal(t, "11", got["importacion_mes"].Text)
	assert.Equal(t, "2014", got["importacion_ano"].Text)

	for _, p := range ov.Placements {
		assert.LessOrEqual(t, p.Right(), overlay.Letter.Width-textfit.PageInset+1e-6, p.Field)
	}
}

func TestTramiteOwnerFromSection(t *testing.T) {
	data := formfill.Data{
		"placa":       "XYZ98D",
		"propietario": map[string]any{"nombres": "maria", "documento": "CC 52.000.111"},
	}
	ov, err := newBuilder(nil).Build(formfill.Tramite, data, overlay.Letter)
	require.NoError(t, err)

	got := byField(ov)
	assert.Equal(t, "MARIA", got["propietario_nombres"].Text)
	assert.Equal(t, "52000111", got["propietario_documento"].Text)
	assert.Equal(t, "XYZ", got["placa_letras"].Text)
	assert.Equal(t, "98D", got["placa_numeros"].Text)
}

func TestTramiteBadImportDateIsSkipped(t *testing.T) {
	data := tramiteData()
	data["fecha_importacion"] = "pronto"
	ov, err := newBuilder(nil).Build(formfill.Tramite, data, overlay.Letter)
	require.NoError(t, err)
	_, ok := byField(ov)["importacion_dia"]
	assert.False(t, ok)
}

func saleData() formfill.Data {
	return formfill.Data{
		"vehiculo": map[string]any{
			"placa": "abc123", "marca": "mazda", "linea": "3 touring", "modelo": 2018.0,
			"tipo_carroceria": "sedan", "numero_motor": "PE12345", "vin": "JM1BM1",
		},
		"vendedor":           map[string]any{"nombre": "GOMEZ PEREZ JUAN CARLOS", "documento": "C.C. 12.345.678", "ciudad": "medellin"},
		"comprador":          map[string]any{"nombre": "ana ruiz", "documento": "52.111.222", "telefono": "3001234567"},
		"valor_venta":        45000000.0,
		"organismo_transito": "STT Medellin",
		"fecha_contrato":     "2023-11-05",
		"ciudad_contrato":    "Medellín",
	}
}

func TestCompraventa(t *testing.T) {
	ov, err := newBuilder(nil).Build(formfill.Compraventa, saleData(), overlay.Letter)
	require.NoError(t, err)

	got := byField(ov)
	assert.Equal(t, "JUAN CARLOS GOMEZ PEREZ", got["vendedor_nombre"].Text)
	assert.Equal(t, "ANA RUIZ", got["comprador_nombre"].Text)
	assert.Equal(t, "SEDAN", got["vehiculo_tipo"].Text)
	assert.Equal(t, "2018", got["modelo"].Text)
	assert.Equal(t, "STT MEDELLIN", got["matriculado_en"].Text)
	assert.Equal(t, "$45,000,000", got["precio_numeros"].Text)
	assert.Equal(t, "CUARENTA Y CINCO MILLONES PESOS", got["precio_letras"].Text)
	assert.Equal(t, "5", got["dia_contrato"].Text)
	assert.Equal(t, "NOVIEMBRE", got["mes_contrato"].Text)
	assert.Equal(t, "2023", got["año_contrato"].Text)
	assert.Equal(t, "12345678", got["vendedor_doc_firma"].Text)
	assert.Equal(t, "52111222", got["comprador_doc_firma"].Text)
	assert.Equal(t, "3001234567", got["comprador_tel_firma"].Text)

	for _, p := range ov.Placements {
		assert.Equal(t, 10.0, p.Size, p.Field)
	}
}

func TestCompraventaLongAmountStaysOnItsLine(t *testing.T) {
	data := saleData()
	data["valor_venta"] = 777777777.0

	ov, err := newBuilder(nil).Build(formfill.Compraventa, data, overlay.Letter)
	require.NoError(t, err)

	p := byField(ov)["precio_letras"]
	assert.Equal(t, 80.0, p.X)
	assert.Less(t, p.Size, 10.0)
	assert.LessOrEqual(t, p.Right(), overlay.Letter.Width-textfit.PageInset+1e-9)
	assert.True(t, strings.HasSuffix(p.Text, " PESOS"))
}

func TestCompraventaWithoutAmountOrDate(t *testing.T) {
	data := saleData()
	data["valor_venta"] = "no aplica"
	delete(data, "fecha_contrato")

	ov, err := newBuilder(nil).Build(formfill.Compraventa, data, overlay.Letter)
	require.NoError(t, err)

	got := byField(ov)
	_, ok := got["precio_numeros"]
	assert.False(t, ok)
	assert.Equal(t, "MARZO", got["mes_contrato"].Text)
	assert.Equal(t, "9", got["dia_contrato"].Text)
}

func TestMandatoDefaults(t *testing.T) {
	data := formfill.Data{
		"vehiculo":   map[string]any{"placa": "xyz987"},
		"mandante":   map[string]any{"nombre": "LOPEZ DIAZ ANA MARIA", "documento": "CC 1.020.304", "ciudad": "Cali"},
		"mandatario": map[string]any{},
	}
	ov, err := newBuilder(nil).Build(formfill.Mandato, data, overlay.Letter)
	require.NoError(t, err)

	got := byField(ov)
	assert.Equal(t, "ANA MARIA LOPEZ DIAZ", got["mandante_nombre"].Text)
	assert.Equal(t, "1020304", got["mandante_documento"].Text)
	assert.Equal(t, "XYZ987", got["vehiculo_placa"].Text)
	assert.Equal(t, "RUNT", got["organismo_transito"].Text)
	assert.Equal(t, "CALI", got["ciudad_contrato"].Text)
	assert.Equal(t, "MATRICULA, REGISTRO, TRASPASO, CAMBIO DE PROPIETARIO Y DEMÁS TRÁMITES VEHICULARES", got["tramites_autorizados"].Text)
	_, ok := got["mandatario_nombre"]
	assert.False(t, ok)

	delete(data["mandante"].(map[string]any), "ciudad")
	ov, err = newBuilder(nil).Build(formfill.Mandato, data, overlay.Letter)
	require.NoError(t, err)
	assert.Equal(t, "BOGOTÁ", byField(ov)["ciudad_contrato"].Text)
}

func TestFieldsWithoutCoordinatesAreSkipped(t *testing.T) {
	reg := layout.NewRegistry(layout.NewTable(formfill.Mandato, map[string]layout.Point{
		"vehiculo_placa": {X: 100, Y: 100},
	}))
	ov, err := newBuilder(reg).Build(formfill.Mandato, formfill.Data{
		"vehiculo": map[string]any{"placa": "AAA111"},
		"mandante": map[string]any{"nombre": "X Y"},
	}, overlay.Letter)
	require.NoError(t, err)
	require.Len(t, ov.Placements, 1)
	assert.Equal(t, "vehiculo_placa", ov.Placements[0].Field)
	assert.Empty(t, ov.Skipped)
}

func TestEmptyPageSizeFallsBackToLetter(t *testing.T) {
	ov, err := newBuilder(nil).Build(formfill.Mandato, formfill.Data{}, overlay.PageSize{})
	require.NoError(t, err)
	assert.Equal(t, overlay.Letter, ov.Page)
}

func TestUnsupportedFormType(t *testing.T) {
	_, err := newBuilder(nil).Build("factura", formfill.Data{}, overlay.Letter)
	assert.ErrorIs(t, err, formfill.ErrUnsupportedFormType)
}
