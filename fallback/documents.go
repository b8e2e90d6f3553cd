package fallback

import (
	"fmt"
	"strings"
	"time"

	"github.com/lvillar/formfill/doctpl"
	"github.com/lvillar/formfill/normalize"
	"github.com/lvillar/formfill/overlay"
)

var mandateClauses = []doctpl.Clause{
	{Title: "PRIMERA:", Text: "El MANDANTE confiere poder especial al MANDATARIO para realizar ante los organismos de tránsito todos los trámites relacionados con el vehículo descrito."},
	{Title: "SEGUNDA:", Text: "El presente mandato incluye específicamente: Registro, matrícula, cambio de propietario, traspasos, y demás trámites ante autoridades de tránsito."},
	{Title: "TERCERA:", Text: "El MANDATARIO se obliga a realizar las gestiones con la debida diligencia y cuidado."},
	{Title: "CUARTA:", Text: "Este contrato se regirá por las leyes colombianas vigentes."},
}

var saleClauses = []doctpl.Clause{
	{Title: "PRIMERA:", Text: "El VENDEDOR declara ser propietario del vehículo descrito y lo vende al COMPRADOR."},
	{Title: "SEGUNDA:", Text: "El COMPRADOR acepta la compra del vehículo en las condiciones descritas."},
	{Title: "TERCERA:", Text: "El precio de venta es el establecido y será pagado en la forma acordada."},
	{Title: "CUARTA:", Text: "El vehículo se entrega en el estado en que se encuentra."},
	{Title: "QUINTA:", Text: "Los gastos de traspaso corren por cuenta del COMPRADOR."},
}

// vehicleRows are the label and payload key of the contract vehicle table.
var vehicleRows = [][2]string{
	{"Placa:", "placa"},
	{"Marca:", "marca"},
	{"Línea:", "linea"},
	{"Modelo:", "modelo"},
	{"Color:", "color"},
	{"VIN:", "vin"},
	{"Número de Motor:", "numero_motor"},
	{"Número de Chasis:", "numero_chasis"},
	{"Cilindrada (cc):", "cilindrada_cc"},
	{"Combustible:", "combustible"},
	{"Servicio:", "servicio"},
}

var saleVehicleRows = [][2]string{
	{"Clase de Vehículo:", "clase_vehiculo"},
	{"Tipo de Carrocería:", "tipo_carroceria"},
	{"Capacidad (Kg/PSJ):", "capacidad_kg_psj"},
	{"Potencia (HP):", "potencia_hp"},
	{"Puertas:", "puertas"},
}

var partyRows = [][2]string{
	{"Nombre:", "nombre"},
	{"Documento:", "documento"},
	{"Dirección:", "direccion"},
	{"Teléfono:", "telefono"},
	{"Ciudad:", "ciudad"},
}

type docBuilder struct {
	gen *Generator
	res *normalize.Resolver
	now time.Time
	ref string
	doc *doctpl.Document
}

func (b *docBuilder) add(blocks ...doctpl.Block) {
	b.doc.Blocks = append(b.doc.Blocks, blocks...)
}

// title adds the heading and, with barcodes on, the plate and reference codes.
func (b *docBuilder) title(plate string) {
	b.add(doctpl.Block{Type: doctpl.Heading, Level: 1, Text: b.doc.Title})
	if b.gen.barcodes {
		if p := normalize.CleanPlate(plate); p != "" {
			b.add(doctpl.Block{Type: doctpl.Barcode, Align: "C", Code: &doctpl.Code{Kind: doctpl.Code128, Value: p, Caption: p}})
		}
		if b.ref != "" {
			b.add(doctpl.Block{Type: doctpl.Barcode, Align: "R", Code: &doctpl.Code{Kind: doctpl.QR, Value: b.ref}})
		}
	}
	b.add(doctpl.Block{Type: doctpl.Spacer, Height: 12})
}

func (b *docBuilder) section(heading string, fields []doctpl.Field) {
	b.add(
		doctpl.Block{Type: doctpl.Heading, Level: 2, Text: heading},
		doctpl.Block{Type: doctpl.Fields, Fields: fields},
	)
}

func (b *docBuilder) rows(rows [][2]string, value func(key string) string) []doctpl.Field {
	fields := make([]doctpl.Field, 0, len(rows))
	for _, r := range rows {
		fields = append(fields, doctpl.Field{Label: r[0], Value: value(r[1])})
	}
	return fields
}

func (b *docBuilder) party(section string) []doctpl.Field {
	return b.rows(partyRows, func(key string) string { return b.res.In(section, key) })
}

// signatures adds the signature table and, with barcodes on, a PDF417 of
// the parties' documents.
func (b *docBuilder) signatures(sigs ...doctpl.Signature) {
	b.add(
		doctpl.Block{Type: doctpl.Spacer, Height: 24},
		doctpl.Block{Type: doctpl.Signatures, Signatures: sigs},
	)
	if !b.gen.barcodes {
		return
	}
	var parts []string
	for _, s := range sigs {
		if s.Document != "" {
			parts = append(parts, s.Role+":"+s.Document)
		}
	}
	if len(parts) > 0 {
		b.add(doctpl.Block{Type: doctpl.Barcode, Align: "C", Code: &doctpl.Code{Kind: doctpl.PDF417, Value: strings.Join(parts, "|")}})
	}
}

func (b *docBuilder) dateLine() {
	b.add(doctpl.Block{Type: doctpl.Paragraph, Text: fmt.Sprintf("Fecha: %d de %s de %d",
		b.now.Day(), normalize.SpanishMonth(b.now.Month()), b.now.Year())})
}

func (b *docBuilder) signer(role, section string) doctpl.Signature {
	return doctpl.Signature{
		Role:     role,
		Name:     b.res.In(section, "nombre"),
		Document: normalize.CleanDocumentNumber(b.res.In(section, "documento")),
	}
}

func buildMandato(b *docBuilder) {
	vehicle := func(key string) string { return b.res.In("vehiculo", key) }
	plate := firstOf(vehicle("placa"), b.res.Root("placa"))

	b.title(plate)
	b.section("DATOS DEL MANDANTE", b.party("mandante"))
	b.section("DATOS DEL MANDATARIO", b.party("mandatario"))

	date := normalize.ContractDate(b.res.Raw("fecha_contrato"), b.now)
	b.section("INFORMACIÓN DEL CONTRATO", []doctpl.Field{
		{Label: "Trámites Autorizados:", Value: firstOf(b.res.Root("tramites_autorizados"), overlay.DefaultProcedures)},
		{Label: "Organismo de Tránsito:", Value: firstOf(b.res.Root("organismo_transito"), overlay.DefaultTransitAuthority)},
		{Label: "Ciudad del Contrato:", Value: firstOf(b.res.Root("ciudad_contrato"), b.res.In("mandante", "ciudad"), overlay.DefaultContractCity)},
		{Label: "Fecha del Contrato:", Value: date.Format("02/01/2006")},
	})

	fields := b.rows(vehicleRows, vehicle)
	fields[0].Value = plate
	b.section("DATOS DEL VEHÍCULO", fields)

	b.add(
		doctpl.Block{Type: doctpl.Heading, Level: 2, Text: "CLÁUSULAS"},
		doctpl.Block{Type: doctpl.Clauses, Clauses: mandateClauses},
	)
	b.signatures(b.signer("MANDANTE", "mandante"), b.signer("MANDATARIO", "mandatario"))
	b.dateLine()
}

func buildCompraventa(b *docBuilder) {
	vehicle := func(key string) string { return b.res.In("vehiculo", key) }

	b.title(vehicle("placa"))
	b.section("DATOS DEL VENDEDOR", b.party("vendedor"))
	b.section("DATOS DEL COMPRADOR", b.party("comprador"))
	b.section("DATOS DEL VEHÍCULO", append(b.rows(vehicleRows, vehicle), b.rows(saleVehicleRows, vehicle)...))

	price := []doctpl.Field{{Label: "Valor en números:"}, {Label: "Valor en letras:"}}
	if amount, ok := normalize.ParseAmount(b.res.Raw("valor_venta")); ok && amount > 0 {
		price[0].Value = normalize.FormatAmount(amount)
		price[1].Value = normalize.AmountToWords(amount)
	}
	b.section("VALOR DE LA VENTA", price)

	b.add(
		doctpl.Block{Type: doctpl.Heading, Level: 2, Text: "CLÁUSULAS"},
		doctpl.Block{Type: doctpl.Clauses, Clauses: saleClauses},
	)
	b.signatures(b.signer("VENDEDOR", "vendedor"), b.signer("COMPRADOR", "comprador"))
	b.dateLine()
}

// ownerValue reads propietario_<key> at the root, then <key> in the
// propietario section.
func (b *docBuilder) ownerValue(key string) string {
	return firstOf(b.res.Root("propietario_"+key), b.res.In("propietario", key))
}

func buildTramite(b *docBuilder) {
	b.title(b.res.Vehicle("placa"))

	b.section("INFORMACIÓN DEL VEHÍCULO", []doctpl.Field{
		{Label: "Placa:", Value: b.res.Vehicle("placa")},
		{Label: "Marca:", Value: b.res.Vehicle("marca")},
		{Label: "Línea:", Value: b.res.Vehicle("linea")},
		{Label: "Modelo:", Value: b.res.Vehicle("modelo")},
		{Label: "Color:", Value: b.res.Vehicle("color")},
		{Label: "VIN:", Value: b.res.Vehicle("numero_vin", "vin")},
		{Label: "Número de Motor:", Value: b.res.Vehicle("numero_motor")},
		{Label: "Número de Chasis:", Value: b.res.Vehicle("numero_chasis")},
		{Label: "Cilindrada (cc):", Value: b.res.Vehicle("cilindrada", "cilindrada_cc")},
		{Label: "Carrocería:", Value: b.res.Vehicle("carroceria", "tipo_carroceria")},
	})

	name := strings.Join(strings.Fields(strings.Join([]string{
		b.ownerValue("primer_apellido"),
		b.ownerValue("segundo_apellido"),
		b.ownerValue("nombres"),
	}, " ")), " ")
	b.section("INFORMACIÓN DEL PROPIETARIO", []doctpl.Field{
		{Label: "Nombre:", Value: name},
		{Label: "Identificación:", Value: normalize.CleanDocumentNumber(b.ownerValue("documento"))},
		{Label: "Dirección:", Value: b.ownerValue("direccion")},
		{Label: "Ciudad:", Value: b.ownerValue("ciudad")},
		{Label: "Teléfono:", Value: b.ownerValue("telefono")},
	})

	b.section("DETALLES DE REGISTRO", []doctpl.Field{
		{Label: "Licencia de Tránsito:", Value: firstOf(b.res.Root("licencia_transito"), b.res.In("registro", "licencia_transito"))},
		{Label: "Organismo de Tránsito:", Value: firstOf(b.res.Root("organismo_transito"), b.res.In("registro", "organismo_transito"))},
		{Label: "Fecha de Matrícula:", Value: firstOf(b.res.Root("fecha_matricula"), b.res.In("registro", "fecha_matricula"))},
	})

	if notes := b.res.Root("observaciones"); notes != "" {
		b.add(doctpl.Block{Type: doctpl.Heading, Level: 2, Text: "OBSERVACIONES"})
		for _, line := range strings.Split(notes, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				b.add(doctpl.Block{Type: doctpl.Paragraph, Text: line})
			}
		}
	}

	b.add(
		doctpl.Block{Type: doctpl.Spacer, Height: 18},
		doctpl.Block{Type: doctpl.Paragraph, Text: "Fecha de diligenciamiento: " + b.now.Format("02/01/2006")},
		doctpl.Block{Type: doctpl.Signatures, Signatures: []doctpl.Signature{{Role: "Firma del solicitante", Name: name}}},
	)
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
