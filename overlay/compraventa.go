package overlay

import "github.com/lvillar/formfill/normalize"

const (
	saleFontSize   = 10
	saleWordsRunes = 120
)

func fillCompraventa(f *filler) {
	vehicle := func(key string) string { return f.res.In("vehiculo", key) }

	f.text("vendedor_nombre", normalize.ReorderName(f.res.In("vendedor", "nombre")), saleFontSize)
	f.text("vendedor_ciudad", f.res.In("vendedor", "ciudad"), saleFontSize)
	f.text("comprador_nombre", f.res.In("comprador", "nombre"), saleFontSize)
	f.text("comprador_ciudad", f.res.In("comprador", "ciudad"), saleFontSize)

	kind := vehicle("clase_vehiculo")
	if kind == "" {
		kind = vehicle("tipo_carroceria")
	}
	f.text("vehiculo_tipo", kind, saleFontSize)

	f.text("marca", vehicle("marca"), saleFontSize)
	f.text("linea", vehicle("linea"), saleFontSize)
	f.text("placa", vehicle("placa"), saleFontSize)
	f.text("modelo", vehicle("modelo"), saleFontSize)
	f.text("motor", vehicle("numero_motor"), saleFontSize)
	f.text("chasis", vehicle("numero_chasis"), saleFontSize)
	f.text("color", vehicle("color"), saleFontSize)
	f.text("matriculado_en", f.res.Root("organismo_transito"), saleFontSize)
	f.text("vin", vehicle("vin"), saleFontSize)
	f.text("serie", vehicle("numero_serie"), saleFontSize)

	if amount, ok := normalize.ParseAmount(f.res.Raw("valor_venta")); ok && amount > 0 {
		f.text("precio_numeros", normalize.FormatAmount(amount), saleFontSize)
		f.long("precio_letras", normalize.AmountToWords(amount), saleFontSize, saleWordsRunes)
	}

	f.text("forma_pago", f.res.Root("forma_pago"), saleFontSize)
	f.text("ciudad_contrato", f.res.Root("ciudad_contrato"), saleFontSize)
	f.contractDate(saleFontSize)

	for _, side := range []string{"vendedor", "comprador"} {
		f.text(side+"_doc_firma", normalize.CleanDocumentNumber(f.res.In(side, "documento")), saleFontSize)
		f.text(side+"_dir_firma", f.res.In(side, "direccion"), saleFontSize)
		f.text(side+"_tel_firma", f.res.In(side, "telefono"), saleFontSize)
	}
}
