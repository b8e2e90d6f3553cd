package overlay

import "github.com/lvillar/formfill/normalize"

const (
	mandateFontSize = 11
	// DefaultProcedures is drawn when the payload names no procedures.
	DefaultProcedures = "Matricula, registro, traspaso, cambio de propietario y demás trámites vehiculares"
	// DefaultTransitAuthority is drawn when the payload names no authority.
	DefaultTransitAuthority = "RUNT"
	// DefaultContractCity is used when neither the payload nor the
	// principal gives a city.
	DefaultContractCity = "BOGOTÁ"

	mandateProceduresRunes = 120
)

func fillMandato(f *filler) {
	f.text("mandante_documento", normalize.CleanDocumentNumber(f.res.In("mandante", "documento")), mandateFontSize)
	f.text("mandatario_documento", normalize.CleanDocumentNumber(f.res.In("mandatario", "documento")), mandateFontSize)

	f.text("mandante_nombre", normalize.ReorderName(f.res.In("mandante", "nombre")), mandateFontSize)
	f.text("mandante_ciudad", f.res.In("mandante", "ciudad"), mandateFontSize)
	f.text("mandatario_nombre", f.res.In("mandatario", "nombre"), mandateFontSize)

	f.long("tramites_autorizados", firstOf(f.res.Root("tramites_autorizados"), DefaultProcedures), mandateFontSize, mandateProceduresRunes)

	plate := firstOf(f.res.In("vehiculo", "placa"), f.res.Root("placa"))
	f.text("vehiculo_placa", plate, mandateFontSize)
	f.text("organismo_transito", firstOf(f.res.Root("organismo_transito"), DefaultTransitAuthority), mandateFontSize)

	city := firstOf(f.res.Root("ciudad_contrato"), f.res.In("mandante", "ciudad"), DefaultContractCity)
	f.text("ciudad_contrato", city, mandateFontSize)
	f.contractDate(mandateFontSize)
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
