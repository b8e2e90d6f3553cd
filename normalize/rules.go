package normalize

import "strings"

// Rule maps any of its keywords, found as a substring of the lower-cased
// input, to an outcome.
type Rule struct {
	Keywords []string
	Outcome  string
}

// Rules is an ordered keyword classifier. The first matching rule wins;
// Default, when set, applies if none matches.
type Rules struct {
	Name    string
	Rules   []Rule
	Default string
}

// Match classifies text. ok is false when no rule matched and there is no
// default.
func (rs Rules) Match(text string) (outcome string, ok bool) {
	t := strings.ToLower(strings.TrimSpace(text))
	if t != "" {
		for _, r := range rs.Rules {
			for _, kw := range r.Keywords {
				if strings.Contains(t, kw) {
					return r.Outcome, true
				}
			}
		}
	}
	if rs.Default != "" {
		return rs.Default, true
	}
	return "", false
}

// Outcomes lists every outcome a classifier can produce, default last.
func (rs Rules) Outcomes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rs.Rules {
		if !seen[r.Outcome] {
			seen[r.Outcome] = true
			out = append(out, r.Outcome)
		}
	}
	if rs.Default != "" && !seen[rs.Default] {
		out = append(out, rs.Default)
	}
	return out
}

// FuelRules marks the fuel checkbox. There is no default.
var FuelRules = Rules{
	Name: "combustible",
	Rules: []Rule{
		{[]string{"gasolina"}, "combustible_gasolina"},
		{[]string{"biodiesel", "biodiésel"}, "combustible_biodiesel"},
		{[]string{"diesel", "diésel"}, "combustible_diesel"},
		{[]string{"gas"}, "combustible_gas"},
		{[]string{"eléctrico", "electrico"}, "combustible_electrico"},
		{[]string{"hidrógeno", "hidrogeno"}, "combustible_hidrogeno"},
		{[]string{"etanol"}, "combustible_etanol"},
		{[]string{"mixto"}, "combustible_mixto"},
	},
}

// ClassRules marks the vehicle class checkbox. Longer names that contain
// shorter ones are listed first.
var ClassRules = Rules{
	Name: "clase_vehiculo",
	Rules: []Rule{
		{[]string{"automóvil", "automovil", "auto"}, "clase_automovil"},
		{[]string{"cuatrimoto"}, "clase_cuatrimoto"},
		{[]string{"motocarro"}, "clase_motocarro"},
		{[]string{"mototriciclo"}, "clase_mototriciclo"},
		{[]string{"motocicleta", "moto"}, "clase_motocicleta"},
		{[]string{"camioneta"}, "clase_camioneta"},
		{[]string{"tractocamión", "tractocamion"}, "clase_tractocamion"},
		{[]string{"volqueta"}, "clase_volqueta"},
		{[]string{"camión", "camion"}, "clase_camion"},
		{[]string{"campero"}, "clase_campero"},
		{[]string{"microbús", "microbus"}, "clase_microbus"},
		{[]string{"buseta"}, "clase_buseta"},
		{[]string{"bus"}, "clase_bus"},
	},
	Default: "clase_otro",
}

// ServiceRules marks the service type checkbox, defaulting to private use.
var ServiceRules = Rules{
	Name: "servicio",
	Rules: []Rule{
		{[]string{"particular", "privado"}, "servicio_particular"},
		{[]string{"público", "publico"}, "servicio_publico"},
		{[]string{"oficial"}, "servicio_oficial"},
		{[]string{"diplomático", "diplomatico"}, "servicio_diplomatico"},
		{[]string{"especial"}, "servicio_especial"},
	},
	Default: "servicio_particular",
}

// DocumentTypeRules classifies identity document types. Outcomes are
// suffixes; callers prefix them with the party ("propietario_cc").
var DocumentTypeRules = Rules{
	Name: "tipo_documento",
	Rules: []Rule{
		{[]string{"c.c.", "ciudadanía", "ciudadania"}, "cc"},
		{[]string{"nit"}, "nit"},
		{[]string{"c.e.", "extranjería", "extranjeria"}, "ce"},
		{[]string{"pasaporte"}, "pasaporte"},
	},
}

// OtherDocument is the document type checkbox used when no rule matches.
const OtherDocument = "otro_doc"
