package layout

import "github.com/lvillar/formfill"

// PlateGroup keeps the two plate halves on the trámite form apart.
var PlateGroup = Group{
	Name:    "placa",
	Members: []string{"placa_letras", "placa_numeros"},
	MinGap:  10,
}

var tramitePoints = map[string]Point{
	"placa_letras":  {750, 495},
	"placa_numeros": {770, 495},

	"marca":      {390, 460},
	"linea":      {480, 460},
	"color":      {390, 430},
	"modelo":     {660, 430},
	"cilindrada": {720, 430},
	"capacidad":  {390, 405},
	"potencia":   {720, 405},

	"combustible_gasolina":  {575, 453},
	"combustible_diesel":    {606, 453},
	"combustible_gas":       {626, 453},
	"combustible_mixto":     {656, 453},
	"combustible_electrico": {686, 453},
	"combustible_hidrogeno": {716, 453},
	"combustible_etanol":    {746, 453},
	"combustible_biodiesel": {776, 453},

	"clase_automovil":    {30, 370},
	"clase_bus":          {90, 370},
	"clase_buseta":       {120, 370},
	"clase_camion":       {170, 370},
	"clase_campero":      {270, 370},
	"clase_camioneta":    {220, 370},
	"clase_tractocamion": {30, 370},
	"clase_motocicleta":  {90, 350},
	"clase_motocarro":    {120, 350},
	"clase_mototriciclo": {170, 350},
	"clase_cuatrimoto":   {220, 350},
	"clase_volqueta":     {270, 350},
	"clase_microbus":     {320, 370},
	"clase_otro":         {320, 350},

	"carroceria":    {390, 345},
	"numero_motor":  {600, 370},
	"reg_motor_n":   {780, 370},
	"reg_motor_s":   {755, 370},
	"numero_chasis": {600, 350},
	"reg_chasis_n":  {780, 345},
	"reg_chasis_s":  {755, 345},
	"numero_serie":  {600, 320},
	"reg_serie_n":   {780, 320},
	"reg_serie_s":   {755, 320},
	"numero_vin":    {600, 290},

	"servicio_particular":  {602, 240},
	"servicio_publico":     {620, 240},
	"servicio_diplomatico": {650, 240},
	"servicio_oficial":     {680, 240},
	"servicio_especial":    {710, 240},
	"otros_servicio":       {740, 240},

	"propietario_primer_apellido":  {30, 290},
	"propietario_segundo_apellido": {140, 290},
	"propietario_nombres":          {270, 290},
	"propietario_documento":        {320, 265},
	"propietario_direccion":        {30, 240},
	"propietario_ciudad":           {205, 240},
	"propietario_telefono":         {320, 240},

	"comprador_primer_apellido":  {30, 155},
	"comprador_segundo_apellido": {140, 155},
	"comprador_nombres":          {270, 155},
	"comprador_documento":        {320, 125},
	"comprador_direccion":        {30, 100},
	"comprador_ciudad":           {205, 100},
	"comprador_telefono":         {320, 100},

	"observaciones":           {390, 130},
	"declaracion_importacion": {390, 250},
	"importacion_dia":         {480, 250},
	"importacion_mes":         {505, 250},
	"importacion_ano":         {545, 250},
}

var compraventaPoints = map[string]Point{
	"vendedor_nombre":  {130, 690},
	"vendedor_ciudad":  {200, 675},
	"comprador_nombre": {70, 645},
	"comprador_ciudad": {150, 630},

	"vehiculo_tipo":  {70, 545},
	"marca":          {140, 520},
	"linea":          {370, 520},
	"placa":          {140, 507},
	"modelo":         {370, 507},
	"motor":          {140, 493},
	"chasis":         {370, 493},
	"color":          {140, 481},
	"matriculado_en": {400, 481},
	"vin":            {140, 468},
	"serie":          {370, 468},

	"precio_numeros": {440, 440},
	"precio_letras":  {80, 422},
	"forma_pago":     {190, 377},

	"ciudad_contrato": {350, 260},
	"dia_contrato":    {520, 260},
	"mes_contrato":    {160, 245},
	"año_contrato":    {380, 245},

	"vendedor_doc_firma":  {110, 115},
	"vendedor_dir_firma":  {110, 100},
	"vendedor_tel_firma":  {110, 85},
	"comprador_doc_firma": {360, 115},
	"comprador_dir_firma": {360, 100},
	"comprador_tel_firma": {360, 85},
}

var mandatoPoints = map[string]Point{
	"mandante_nombre":      {240, 660},
	"mandante_ciudad":      {310, 645},
	"mandante_documento":   {245, 630},
	"mandatario_nombre":    {120, 600},
	"mandatario_documento": {90, 570},
	"tramites_autorizados": {90, 462},
	"vehiculo_placa":       {410, 445},
	"organismo_transito":   {220, 430},
	"ciudad_contrato":      {90, 310},
	"dia_contrato":         {223, 310},
	"mes_contrato":         {330, 310},
	"año_contrato":         {480, 310},
}

// Default returns the built-in registry for the three supported forms.
func Default() *Registry {
	return NewRegistry(
		NewTable(formfill.Tramite, tramitePoints, PlateGroup),
		NewTable(formfill.Compraventa, compraventaPoints),
		NewTable(formfill.Mandato, mandatoPoints),
	)
}
