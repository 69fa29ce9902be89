package services

// Static reference data (kodeverk). These registries change on deploys, not
// at runtime, so they live in code rather than behind a cached lookup.

// Ytelse is a benefit type a case concerns, with its archive tema code
type Ytelse struct {
	ID   string
	Navn string
	Tema string
}

// Hjemmel is a statutory ground a case can be registered under
type Hjemmel struct {
	ID   string
	Navn string
}

var ytelser = map[string]Ytelse{
	"FORELDREPENGER": {ID: "FORELDREPENGER", Navn: "Foreldrepenger", Tema: "FOR"},
	"SYKEPENGER":     {ID: "SYKEPENGER", Navn: "Sykepenger", Tema: "SYK"},
	"DAGPENGER":      {ID: "DAGPENGER", Navn: "Dagpenger", Tema: "DAG"},
	"UFOERETRYGD":    {ID: "UFOERETRYGD", Navn: "Uføretrygd", Tema: "UFO"},
	"ALDERSPENSJON":  {ID: "ALDERSPENSJON", Navn: "Alderspensjon", Tema: "PEN"},
	"BARNETRYGD":     {ID: "BARNETRYGD", Navn: "Barnetrygd", Tema: "BAR"},
	"OMSORGSPENGER":  {ID: "OMSORGSPENGER", Navn: "Omsorgspenger", Tema: "OMS"},
}

var hjemler = map[string]Hjemmel{
	"FTRL_8_4":   {ID: "FTRL_8_4", Navn: "Folketrygdloven § 8-4"},
	"FTRL_8_7":   {ID: "FTRL_8_7", Navn: "Folketrygdloven § 8-7"},
	"FTRL_14_7":  {ID: "FTRL_14_7", Navn: "Folketrygdloven § 14-7"},
	"FTRL_14_10": {ID: "FTRL_14_10", Navn: "Folketrygdloven § 14-10"},
	"FTRL_4_5":   {ID: "FTRL_4_5", Navn: "Folketrygdloven § 4-5"},
	"FTRL_12_5":  {ID: "FTRL_12_5", Navn: "Folketrygdloven § 12-5"},
	"FTRL_21_3":  {ID: "FTRL_21_3", Navn: "Folketrygdloven § 21-3"},
	"FTRL_22_13": {ID: "FTRL_22_13", Navn: "Folketrygdloven § 22-13"},
	"FVL_35":     {ID: "FVL_35", Navn: "Forvaltningsloven § 35"},
}

// GetYtelse looks up a benefit type by id
func GetYtelse(id string) (Ytelse, bool) {
	y, ok := ytelser[id]
	return y, ok
}

// GetHjemmel looks up a statutory ground by id
func GetHjemmel(id string) (Hjemmel, bool) {
	h, ok := hjemler[id]
	return h, ok
}

// YtelseForTema finds the benefit type matching an archive tema code
func YtelseForTema(tema string) (Ytelse, bool) {
	for _, y := range ytelser {
		if y.Tema == tema {
			return y, true
		}
	}
	return Ytelse{}, false
}

// IsValidYtelse checks whether the benefit-type id exists in the registry
func IsValidYtelse(id string) bool {
	_, ok := ytelser[id]
	return ok
}

// IsValidHjemmel checks whether the statutory-ground id exists in the registry
func IsValidHjemmel(id string) bool {
	_, ok := hjemler[id]
	return ok
}
