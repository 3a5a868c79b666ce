package models

// Choice is a value/label pair surfaced to the registration form.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var GrupoChoices = []Choice{
	{"A", "Grupo A"},
	{"B", "Grupo B"},
	{"C", "Grupo C"},
	{"D", "Grupo D"},
}

var EspecialidadChoices = []Choice{
	{"programacion", "Programación"},
	{"contabilidad", "Contabilidad"},
	{"electronica", "Electrónica"},
	{"mecatronica", "Mecatrónica"},
}

var GeneroChoices = []Choice{
	{"M", "Masculino"},
	{"F", "Femenino"},
	{"O", "Otro"},
	{"NE", "Prefiero no especificar"},
}

var EdadChoices = []Choice{
	{"15-16", "15 a 16 años"},
	{"17-18", "17 a 18 años"},
	{"19-20", "19 a 20 años"},
	{"21+", "21 años o más"},
}

// ChoicesResponse bundles the four enumerations for GET /users/choices.
type ChoicesResponse struct {
	Grupo        []Choice `json:"grupo"`
	Especialidad []Choice `json:"especialidad"`
	Genero       []Choice `json:"genero"`
	Edad         []Choice `json:"edad"`
}

func AllChoices() ChoicesResponse {
	return ChoicesResponse{
		Grupo:        GrupoChoices,
		Especialidad: EspecialidadChoices,
		Genero:       GeneroChoices,
		Edad:         EdadChoices,
	}
}

// ValidChoice reports whether value is a member of the given enumeration.
func ValidChoice(choices []Choice, value string) bool {
	for _, c := range choices {
		if c.Value == value {
			return true
		}
	}
	return false
}
