package models

import "testing"

func TestValidChoice(t *testing.T) {
	tests := []struct {
		name     string
		choices  []Choice
		value    string
		expected bool
	}{
		{"known grupo", GrupoChoices, "A", true},
		{"unknown grupo", GrupoChoices, "Z", false},
		{"known especialidad", EspecialidadChoices, "programacion", true},
		{"label is not a value", EspecialidadChoices, "Programación", false},
		{"known genero", GeneroChoices, "NE", true},
		{"known edad", EdadChoices, "21+", true},
		{"empty value", EdadChoices, "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidChoice(tc.choices, tc.value); got != tc.expected {
				t.Errorf("ValidChoice(%q) = %v, expected %v", tc.value, got, tc.expected)
			}
		})
	}
}

func TestAllChoices_FourNonEmptyEnumerations(t *testing.T) {
	all := AllChoices()

	lists := map[string][]Choice{
		"grupo":        all.Grupo,
		"especialidad": all.Especialidad,
		"genero":       all.Genero,
		"edad":         all.Edad,
	}

	for name, list := range lists {
		if len(list) == 0 {
			t.Errorf("Enumeration %q is empty", name)
		}
		seen := make(map[string]bool)
		for _, c := range list {
			if c.Value == "" || c.Label == "" {
				t.Errorf("Enumeration %q has an entry with empty value or label", name)
			}
			if seen[c.Value] {
				t.Errorf("Enumeration %q has duplicate value %q", name, c.Value)
			}
			seen[c.Value] = true
		}
	}
}
