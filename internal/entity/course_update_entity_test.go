package entity

import "testing"

func TestValidUpdateCategory(t *testing.T) {
	valid := []string{"EVALUACIÓN", "CLASE", "TAREA", "SÍLABO", "CRONOGRAMA", "GENERAL"}
	for _, c := range valid {
		if !ValidUpdateCategory(c) {
			t.Errorf("ValidUpdateCategory(%q) = false", c)
		}
	}

	invalid := []string{"", "general", "EXAMEN", "EVALUACION"}
	for _, c := range invalid {
		if ValidUpdateCategory(c) {
			t.Errorf("ValidUpdateCategory(%q) = true", c)
		}
	}
}
