package i18n

import (
	"strings"
	"testing"
)

func TestRenderSubstitutesParams(t *testing.T) {
	out := Render(KeyCycleSelection, "es", map[string]string{"course": "Algoritmos"})
	if !strings.Contains(out, "Algoritmos") {
		t.Errorf("course name missing from %q", out)
	}
	if strings.Contains(out, "{course}") {
		t.Errorf("placeholder left in %q", out)
	}
}

func TestRenderUnknownLanguageFallsBackToSpanish(t *testing.T) {
	es := Render(KeyWelcome, "es", nil)
	got := Render(KeyWelcome, "fr", nil)
	if got != es {
		t.Errorf("fallback = %q, want Spanish %q", got, es)
	}
}

func TestRenderUnknownKeyIsVisible(t *testing.T) {
	if got := Render("nonexistent_key", "es", nil); got != "nonexistent_key" {
		t.Errorf("unknown key rendered as %q", got)
	}
}

func TestRenderAppendsMenuHintToPrompts(t *testing.T) {
	withHint := []string{KeyCourseSelection, KeyCycleSelection, KeyInvalidCycle, KeyNoContent, KeyErrorProcessing}
	for _, key := range withHint {
		if out := Render(key, "es", nil); !strings.Contains(out, "'menu'") {
			t.Errorf("Render(%s) missing menu hint: %q", key, out)
		}
	}

	withoutHint := []string{KeyWelcome, KeyMainMenu, KeyFlaggedWarning, KeySearchAnswer}
	for _, key := range withoutHint {
		if out := Render(key, "es", nil); strings.Contains(out, "volver al menú principal") {
			t.Errorf("Render(%s) carries an unexpected menu hint: %q", key, out)
		}
	}
}

func TestRenderQuechuaHasOwnTable(t *testing.T) {
	es := Render(KeyMainMenu, "es", nil)
	qu := Render(KeyMainMenu, "qu", nil)
	if es == qu {
		t.Error("Quechua table missing, fell back to Spanish")
	}
}

func TestSupported(t *testing.T) {
	tests := []struct {
		lang string
		want bool
	}{
		{"es", true},
		{"qu", true},
		{"en", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Supported(tt.lang); got != tt.want {
			t.Errorf("Supported(%q) = %v, want %v", tt.lang, got, tt.want)
		}
	}
}

func TestTablesAreComplete(t *testing.T) {
	// Every key present in Spanish must exist in every other language so no
	// user ever sees a raw key because of their language choice.
	for lang, table := range tables {
		if lang == defaultLanguage {
			continue
		}
		for key := range tables[defaultLanguage] {
			if _, ok := table[key]; !ok {
				t.Errorf("language %q missing key %q", lang, key)
			}
		}
	}
}
