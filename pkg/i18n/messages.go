// Package i18n holds the outbound message templates. The core only ever
// emits (template key, params) pairs; the literal text for every supported
// language lives here and nowhere else.
package i18n

import "strings"

// Template keys understood by Render.
const (
	KeyLanguagePrompt   = "language_prompt"
	KeyWelcome          = "welcome"
	KeyMainMenu         = "main_menu"
	KeyCourseSelection  = "course_selection"
	KeyCycleSelection   = "cycle_selection"
	KeySectionSelection = "section_selection"
	KeyReadyForQuery    = "ready_for_query"
	KeyInvalidLanguage  = "invalid_language"
	KeyInvalidOption    = "invalid_option"
	KeyInvalidCourse    = "invalid_course"
	KeyInvalidCycle     = "invalid_cycle"
	KeyInvalidSection   = "invalid_section"
	KeyDocumentsList    = "documents_list"
	KeyNoDocuments      = "no_documents"
	KeySearchAnswer     = "search_answer"
	KeyNoContent        = "no_content"
	KeyFlaggedWarning   = "flagged_warning"
	KeyErrorProcessing  = "error_processing"
)

const defaultLanguage = "es"

// menuHint is appended to most prompts so the user can always escape.
var menuHint = map[string]string{
	"es": "\n\n(Escribe 'menu' para volver al menú principal)",
	"qu": "\n\n(Qillqay 'menu' qallariy patamanman kutirinaykipaq)",
}

var tables = map[string]map[string]string{
	"es": {
		KeyLanguagePrompt:   "Selecciona tu idioma / Simiykita akllay:\n1. Español\n2. Quechua",
		KeyWelcome:          "¡Bienvenido al asistente de cursos! 👋\n\nEscribe '1' para ver los cursos disponibles.\n\n⚠️ Este es un asistente de IA entrenado con datos del curso. Por favor, verifica la información con tus profesores.",
		KeyMainMenu:         "🔄 Menú principal.\n\nEscribe '1' para ver los cursos disponibles.",
		KeyCourseSelection:  "Por favor, selecciona un curso de la lista:\n{courses}",
		KeyCycleSelection:   "✅ Curso seleccionado: {course}\n\nPor favor, ingresa el ciclo en formato YYYY1 o YYYY2 (ejemplo: 20241).",
		KeySectionSelection: "Por favor, ingresa la sección del curso (ejemplo: G1, G2, etc.).",
		KeyReadyForQuery:    "¡Perfecto! Ahora puedes hacer preguntas sobre el curso, o escribir 'docs' para ver los documentos.",
		KeyInvalidLanguage:  "Por favor, selecciona un idioma válido (1/2).",
		KeyInvalidOption:    "Por favor, elige una opción válida.",
		KeyInvalidCourse:    "Por favor, selecciona un curso válido de la lista.",
		KeyInvalidCycle:     "Por favor, ingresa un ciclo válido en formato YYYY1 o YYYY2 (ejemplo: 20241).",
		KeyInvalidSection:   "La sección no puede estar vacía. Por favor, ingresa una sección válida.",
		KeyDocumentsList:    "📚 Documentos disponibles:\n{documents}",
		KeyNoDocuments:      "No hay documentos disponibles para esta sección.",
		KeySearchAnswer:     "{answer}",
		KeyNoContent:        "No encontré información para el curso '{course}' en el ciclo {cycle}, sección {section}.",
		KeyFlaggedWarning:   "⚠️ ADVERTENCIA: Tu mensaje ha sido detectado como inapropiado.\n\nRazón: {category}\n\n🚫 Este tipo de contenido está prohibido y será reportado a las autoridades universitarias. Por favor, mantén un ambiente respetuoso.",
		KeyErrorProcessing:  "Lo siento, hubo un error al procesar tu mensaje. Por favor, intenta de nuevo.",
	},
	"qu": {
		KeyLanguagePrompt:   "Selecciona tu idioma / Simiykita akllay:\n1. Español\n2. Quechua",
		KeyWelcome:          "¡Allin hamunayki yachay yanapaqman! 👋\n\nQillqay '1' yachaykunata qhawanaykipaq.\n\n⚠️ Kayqa yachay wasimanta yachachisqa IA yanapakuqmi. Ama hina kaspa, yachachiqkunawan willakuyta chiqaqchay.",
		KeyMainMenu:         "🔄 Qallariy pata.\n\nQillqay '1' yachaykunata qhawanaykipaq.",
		KeyCourseSelection:  "Ama hina kaspa, huk yachayta akllay kay listamanta:\n{courses}",
		KeyCycleSelection:   "✅ Yachay akllasqa: {course}\n\nAma hina kaspa, YYYY1 utaq YYYY2 formatupi cicloykita qillqay (ejemplopaq: 20241).",
		KeySectionSelection: "Ama hina kaspa, seccionniykita qillqay (ejemplopaq: G1, G2, hukniraq).",
		KeyReadyForQuery:    "¡Allinmi! Kunanqa yachaymanta tapukuyta atinki, utaq 'docs' qillqay documentokunata qhawanaykipaq.",
		KeyInvalidLanguage:  "Ama hina kaspa, allin simita akllay (1/2).",
		KeyInvalidOption:    "Ama hina kaspa, allin akllanata akllay.",
		KeyInvalidCourse:    "Ama hina kaspa, listamanta allin yachayta akllay.",
		KeyInvalidCycle:     "Ama hina kaspa, allin YYYY1 utaq YYYY2 formatupi cicloykita qillqay (ejemplopaq: 20241).",
		KeyInvalidSection:   "Seccionniyki mana ch'usaqchu kanan. Ama hina kaspa, allin seccionniykita qillqay.",
		KeyDocumentsList:    "📚 Documentokuna tarisqa:\n{documents}",
		KeyNoDocuments:      "Mana documentokuna kanchu kay seccionpaq.",
		KeySearchAnswer:     "{answer}",
		KeyNoContent:        "Mana tarinichu willakuyta kay yachaypaq '{course}' kay ciclo {cycle}, seccion {section}pi.",
		KeyFlaggedWarning:   "⚠️ WILLAKUY: Willakuyniykiqa mana allinchu kasqa.\n\nRazon: {category}\n\n🚫 Kay hina willakuyqa hark'asqam kachkan, yachay wasiman willasqam kanqa. Ama hina kaspa, respetowan rimanakuy.",
		KeyErrorProcessing:  "Pampachaway, willakuyniykita procesaypi pantay karqan. Ama hina kaspa, huktawan ruwapay.",
	},
}

// Render resolves a template key for a language and substitutes {name}
// params. Unknown languages fall back to Spanish; unknown keys render as the
// key itself so a missing entry is visible instead of silent.
func Render(key, language string, params map[string]string) string {
	table, ok := tables[language]
	if !ok {
		language = defaultLanguage
		table = tables[defaultLanguage]
	}
	tmpl, ok := table[key]
	if !ok {
		return key
	}

	out := tmpl
	for name, value := range params {
		out = strings.ReplaceAll(out, "{"+name+"}", value)
	}

	// Prompts that expect further input carry the escape hint.
	switch key {
	case KeyCourseSelection, KeyCycleSelection, KeySectionSelection,
		KeyReadyForQuery, KeyInvalidCourse, KeyInvalidCycle,
		KeyInvalidSection, KeyInvalidOption, KeyNoContent, KeyErrorProcessing:
		out += menuHint[language]
	}
	return out
}

// Supported reports whether a language code has its own table.
func Supported(language string) bool {
	_, ok := tables[language]
	return ok
}
