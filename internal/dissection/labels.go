package dissection

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Labels maps coded categorical values to the Spanish display text the
// source data uses.
var Labels = map[string]string{
	"caso_clinico":                 "Caso clínico",
	"directa":                      "Directa",
	"imagen":                       "Imagen",
	"mas_probable":                 "Más probable",
	"de_eleccion":                  "De elección",
	"falso_incorrecto":             "Falso/Incorrecto",
	"excepto":                      "EXCEPTO",
	"siguiente_paso":               "Siguiente paso",
	"contraindicado":               "Contraindicado",
	"recuerdo":                     "Recuerdo",
	"comprension":                  "Comprensión",
	"aplicacion":                   "Aplicación",
	"analisis":                     "Análisis",
	"pattern_recognition":          "Reconocimiento de patrón",
	"algoritmo":                    "Algoritmo",
	"regla_criterio":               "Regla/Criterio",
	"integracion_multidisciplinar": "Integración multidisciplinar",
	"urgencias":                    "Urgencias",
	"consulta_especializada":       "Consulta especializada",
	"consulta_ap":                  "Atención Primaria",
	"hospital":                     "Hospital",
	"sin_contexto":                 "Sin contexto",
	"domicilio":                    "Domicilio",
	"adulto":                       "Adulto",
	"anciano":                      "Anciano (>65a)",
	"pediatrico":                   "Pediátrico",
	"neonato":                      "Neonato",
	"gestante":                     "Gestante",
	"diagnostico":                  "Diagnóstico",
	"tratamiento":                  "Tratamiento",
	"fisiopatologia":               "Fisiopatología",
	"manejo_inicial":               "Manejo inicial",
	"prevencion":                   "Prevención",
	"estratificacion_riesgo":       "Estratificación riesgo",
	"prueba_diagnostica":           "Prueba diagnóstica",
	"decisiones_eticas":            "Decisiones éticas",
	"certificacion_legal":          "Certificación legal",
	"diagnostico_molecular":        "Dx molecular",
	"dx_directo":                   "Dx directo",
	"tx_eleccion":                  "Tx elección",
	"concepto_basico":              "Concepto básico",
	"clasificacion":                "Clasificación",
	"protocolo_guia":               "Protocolo/guía",
	"contraindicacion":             "Contraindicación",
	"prevencion_mir":               "Prevención",
	"urgencia":                     "Urgencia vital",
	"genealogico":                  "Árbol genealógico",
	"oftalmologica":                "Oftalmológica",
	"endoscopia_orl":               "Endoscopia ORL",
	"rm":                           "RM",
	"tac":                          "TAC",
	"rx":                           "Rx",
	"fotografia_clinica":           "Fotografía clínica",
	"ecg":                          "ECG",
	"anatomia_patologica":          "Anatomía patológica",
	"dermatologica":                "Dermatológica",
	"grafico":                      "Gráfico/tabla",
}

// SnomedRoleLabels maps semantic role names to display headings.
var SnomedRoleLabels = map[string]string{
	"clinicalFocus":   "Foco clínico",
	"context":         "Contexto",
	"findings":        "Hallazgos",
	"procedures":      "Procedimientos",
	"pharmaceuticals": "Fármacos",
	"anatomy":         "Anatomía",
}

// FieldLabels maps filterable fields to their Spanish display names.
var FieldLabels = map[Field]string{
	FieldYear:           "Convocatoria",
	FieldSpecialty:      "Especialidad",
	FieldSubspecialty:   "Subespecialidad",
	FieldTopic:          "Tema",
	FieldQuestionType:   "Tipo",
	FieldStemStyle:      "Formulación",
	FieldImageType:      "Tipo imagen",
	FieldSetting:        "Entorno",
	FieldPopulation:     "Población",
	FieldClinicalTask:   "Tarea clínica",
	FieldCognitiveLevel: "Nivel cognitivo",
	FieldReasoningType:  "Razonamiento",
	FieldMirTipologia:   "Tipología MIR",
}

// FormatLabel resolves a coded value to display text. Unknown codes get
// underscores replaced and each word capitalized; the rune-wise walk keeps
// accented characters intact. Empty values display as an em dash.
func FormatLabel(value string) string {
	if value == "" {
		return "—"
	}
	if label, ok := Labels[value]; ok {
		return label
	}

	var b strings.Builder
	startOfWord := true
	for _, r := range value {
		if r == '_' {
			r = ' '
		}
		if r == ' ' {
			startOfWord = true
			b.WriteRune(r)
			continue
		}
		if startOfWord {
			b.WriteRune(unicode.ToUpper(r))
			startOfWord = false
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
