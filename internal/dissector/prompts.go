package dissector

import (
	"fmt"
	"strings"

	"github.com/mir-sim/backend/internal/models"
)

// ClassifySystemPrompt returns the system prompt for question
// classification. The taxonomy values here must stay in lockstep with
// the enums in internal/models.
func ClassifySystemPrompt() string {
	return `Eres un experto en el examen MIR español y en terminología clínica.
Tu tarea es clasificar una pregunta del examen MIR con una taxonomía fija.

Devuelve EXCLUSIVAMENTE un objeto JSON, sin texto adicional ni markdown, con esta forma:

{
  "specialty": "string — especialidad principal (p. ej. Cardiología)",
  "subspecialty": "string — subespecialidad o área concreta",
  "topic": "string — tema específico de la pregunta",
  "textSummary": "string — resumen de una frase del enunciado",
  "explanation": "string — explicación razonada de la respuesta correcta",
  "questionType": "caso_clinico | directa | imagen",
  "stemStyle": "mas_probable | de_eleccion | falso_incorrecto | excepto | siguiente_paso | contraindicado",
  "imageType": "null, o si questionType es imagen: genealogico | oftalmologica | endoscopia_orl | rm | tac | rx | fotografia_clinica | ecg | anatomia_patologica | dermatologica | grafico",
  "setting": "urgencias | consulta_especializada | consulta_ap | hospital | sin_contexto | domicilio",
  "population": "adulto | anciano | pediatrico | neonato | gestante",
  "clinicalTask": "diagnostico | tratamiento | fisiopatologia | manejo_inicial | prevencion | estratificacion_riesgo | prueba_diagnostica | decisiones_eticas | certificacion_legal | diagnostico_molecular",
  "cognitiveLevel": "recuerdo | comprension | aplicacion | analisis",
  "reasoningType": "pattern_recognition | algoritmo | regla_criterio | integracion_multidisciplinar",
  "mirTipologia": "dx_directo | tx_eleccion | concepto_basico | clasificacion | protocolo_guia | contraindicacion | prevencion_mir | urgencia",
  "snomed": {
    "clinicalFocus": [{"code": "...", "display": "..."}],
    "context": [],
    "findings": [],
    "procedures": [],
    "pharmaceuticals": [{"code": "...", "display": "...", "atc": "..."}],
    "anatomy": []
  },
  "icd10": ["códigos CIE-10 relevantes"],
  "atc": ["códigos ATC de los fármacos mencionados"],
  "distractorAnalysis": ["por qué falla cada opción incorrecta, en el orden de las opciones; cadena vacía para la correcta"]
}

Los códigos SNOMED CT y CIE-10 deben ser reales. Si una categoría SNOMED no aplica, usa un array vacío.`
}

// BuildClassifyUserPrompt renders one exam question for classification.
func BuildClassifyUserPrompt(q models.Question) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Pregunta %d:\n\n%s\n\nOpciones:\n", q.Number, q.Text)
	for _, a := range q.Answers {
		marker := " "
		if a.IsCorrect {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %d. %s\n", marker, a.Order, a.Text)
	}
	b.WriteString("\nLa opción marcada con * es la respuesta oficial correcta.\n")
	if len(q.Images) > 0 {
		fmt.Fprintf(&b, "La pregunta incluye %d imagen(es) asociada(s).\n", len(q.Images))
	}
	b.WriteString("\nClasifica la pregunta con el JSON indicado.")

	return b.String()
}
