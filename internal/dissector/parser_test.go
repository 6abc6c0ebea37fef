package dissector

import (
	"context"
	"strings"
	"testing"

	"github.com/mir-sim/backend/internal/models"
)

func validClassificationJSON() string {
	return `{
		"specialty": "Neurología",
		"subspecialty": "Enfermedad cerebrovascular",
		"topic": "Ictus isquémico",
		"textSummary": "Paciente con hemiparesia brusca.",
		"explanation": "La TC urgente descarta hemorragia antes de fibrinolisis.",
		"questionType": "caso_clinico",
		"stemStyle": "siguiente_paso",
		"imageType": null,
		"setting": "urgencias",
		"population": "anciano",
		"clinicalTask": "manejo_inicial",
		"cognitiveLevel": "aplicacion",
		"reasoningType": "algoritmo",
		"mirTipologia": "urgencia",
		"snomed": {
			"clinicalFocus": [{"code": "422504002", "display": "Ictus isquémico"}],
			"context": [], "findings": [], "procedures": [],
			"pharmaceuticals": [], "anatomy": []
		},
		"icd10": ["I63.9"],
		"atc": [],
		"distractorAnalysis": ["", "Retrasa el tratamiento.", "No indicado de inicio.", "Contraindicado sin TC."]
	}`
}

func TestParseClassificationValid(t *testing.T) {
	c, err := ParseClassification(validClassificationJSON())
	if err != nil {
		t.Fatalf("ParseClassification failed: %v", err)
	}
	if c.Specialty != "Neurología" {
		t.Errorf("specialty = %q", c.Specialty)
	}
	if c.QuestionType != models.TypeCasoClinico {
		t.Errorf("questionType = %q", c.QuestionType)
	}
	if len(c.Snomed.ClinicalFocus) != 1 || c.Snomed.ClinicalFocus[0].Code != "422504002" {
		t.Errorf("snomed clinicalFocus not parsed: %+v", c.Snomed.ClinicalFocus)
	}
}

func TestParseClassificationStripsCodeFences(t *testing.T) {
	fenced := "```json\n" + validClassificationJSON() + "\n```"
	if _, err := ParseClassification(fenced); err != nil {
		t.Errorf("fenced response should parse, got %v", err)
	}
}

func TestParseClassificationRejectsBadEnum(t *testing.T) {
	doc := strings.Replace(validClassificationJSON(), `"urgencias"`, `"la calle"`, 1)
	_, err := ParseClassification(doc)
	if err == nil {
		t.Fatal("expected validation error for bad setting")
	}
	if !strings.Contains(err.Error(), "invalid setting") {
		t.Errorf("error should name the setting field: %v", err)
	}
}

func TestParseClassificationImageTypeRules(t *testing.T) {
	// imageType on a non-image question is rejected
	doc := strings.Replace(validClassificationJSON(), `"imageType": null`, `"imageType": "rx"`, 1)
	if _, err := ParseClassification(doc); err == nil {
		t.Error("expected error for imageType on caso_clinico")
	}

	// an imagen question needs an imageType
	doc = strings.Replace(validClassificationJSON(), `"caso_clinico"`, `"imagen"`, 1)
	if _, err := ParseClassification(doc); err == nil {
		t.Error("expected error for imagen question without imageType")
	}

	// both together are fine
	doc = strings.Replace(validClassificationJSON(), `"caso_clinico"`, `"imagen"`, 1)
	doc = strings.Replace(doc, `"imageType": null`, `"imageType": "tac"`, 1)
	if _, err := ParseClassification(doc); err != nil {
		t.Errorf("imagen question with imageType should parse, got %v", err)
	}
}

func TestParseClassificationRejectsMalformedJSON(t *testing.T) {
	if _, err := ParseClassification("not json at all"); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestClassifyWithMockClient(t *testing.T) {
	d := &Dissector{llm: NewMockClient(), model: "mock"}

	explanation := "La elevación del ST obliga a reperfusión."
	q := models.Question{
		Number:      12,
		Text:        "Hombre de 58 años con dolor torácico opresivo...",
		Explanation: &explanation,
		Answers: []models.Answer{
			{Order: 1, Text: "Alta con analgesia"},
			{Order: 2, Text: "Angioplastia primaria", IsCorrect: true},
			{Order: 3, Text: "Fibrinolisis diferida"},
			{Order: 4, Text: "Betabloqueante oral"},
		},
		CorrectAnswerIndex: 1,
	}

	dq, resp, err := d.Classify(context.Background(), 2023, q)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if resp == nil || resp.OutputTokens == 0 {
		t.Error("expected token usage from mock client")
	}
	if dq.Year != 2023 || dq.Number != 12 {
		t.Errorf("identity not carried over: year=%d number=%d", dq.Year, dq.Number)
	}
	if dq.Specialty == "" || dq.MirTipologia == "" {
		t.Errorf("classification fields not filled: %+v", dq)
	}
	if len(dq.Answers) != 4 {
		t.Fatalf("expected 4 answers, got %d", len(dq.Answers))
	}
	if !dq.Answers[1].IsCorrect {
		t.Error("correct flag lost on answer 2")
	}
	if dq.Answers[0].DistractorAnalysis == nil {
		t.Error("expected distractor analysis on first wrong answer")
	}
}
