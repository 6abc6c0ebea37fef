package dissector

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mir-sim/backend/internal/models"
)

// Classification is the model's answer for one question.
type Classification struct {
	Specialty          string                 `json:"specialty"`
	Subspecialty       string                 `json:"subspecialty"`
	Topic              string                 `json:"topic"`
	TextSummary        string                 `json:"textSummary"`
	Explanation        string                 `json:"explanation"`
	QuestionType       models.QuestionType    `json:"questionType"`
	StemStyle          models.StemStyle       `json:"stemStyle"`
	ImageType          *models.ImageType      `json:"imageType"`
	Setting            models.ClinicalSetting `json:"setting"`
	Population         models.Population      `json:"population"`
	ClinicalTask       models.ClinicalTask    `json:"clinicalTask"`
	CognitiveLevel     models.CognitiveLevel  `json:"cognitiveLevel"`
	ReasoningType      models.ReasoningType   `json:"reasoningType"`
	MirTipologia       models.MirTipologia    `json:"mirTipologia"`
	Snomed             models.SnomedCodes     `json:"snomed"`
	ICD10              []string               `json:"icd10"`
	ATC                []string               `json:"atc"`
	DistractorAnalysis []string               `json:"distractorAnalysis"`
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// ParseClassification decodes and validates a model response.
func ParseClassification(responseBody string) (*Classification, error) {
	cleaned := stripCodeFences(responseBody)

	var c Classification
	if err := json.Unmarshal([]byte(cleaned), &c); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateClassification(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

func validateClassification(c *Classification) error {
	var errs []string

	if c.Specialty == "" {
		errs = append(errs, "empty specialty")
	}
	if c.TextSummary == "" {
		errs = append(errs, "empty textSummary")
	}
	if !models.ValidQuestionTypes[c.QuestionType] {
		errs = append(errs, fmt.Sprintf("invalid questionType %q", c.QuestionType))
	}
	if !models.ValidStemStyles[c.StemStyle] {
		errs = append(errs, fmt.Sprintf("invalid stemStyle %q", c.StemStyle))
	}
	if !models.ValidSettings[c.Setting] {
		errs = append(errs, fmt.Sprintf("invalid setting %q", c.Setting))
	}
	if !models.ValidPopulations[c.Population] {
		errs = append(errs, fmt.Sprintf("invalid population %q", c.Population))
	}
	if !models.ValidClinicalTasks[c.ClinicalTask] {
		errs = append(errs, fmt.Sprintf("invalid clinicalTask %q", c.ClinicalTask))
	}
	if !models.ValidCognitiveLevels[c.CognitiveLevel] {
		errs = append(errs, fmt.Sprintf("invalid cognitiveLevel %q", c.CognitiveLevel))
	}
	if !models.ValidReasoningTypes[c.ReasoningType] {
		errs = append(errs, fmt.Sprintf("invalid reasoningType %q", c.ReasoningType))
	}
	if !models.ValidMirTipologias[c.MirTipologia] {
		errs = append(errs, fmt.Sprintf("invalid mirTipologia %q", c.MirTipologia))
	}

	// Image type must be present exactly when the question is an image one
	if c.QuestionType == models.TypeImagen {
		if c.ImageType == nil {
			errs = append(errs, "imagen question without imageType")
		} else if !models.ValidImageTypes[*c.ImageType] {
			errs = append(errs, fmt.Sprintf("invalid imageType %q", *c.ImageType))
		}
	} else if c.ImageType != nil {
		errs = append(errs, fmt.Sprintf("imageType %q set on non-imagen question", *c.ImageType))
	}

	for _, role := range models.SnomedRoles {
		for _, entry := range c.Snomed.Role(role) {
			if entry.Code == "" || entry.Display == "" {
				errs = append(errs, fmt.Sprintf("snomed %s entry missing code or display", role))
			}
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
