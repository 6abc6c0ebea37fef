package content

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// The schemas cover the structural invariants the core assumes without
// defending at runtime: required fields, index bounds, numOptions >= 2.
// "Exactly one answer is correct" is not expressible in draft-07; the
// dissector validates that during extraction instead.

const schemaExam = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["year", "totalQuestions", "numOptions", "questions"],
  "properties": {
    "year": {"type": "integer", "minimum": 1980},
    "totalQuestions": {"type": "integer", "minimum": 1},
    "numOptions": {"type": "integer", "minimum": 2},
    "hasImages": {"type": "boolean"},
    "questions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["number", "text", "answers", "correctAnswerIndex"],
        "properties": {
          "number": {"type": "integer", "minimum": 1},
          "text": {"type": "string"},
          "textHtml": {"type": "string"},
          "images": {"type": "array", "items": {"type": "string"}},
          "explanation": {"type": ["string", "null"]},
          "correctAnswerIndex": {"type": "integer", "minimum": 0},
          "answers": {
            "type": "array",
            "minItems": 2,
            "items": {
              "type": "object",
              "required": ["order", "text", "isCorrect"],
              "properties": {
                "order": {"type": "integer", "minimum": 1},
                "text": {"type": "string"},
                "isCorrect": {"type": "boolean"}
              }
            }
          }
        }
      }
    }
  }
}`

const schemaManifest = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["totalExams", "totalQuestions", "exams"],
  "properties": {
    "totalExams": {"type": "integer", "minimum": 0},
    "totalQuestions": {"type": "integer", "minimum": 0},
    "yearRange": {"type": "string"},
    "exams": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["year", "totalQuestions", "numOptions"],
        "properties": {
          "year": {"type": "integer"},
          "totalQuestions": {"type": "integer", "minimum": 0},
          "numOptions": {"type": "integer", "minimum": 2},
          "hasImages": {"type": "boolean"},
          "imageCount": {"type": "integer", "minimum": 0}
        }
      }
    }
  }
}`

const schemaDissection = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["year", "number", "text", "answers", "correctAnswerIndex", "specialty"],
    "properties": {
      "year": {"type": "integer", "minimum": 1980},
      "number": {"type": "integer", "minimum": 1},
      "text": {"type": "string"},
      "textSummary": {"type": "string"},
      "specialty": {"type": "string"},
      "correctAnswerIndex": {"type": "integer", "minimum": 0},
      "answers": {"type": "array", "minItems": 2},
      "icd10": {"type": "array", "items": {"type": "string"}},
      "atc": {"type": "array", "items": {"type": "string"}}
    }
  }
}`

func validateDocument(schema string, document []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(document),
	)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return fmt.Errorf("schema violations: %s", strings.Join(problems, "; "))
}
