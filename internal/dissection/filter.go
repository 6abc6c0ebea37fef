package dissection

import (
	"strings"

	"github.com/mir-sim/backend/internal/models"
)

// Filters is a conjunction of equality constraints by field, plus an
// optional free-text search. An empty value means "no constraint on this
// field", never "match empty string".
type Filters struct {
	Fields map[Field]string
	Search string
}

// Filter applies every constraint (AND semantics). The search term is
// matched case-insensitively as a substring of the question text, its
// summary, and its topic.
func Filter(questions []models.DissectionQuestion, filters Filters) []models.DissectionQuestion {
	result := questions

	for field, value := range filters.Fields {
		if value == "" {
			continue
		}
		result = keep(result, func(q models.DissectionQuestion) bool {
			return FieldValue(q, field) == value
		})
	}

	if filters.Search != "" {
		term := strings.ToLower(filters.Search)
		result = keep(result, func(q models.DissectionQuestion) bool {
			return strings.Contains(strings.ToLower(q.Text), term) ||
				strings.Contains(strings.ToLower(q.TextSummary), term) ||
				strings.Contains(strings.ToLower(q.Topic), term)
		})
	}

	return result
}

// MatchesTag reports whether a question carries a tag value on the given
// field, treating the coded-terminology fields (icd10, atc, snomed) as set
// membership rather than scalar equality.
func MatchesTag(q models.DissectionQuestion, field, value string) bool {
	switch field {
	case "icd10":
		return containsString(q.ICD10, value)
	case "atc":
		return containsString(q.ATC, value)
	case "snomed":
		for _, role := range models.SnomedRoles {
			for _, e := range q.Snomed.Role(role) {
				if e.Code == value || e.Display == value {
					return true
				}
			}
		}
		return false
	default:
		return FieldValue(q, Field(field)) == value
	}
}

func keep(questions []models.DissectionQuestion, pred func(models.DissectionQuestion) bool) []models.DissectionQuestion {
	var out []models.DissectionQuestion
	for _, q := range questions {
		if pred(q) {
			out = append(out, q)
		}
	}
	return out
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
