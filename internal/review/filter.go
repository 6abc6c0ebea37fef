package review

import (
	"strings"

	"github.com/mir-sim/backend/internal/dissection"
	"github.com/mir-sim/backend/internal/models"
)

// StatusUnreviewed selects questions without a review entry when used as
// the Status filter value.
const StatusUnreviewed = "unreviewed"

// TagFilter pins a single (field, value) pair, clickable from question
// detail tags. Coded-terminology fields match by set membership.
type TagFilter struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// Filters selects review-tool questions. Zero values mean no constraint.
type Filters struct {
	Year           int
	Specialty      string
	Status         string
	QuestionType   string
	CognitiveLevel string
	ClinicalTask   string
	Population     string
	Setting        string
	Search         string
	Tag            *TagFilter
}

// StatusFunc reports a question's review status, nil for unreviewed.
type StatusFunc func(year, number int) *models.ReviewStatus

// FilterQuestions applies the review filters as a conjunction. The status
// filter consults the reviewer's own state through getStatus; the search
// term matches text, summary, topic, or specialty case-insensitively.
func FilterQuestions(questions []models.DissectionQuestion, filters Filters, getStatus StatusFunc) []models.DissectionQuestion {
	var out []models.DissectionQuestion

	term := strings.ToLower(filters.Search)

	for _, q := range questions {
		if filters.Year != 0 && q.Year != filters.Year {
			continue
		}
		if filters.Specialty != "" && q.Specialty != filters.Specialty {
			continue
		}
		if filters.Status != "" && !matchesStatus(q, filters.Status, getStatus) {
			continue
		}
		if filters.QuestionType != "" && string(q.QuestionType) != filters.QuestionType {
			continue
		}
		if filters.CognitiveLevel != "" && string(q.CognitiveLevel) != filters.CognitiveLevel {
			continue
		}
		if filters.ClinicalTask != "" && string(q.ClinicalTask) != filters.ClinicalTask {
			continue
		}
		if filters.Population != "" && string(q.Population) != filters.Population {
			continue
		}
		if filters.Setting != "" && string(q.Setting) != filters.Setting {
			continue
		}
		if filters.Tag != nil && !dissection.MatchesTag(q, filters.Tag.Field, filters.Tag.Value) {
			continue
		}
		if term != "" && !matchesSearch(q, term) {
			continue
		}
		out = append(out, q)
	}
	return out
}

func matchesStatus(q models.DissectionQuestion, want string, getStatus StatusFunc) bool {
	status := getStatus(q.Year, q.Number)
	if want == StatusUnreviewed {
		return status == nil
	}
	return status != nil && string(*status) == want
}

func matchesSearch(q models.DissectionQuestion, term string) bool {
	return strings.Contains(strings.ToLower(q.Text), term) ||
		strings.Contains(strings.ToLower(q.TextSummary), term) ||
		strings.Contains(strings.ToLower(q.Topic), term) ||
		strings.Contains(strings.ToLower(q.Specialty), term)
}
