package review

import (
	"testing"

	"github.com/mir-sim/backend/internal/models"
)

func reviewFixture() []models.DissectionQuestion {
	return []models.DissectionQuestion{
		{Year: 2024, Number: 1, Specialty: "Cardiología", Text: "dolor torácico", QuestionType: models.TypeCasoClinico},
		{Year: 2024, Number: 2, Specialty: "Neurología", Text: "cefalea brusca", QuestionType: models.TypeDirecta},
		{Year: 2023, Number: 3, Specialty: "Cardiología", Text: "soplo sistólico", QuestionType: models.TypeDirecta},
	}
}

func statusMap(entries map[string]models.ReviewStatus) StatusFunc {
	return func(year, number int) *models.ReviewStatus {
		if s, ok := entries[models.QuestionKey(year, number)]; ok {
			return &s
		}
		return nil
	}
}

func TestFilterQuestionsByStatus(t *testing.T) {
	questions := reviewFixture()
	getStatus := statusMap(map[string]models.ReviewStatus{
		"2024-Q1": models.ReviewApproved,
		"2023-Q3": models.ReviewFlagged,
	})

	got := FilterQuestions(questions, Filters{Status: "approved"}, getStatus)
	if len(got) != 1 || got[0].Number != 1 {
		t.Errorf("approved filter = %v", got)
	}

	got = FilterQuestions(questions, Filters{Status: StatusUnreviewed}, getStatus)
	if len(got) != 1 || got[0].Number != 2 {
		t.Errorf("unreviewed filter = %v", got)
	}
}

func TestFilterQuestionsConjunction(t *testing.T) {
	questions := reviewFixture()
	none := statusMap(nil)

	got := FilterQuestions(questions, Filters{Year: 2024, Specialty: "Cardiología"}, none)
	if len(got) != 1 || got[0].Number != 1 {
		t.Errorf("year+specialty = %v", got)
	}

	// Search also covers the specialty field in the review tool.
	got = FilterQuestions(questions, Filters{Search: "neurolog"}, none)
	if len(got) != 1 || got[0].Number != 2 {
		t.Errorf("search = %v", got)
	}

	got = FilterQuestions(questions, Filters{}, none)
	if len(got) != 3 {
		t.Errorf("no filters kept %d of 3", len(got))
	}
}

func TestFilterQuestionsByTag(t *testing.T) {
	questions := reviewFixture()
	questions[0].ICD10 = []string{"I21.0"}
	none := statusMap(nil)

	got := FilterQuestions(questions, Filters{Tag: &TagFilter{Field: "icd10", Value: "I21.0"}}, none)
	if len(got) != 1 || got[0].Number != 1 {
		t.Errorf("tag filter = %v", got)
	}
}
