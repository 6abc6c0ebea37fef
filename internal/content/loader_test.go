package content

import (
	"context"
	"strings"
	"testing"
)

func TestLoadManifest(t *testing.T) {
	l := NewLoader("testdata", true)

	m, err := l.Manifest(context.Background())
	if err != nil {
		t.Fatalf("Manifest failed: %v", err)
	}
	if m.TotalExams != 1 || m.TotalQuestions != 2 {
		t.Errorf("manifest totals = %d/%d, want 1/2", m.TotalExams, m.TotalQuestions)
	}
	if len(m.Exams) != 1 || m.Exams[0].Year != 2023 {
		t.Fatalf("manifest exams = %+v", m.Exams)
	}

	// Second call serves the cached pointer
	m2, err := l.Manifest(context.Background())
	if err != nil {
		t.Fatalf("cached Manifest failed: %v", err)
	}
	if m2 != m {
		t.Error("expected cached manifest pointer")
	}
}

func TestLoadExam(t *testing.T) {
	l := NewLoader("testdata", true)

	exam, err := l.Exam(context.Background(), 2023)
	if err != nil {
		t.Fatalf("Exam failed: %v", err)
	}
	if exam.Year != 2023 || exam.NumOptions != 4 {
		t.Errorf("exam = year %d, numOptions %d", exam.Year, exam.NumOptions)
	}
	if len(exam.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(exam.Questions))
	}
	if got := exam.Questions[0].CorrectOrder(); got != 2 {
		t.Errorf("question 1 correct order = %d, want 2", got)
	}
	if exam.Questions[1].Explanation != nil {
		t.Error("question 2 should have nil explanation")
	}
}

func TestLoadExamNotFound(t *testing.T) {
	l := NewLoader("testdata", true)

	_, err := l.Exam(context.Background(), 1999)
	if err == nil {
		t.Fatal("expected error for missing exam")
	}
	if !strings.Contains(err.Error(), "exam 1999 not found") {
		t.Errorf("error should name the year: %v", err)
	}
}

func TestLoadDissection(t *testing.T) {
	l := NewLoader("testdata", true)

	questions, err := l.Dissection(context.Background(), 2023)
	if err != nil {
		t.Fatalf("Dissection failed: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}

	q := questions[0]
	if q.Specialty != "Neumología" || q.ClinicalTask != "prueba_diagnostica" {
		t.Errorf("classification not parsed: %+v", q)
	}
	if q.ImageType != nil {
		t.Error("imageType should be nil")
	}
	if len(q.Snomed.ClinicalFocus) != 1 || q.Snomed.ClinicalFocus[0].Code != "59282003" {
		t.Errorf("snomed not parsed: %+v", q.Snomed)
	}
	if q.Answers[0].DistractorAnalysis == nil {
		t.Error("expected distractor analysis on first answer")
	}
	if q.Answers[1].DistractorAnalysis != nil {
		t.Error("correct answer should have nil distractor analysis")
	}
}

func TestLoadReviewQuestionsAndSimilar(t *testing.T) {
	l := NewLoader("testdata", true)

	questions, err := l.ReviewQuestions(context.Background())
	if err != nil {
		t.Fatalf("ReviewQuestions failed: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}

	similar, err := l.Similar(context.Background())
	if err != nil {
		t.Fatalf("Similar failed: %v", err)
	}
	entries := similar["2023-Q1"]
	if len(entries) != 1 || entries[0].Key != "2019-Q37" {
		t.Errorf("similar entries = %+v", entries)
	}
}

func TestSchemaRejectsMalformedExam(t *testing.T) {
	// numOptions below 2 violates the exam schema
	doc := []byte(`{"year": 2023, "totalQuestions": 1, "numOptions": 1, "questions": [
		{"number": 1, "text": "x", "correctAnswerIndex": 0, "answers": [
			{"order": 1, "text": "a", "isCorrect": true},
			{"order": 2, "text": "b", "isCorrect": false}
		]}
	]}`)
	if err := validateDocument(schemaExam, doc); err == nil {
		t.Error("expected schema violation for numOptions 1")
	}
}

func TestCancelledContext(t *testing.T) {
	l := NewLoader("testdata", true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := l.Exam(ctx, 2023); err == nil {
		t.Error("expected error for cancelled context")
	}
}
