package quiz

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/mir-sim/backend/internal/models"
)

// NetScore applies the MIR negative-marking formula:
//
//	net = correct - incorrect/(numOptions-1)
//
// rounded half-up to two decimals. Each wrong answer costs a fraction of a
// correct one so random guessing has zero expected value. numOptions must
// be >= 2; exam content is produced by the trusted offline pipeline, so
// numOptions == 1 is not defended against.
func NetScore(correct, incorrect, numOptions int) float64 {
	penalty := float64(incorrect) / float64(numOptions-1)
	return round2(float64(correct) - penalty)
}

// round2 rounds half-up (toward +inf), not half-away-from-zero: a negative
// net landing exactly on a half at the hundredths rounds toward zero.
func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// CalculateResult classifies every question of the exam — the exam's
// question list, not the answer map, is authoritative for totals — into
// exactly one of correct, incorrect, or unanswered, so the three buckets
// always sum to the exam's question count.
func CalculateResult(exam *models.Exam, state models.QuizState) models.QuizResult {
	var correct, incorrect, unanswered int

	for _, q := range exam.Questions {
		selected := state.Answers[q.Number]
		switch {
		case selected == nil:
			unanswered++
		case *selected == q.CorrectOrder():
			correct++
		default:
			incorrect++
		}
	}

	return models.QuizResult{
		ID:             uuid.NewString(),
		ExamYear:       exam.Year,
		TotalQuestions: exam.TotalQuestions,
		Correct:        correct,
		Incorrect:      incorrect,
		Unanswered:     unanswered,
		NetScore:       NetScore(correct, incorrect, exam.NumOptions),
		NumOptions:     exam.NumOptions,
		CompletedAt:    time.Now().UTC(),
		Answers:        cloneAnswers(state.Answers),
	}
}
