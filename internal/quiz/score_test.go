package quiz

import (
	"math"
	"testing"
)

func TestNetScore(t *testing.T) {
	tests := []struct {
		name       string
		correct    int
		incorrect  int
		numOptions int
		want       float64
	}{
		{"all zero", 0, 0, 4, 0},
		{"no penalty", 10, 0, 4, 10},
		{"mir reference case", 6, 2, 4, 5.33},
		{"penalty fully cancels", 1, 3, 4, 0},
		{"negative net", 0, 5, 4, -1.67},
		{"five options", 6, 4, 5, 5},
		{"rounding half up", 0, 1, 3, -0.5},
		{"negative half rounds toward zero", 0, 1, 9, -0.12},
		{"positive half rounds up", 9, 1, 9, 8.88},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NetScore(tt.correct, tt.incorrect, tt.numOptions)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("NetScore(%d, %d, %d) = %v, want %v",
					tt.correct, tt.incorrect, tt.numOptions, got, tt.want)
			}
		})
	}
}

func TestCalculateResultBucketsSumToTotal(t *testing.T) {
	exam := testExam(10, 4)
	state := NewState(exam)

	// 6 correct (order 1), 2 incorrect, 2 left unanswered.
	for q := 1; q <= 6; q++ {
		state = Reduce(state, SelectAnswer{QuestionNumber: q, SelectedOrder: 1})
	}
	state = Reduce(state, SelectAnswer{QuestionNumber: 7, SelectedOrder: 2})
	state = Reduce(state, SelectAnswer{QuestionNumber: 8, SelectedOrder: 3})

	result := CalculateResult(exam, state)

	if result.Correct != 6 || result.Incorrect != 2 || result.Unanswered != 2 {
		t.Errorf("buckets = %d/%d/%d, want 6/2/2",
			result.Correct, result.Incorrect, result.Unanswered)
	}
	if sum := result.Correct + result.Incorrect + result.Unanswered; sum != exam.TotalQuestions {
		t.Errorf("bucket sum = %d, want %d", sum, exam.TotalQuestions)
	}
	if result.NetScore != 5.33 {
		t.Errorf("NetScore = %v, want 5.33", result.NetScore)
	}
	if result.ID == "" {
		t.Error("result has no ID")
	}
	if result.ExamYear != exam.Year || result.NumOptions != exam.NumOptions {
		t.Errorf("result metadata %d/%d does not match exam %d/%d",
			result.ExamYear, result.NumOptions, exam.Year, exam.NumOptions)
	}
}

func TestCalculateResultEmptyState(t *testing.T) {
	exam := testExam(5, 4)
	result := CalculateResult(exam, NewState(exam))

	if result.Unanswered != 5 || result.Correct != 0 || result.Incorrect != 0 {
		t.Errorf("buckets = %d/%d/%d, want 0/0/5",
			result.Correct, result.Incorrect, result.Unanswered)
	}
	if result.NetScore != 0 {
		t.Errorf("NetScore = %v, want 0", result.NetScore)
	}
}
