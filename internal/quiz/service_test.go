package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mir-sim/backend/internal/models"
	"github.com/mir-sim/backend/internal/storage"
)

const testUserID = int64(1)

func TestSessionFreshStart(t *testing.T) {
	ctx := context.Background()
	svc := NewService(storage.NewMemory())
	exam := testExam(5, 4)

	state, restored := svc.Session(ctx, testUserID, exam)
	if restored {
		t.Error("fresh session reported as restored")
	}
	if state.ExamYear != exam.Year || len(state.Answers) != 5 {
		t.Errorf("unexpected fresh state: year=%d answers=%d", state.ExamYear, len(state.Answers))
	}
}

func TestSessionRestoresUnsubmittedDraft(t *testing.T) {
	ctx := context.Background()
	svc := NewService(storage.NewMemory())
	exam := testExam(5, 4)

	svc.Apply(ctx, testUserID, exam, SelectAnswer{QuestionNumber: 3, SelectedOrder: 2})

	state, restored := svc.Session(ctx, testUserID, exam)
	if !restored {
		t.Fatal("draft not restored")
	}
	if got := state.Answers[3]; got == nil || *got != 2 {
		t.Errorf("restored answer = %v, want 2", got)
	}
}

func TestSessionDiscardsSubmittedDraft(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	svc := NewService(kv)
	exam := testExam(5, 4)

	// Persist a submitted snapshot directly; the collaborator contract says
	// it must be discarded in favor of a fresh attempt.
	var submitted models.QuizState = Reduce(NewState(exam), Submit{})
	raw, _ := json.Marshal(submitted)
	kv.Set(ctx, storage.QuizDraftKey(testUserID, exam.Year), raw)

	state, restored := svc.Session(ctx, testUserID, exam)
	if restored {
		t.Error("submitted draft was restored")
	}
	if state.IsSubmitted {
		t.Error("fresh state is submitted")
	}
}

func TestSessionDiscardsMismatchedYear(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	svc := NewService(kv)
	exam := testExam(5, 4)

	other := NewState(exam)
	other.ExamYear = 2019
	raw, _ := json.Marshal(other)
	kv.Set(ctx, storage.QuizDraftKey(testUserID, exam.Year), raw)

	state, restored := svc.Session(ctx, testUserID, exam)
	if restored {
		t.Error("mismatched-year draft was restored")
	}
	if state.ExamYear != exam.Year {
		t.Errorf("ExamYear = %d, want %d", state.ExamYear, exam.Year)
	}
}

func TestSubmitRemovesDraftAndAppendsHistory(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	svc := NewService(kv)
	exam := testExam(4, 4)

	svc.Apply(ctx, testUserID, exam, SelectAnswer{QuestionNumber: 1, SelectedOrder: 1})
	result, err := svc.Submit(ctx, testUserID, exam)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if result.Correct != 1 || result.Unanswered != 3 {
		t.Errorf("result buckets = %d/%d/%d", result.Correct, result.Incorrect, result.Unanswered)
	}

	if _, found, _ := kv.Get(ctx, storage.QuizDraftKey(testUserID, exam.Year)); found {
		t.Error("draft still present after submit")
	}

	results := svc.Results(ctx, testUserID)
	if len(results) != 1 {
		t.Fatalf("history length = %d, want 1", len(results))
	}
	if results[0].ID != result.ID {
		t.Error("history entry does not match returned result")
	}

	// A second attempt appends; newest first.
	svc.Apply(ctx, testUserID, exam, SelectAnswer{QuestionNumber: 2, SelectedOrder: 1})
	second, err := svc.Submit(ctx, testUserID, exam)
	if err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	results = svc.Results(ctx, testUserID)
	if len(results) != 2 {
		t.Fatalf("history length = %d, want 2", len(results))
	}
	if results[0].ID != second.ID {
		t.Error("newest result not first")
	}
}

func TestRepeatedSubmitRejected(t *testing.T) {
	ctx := context.Background()
	svc := NewService(storage.NewMemory())
	exam := testExam(4, 4)

	svc.Apply(ctx, testUserID, exam, SelectAnswer{QuestionNumber: 1, SelectedOrder: 1})
	if _, err := svc.Submit(ctx, testUserID, exam); err != nil {
		t.Fatalf("first Submit: %v", err)
	}

	// The first submit removed the draft; a replayed submit has nothing to
	// score and must not append a second zero-score result.
	if _, err := svc.Submit(ctx, testUserID, exam); !errors.Is(err, ErrNoAttempt) {
		t.Fatalf("repeated Submit error = %v, want ErrNoAttempt", err)
	}
	if results := svc.Results(ctx, testUserID); len(results) != 1 {
		t.Errorf("history length = %d, want 1", len(results))
	}
}

func TestSubmitWithoutSessionRejected(t *testing.T) {
	ctx := context.Background()
	svc := NewService(storage.NewMemory())
	exam := testExam(4, 4)

	if _, err := svc.Submit(ctx, testUserID, exam); !errors.Is(err, ErrNoAttempt) {
		t.Fatalf("Submit without a draft error = %v, want ErrNoAttempt", err)
	}
}

func TestMalformedDraftFallsBackToFresh(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	svc := NewService(kv)
	exam := testExam(3, 4)

	kv.Set(ctx, storage.QuizDraftKey(testUserID, exam.Year), []byte("{not json"))

	state, restored := svc.Session(ctx, testUserID, exam)
	if restored {
		t.Error("malformed draft reported as restored")
	}
	if len(state.Answers) != 3 {
		t.Errorf("fresh state has %d answers, want 3", len(state.Answers))
	}
}

// failingKV refuses every operation, modeling an unavailable backend.
type failingKV struct{}

func (failingKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, errors.New("storage unavailable")
}
func (failingKV) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("storage unavailable")
}
func (failingKV) Delete(ctx context.Context, key string) error {
	return errors.New("storage unavailable")
}

func TestStorageFailuresAreTolerated(t *testing.T) {
	ctx := context.Background()
	svc := NewService(failingKV{})
	exam := testExam(3, 4)

	state, restored := svc.Session(ctx, testUserID, exam)
	if restored {
		t.Error("restored from a failing backend")
	}
	if state.ExamYear != exam.Year {
		t.Errorf("ExamYear = %d, want %d", state.ExamYear, exam.Year)
	}

	next := svc.Apply(ctx, testUserID, exam, SelectAnswer{QuestionNumber: 1, SelectedOrder: 2})
	if got := next.Answers[1]; got == nil || *got != 2 {
		t.Errorf("in-memory transition lost: answer = %v", got)
	}

	result, err := svc.Submit(ctx, testUserID, exam)
	if err != nil {
		t.Fatalf("Submit over failing backend: %v", err)
	}
	if result.TotalQuestions != 3 {
		t.Errorf("TotalQuestions = %d, want 3", result.TotalQuestions)
	}

	if got := svc.Results(ctx, testUserID); got != nil {
		t.Errorf("Results over failing backend = %v, want nil", got)
	}
}
