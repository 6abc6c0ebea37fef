package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/mir-sim/backend/internal/models"
	"github.com/mir-sim/backend/internal/storage"
)

// ErrNoAttempt reports a submit with no in-progress draft to score, e.g. a
// repeated submit after the first one removed the draft.
var ErrNoAttempt = errors.New("no attempt in progress")

// Service owns the lifecycle of exam attempts: draft persistence, action
// dispatch, and the results history log. Storage failures never fail an
// operation — a lost draft costs the resume convenience, nothing else.
type Service struct {
	kv storage.KeyValue
}

func NewService(kv storage.KeyValue) *Service {
	return &Service{kv: kv}
}

// Session returns the current attempt for an exam, restoring a persisted
// draft when one exists for the same year and is not yet submitted, and
// starting fresh otherwise. The bool reports whether a draft was restored.
func (s *Service) Session(ctx context.Context, userID int64, exam *models.Exam) (models.QuizState, bool) {
	key := storage.QuizDraftKey(userID, exam.Year)

	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		log.Printf("[quiz] draft read failed for %s: %v", key, err)
	}
	if found && err == nil {
		var snapshot models.QuizState
		if err := json.Unmarshal(raw, &snapshot); err != nil {
			log.Printf("[quiz] discarding malformed draft %s: %v", key, err)
		} else if snapshot.ExamYear == exam.Year && !snapshot.IsSubmitted {
			return Reduce(NewState(exam), Restore{State: snapshot}), true
		}
	}

	fresh := NewState(exam)
	s.persistDraft(ctx, key, fresh)
	return fresh, false
}

// Apply dispatches one action against the stored attempt and persists the
// outcome. The returned state is the post-action state.
func (s *Service) Apply(ctx context.Context, userID int64, exam *models.Exam, action Action) models.QuizState {
	state, _ := s.Session(ctx, userID, exam)
	next := Reduce(state, action)
	s.persistDraft(ctx, storage.QuizDraftKey(userID, exam.Year), next)
	return next
}

// Reset discards any draft and starts a fresh attempt.
func (s *Service) Reset(ctx context.Context, userID int64, exam *models.Exam) models.QuizState {
	key := storage.QuizDraftKey(userID, exam.Year)
	fresh := NewState(exam)
	s.persistDraft(ctx, key, fresh)
	return fresh
}

// Submit finalizes the attempt: flips it terminal, scores it, appends the
// result to the user's history, and removes the draft snapshot. It returns
// ErrNoAttempt when no in-progress draft exists, so a repeated submit cannot
// score a phantom all-unanswered attempt. When the draft read itself fails
// the fresh in-memory state is scored instead, same tolerance as elsewhere.
func (s *Service) Submit(ctx context.Context, userID int64, exam *models.Exam) (models.QuizResult, error) {
	key := storage.QuizDraftKey(userID, exam.Year)
	state := NewState(exam)

	raw, found, err := s.kv.Get(ctx, key)
	switch {
	case err != nil:
		log.Printf("[quiz] draft read failed for %s: %v", key, err)
	case !found:
		return models.QuizResult{}, ErrNoAttempt
	default:
		var snapshot models.QuizState
		if err := json.Unmarshal(raw, &snapshot); err != nil {
			log.Printf("[quiz] discarding malformed draft %s: %v", key, err)
			return models.QuizResult{}, ErrNoAttempt
		}
		if snapshot.ExamYear != exam.Year || snapshot.IsSubmitted {
			return models.QuizResult{}, ErrNoAttempt
		}
		state = Reduce(state, Restore{State: snapshot})
	}

	submitted := Reduce(state, Submit{})
	result := CalculateResult(exam, submitted)

	s.appendResult(ctx, userID, result)

	if err := s.kv.Delete(ctx, key); err != nil {
		log.Printf("[quiz] draft delete failed for year %d: %v", exam.Year, err)
	}
	return result, nil
}

// Results returns the append-only history, newest first.
func (s *Service) Results(ctx context.Context, userID int64) []models.QuizResult {
	history := s.loadHistory(ctx, userID)
	// Stored oldest-first; serve newest-first.
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
	return history
}

func (s *Service) persistDraft(ctx context.Context, key string, state models.QuizState) {
	raw, err := json.Marshal(state)
	if err != nil {
		log.Printf("[quiz] draft marshal failed for %s: %v", key, err)
		return
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		log.Printf("[quiz] draft write failed for %s: %v", key, err)
	}
}

func (s *Service) appendResult(ctx context.Context, userID int64, result models.QuizResult) {
	history := s.loadHistory(ctx, userID)
	history = append(history, result)

	raw, err := json.Marshal(history)
	if err != nil {
		log.Printf("[quiz] history marshal failed: %v", err)
		return
	}
	if err := s.kv.Set(ctx, storage.ResultsHistoryKey(userID), raw); err != nil {
		log.Printf("[quiz] history write failed: %v", err)
	}
}

func (s *Service) loadHistory(ctx context.Context, userID int64) []models.QuizResult {
	raw, found, err := s.kv.Get(ctx, storage.ResultsHistoryKey(userID))
	if err != nil {
		log.Printf("[quiz] history read failed: %v", err)
		return nil
	}
	if !found {
		return nil
	}
	var history []models.QuizResult
	if err := json.Unmarshal(raw, &history); err != nil {
		log.Printf("[quiz] discarding malformed history: %v", err)
		return nil
	}
	return history
}
