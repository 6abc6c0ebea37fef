// Package review persists reviewer judgments about individual questions:
// a tri-state status plus free-text notes per question key, held in one
// versioned document per reviewer and written back on every mutation.
package review

import (
	"context"
	"encoding/json"
	"log"

	"github.com/mir-sim/backend/internal/models"
	"github.com/mir-sim/backend/internal/storage"
)

// Store reads and writes review state through the key-value boundary.
// Every operation loads the current document, mutates, and saves; two
// writers racing on the same key resolve last-write-wins, which is the
// documented (and accepted) behavior.
type Store struct {
	kv storage.KeyValue
}

func NewStore(kv storage.KeyValue) *Store {
	return &Store{kv: kv}
}

// State returns the reviewer's current document. Missing or malformed
// persisted payloads fall back to an empty document — review state is a
// convenience, never a reason to fail.
func (s *Store) State(ctx context.Context, userID int64) models.ReviewState {
	raw, found, err := s.kv.Get(ctx, storage.ReviewStateKey(userID))
	if err != nil {
		log.Printf("[review] state read failed: %v", err)
		return models.NewReviewState()
	}
	if !found {
		return models.NewReviewState()
	}

	var state models.ReviewState
	if err := json.Unmarshal(raw, &state); err != nil {
		log.Printf("[review] discarding malformed state: %v", err)
		return models.NewReviewState()
	}
	if state.Reviews == nil {
		state.Reviews = map[string]models.ReviewEntry{}
	}
	return state
}

// SetReview upserts the entry for a question: any existing status and
// notes are overwritten and the timestamp refreshed.
func (s *Store) SetReview(ctx context.Context, userID int64, year, number int, status models.ReviewStatus, notes string) {
	state := s.State(ctx, userID)
	state.Reviews[models.QuestionKey(year, number)] = models.ReviewEntry{
		Status:    status,
		Notes:     notes,
		UpdatedAt: now(),
	}
	s.save(ctx, userID, state)
}

// ClearReview removes the entry entirely; a later status query reports
// unreviewed, not a reset status.
func (s *Store) ClearReview(ctx context.Context, userID int64, year, number int) {
	state := s.State(ctx, userID)
	delete(state.Reviews, models.QuestionKey(year, number))
	s.save(ctx, userID, state)
}

// Status returns the review status for a question, or nil when
// unreviewed.
func (s *Store) Status(ctx context.Context, userID int64, year, number int) *models.ReviewStatus {
	state := s.State(ctx, userID)
	entry, ok := state.Reviews[models.QuestionKey(year, number)]
	if !ok {
		return nil
	}
	status := entry.Status
	return &status
}

// Notes returns the free-text notes for a question, empty when
// unreviewed.
func (s *Store) Notes(ctx context.Context, userID int64, year, number int) string {
	state := s.State(ctx, userID)
	return state.Reviews[models.QuestionKey(year, number)].Notes
}

// ComputeStats tallies per-status counts and derives unreviewed from the
// caller-supplied universe size. Passing a totalKnown smaller than the
// review count is a caller contract violation and yields a negative
// unreviewed figure.
func (s *Store) ComputeStats(ctx context.Context, userID int64, totalKnown int) models.ReviewStats {
	state := s.State(ctx, userID)
	stats := models.ReviewStats{Total: totalKnown}
	for _, entry := range state.Reviews {
		switch entry.Status {
		case models.ReviewApproved:
			stats.Approved++
		case models.ReviewFlagged:
			stats.Flagged++
		case models.ReviewRejected:
			stats.Rejected++
		}
	}
	stats.Unreviewed = totalKnown - stats.Approved - stats.Flagged - stats.Rejected
	return stats
}

func (s *Store) save(ctx context.Context, userID int64, state models.ReviewState) {
	raw, err := json.Marshal(state)
	if err != nil {
		log.Printf("[review] state marshal failed: %v", err)
		return
	}
	if err := s.kv.Set(ctx, storage.ReviewStateKey(userID), raw); err != nil {
		log.Printf("[review] state write failed: %v", err)
	}
}
