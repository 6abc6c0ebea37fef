// Package storage provides the key-value persistence boundary behind quiz
// drafts, results history, and review state. Callers treat the backend as
// best-effort: a failed Set or Delete loses a resume convenience, never
// correctness, so services log and continue.
package storage

import (
	"context"
	"fmt"
)

// KeyValue is a flat byte-valued store. Get reports found=false for a
// missing key without error.
type KeyValue interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Draft snapshots are keyed per user and exam year; results history and
// review state get one document key per user.
const (
	quizDraftPrefix = "mir-quiz"
	resultsHistory  = "mir-results-history"
	reviewState     = "mir-review-state"
)

func keyf(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}

func QuizDraftKey(userID int64, year int) string {
	return keyf("user:%d:%s-%d", userID, quizDraftPrefix, year)
}

func ResultsHistoryKey(userID int64) string {
	return keyf("user:%d:%s", userID, resultsHistory)
}

func ReviewStateKey(userID int64) string {
	return keyf("user:%d:%s", userID, reviewState)
}
