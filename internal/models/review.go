package models

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

type ReviewStatus string

const (
	ReviewApproved ReviewStatus = "approved"
	ReviewFlagged  ReviewStatus = "flagged"
	ReviewRejected ReviewStatus = "rejected"
)

var ValidReviewStatuses = map[ReviewStatus]bool{
	ReviewApproved: true,
	ReviewFlagged:  true,
	ReviewRejected: true,
}

type ReviewEntry struct {
	Status    ReviewStatus `json:"status"`
	Notes     string       `json:"notes"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// ReviewStateVersion is the only snapshot version this build reads or
// writes. Imports with any other version are rejected wholesale.
const ReviewStateVersion = 1

// ReviewState is the whole persisted review document. Keys are question
// keys in "YYYY-Qn" form.
type ReviewState struct {
	Version int                    `json:"version"`
	Reviews map[string]ReviewEntry `json:"reviews"`
}

// NewReviewState returns an empty document at the current version.
func NewReviewState() ReviewState {
	return ReviewState{Version: ReviewStateVersion, Reviews: map[string]ReviewEntry{}}
}

type ReviewStats struct {
	Total      int `json:"total"`
	Approved   int `json:"approved"`
	Flagged    int `json:"flagged"`
	Rejected   int `json:"rejected"`
	Unreviewed int `json:"unreviewed"`
}

// ── Question keys ───────────────────────────────────────

// QuestionKey builds the "YYYY-Qn" identity used across review state and
// similarity data.
func QuestionKey(year, number int) string {
	return fmt.Sprintf("%d-Q%d", year, number)
}

var questionKeyPattern = regexp.MustCompile(`^(\d+)-Q(\d+)$`)

// ParseQuestionKey splits a "YYYY-Qn" key. ok is false for any other shape.
func ParseQuestionKey(key string) (year, number int, ok bool) {
	m := questionKeyPattern.FindStringSubmatch(key)
	if m == nil {
		return 0, 0, false
	}
	year, _ = strconv.Atoi(m[1])
	number, _ = strconv.Atoi(m[2])
	return year, number, true
}

// ── Similarity data (read-only, offline-computed) ───────

type SimilarEntry struct {
	Key         string   `json:"key"`
	Score       float64  `json:"score"`
	Shared      []string `json:"shared"`
	Specialty   string   `json:"specialty"`
	TextSummary string   `json:"textSummary"`
}

type SimilarMap map[string][]SimilarEntry

// ── Request Types ───────────────────────────────────────

type SetReviewRequest struct {
	Status ReviewStatus `json:"status"`
	Notes  string       `json:"notes"`
}
