// Package content loads the static JSON documents produced by the offline
// pipeline (cmd/mirdata): per-year exams, dissection datasets, review data,
// and the exam manifest. Documents are read-only; the loader caches parsed
// copies and hands out pointers that callers must not mutate.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mir-sim/backend/internal/models"
)

// Loader reads and caches content documents from a data directory.
type Loader struct {
	dataDir  string
	validate bool

	mu          sync.RWMutex
	manifest    *models.ExamManifest
	exams       map[int]*models.Exam
	dissections map[int][]models.DissectionQuestion
	reviewAll   []models.DissectionQuestion
	similar     models.SimilarMap
}

// NewLoader creates a loader over dataDir. When validate is true every
// document is checked against its JSON Schema before being parsed, turning
// the trusted-pipeline assumption into a startup-time check.
func NewLoader(dataDir string, validate bool) *Loader {
	return &Loader{
		dataDir:     dataDir,
		validate:    validate,
		exams:       make(map[int]*models.Exam),
		dissections: make(map[int][]models.DissectionQuestion),
	}
}

// Manifest returns the exam manifest.
func (l *Loader) Manifest(ctx context.Context) (*models.ExamManifest, error) {
	l.mu.RLock()
	cached := l.manifest
	l.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	var manifest models.ExamManifest
	if err := l.read(ctx, "manifest.json", schemaManifest, &manifest); err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.manifest = &manifest
	l.mu.Unlock()
	return &manifest, nil
}

// Exam returns one year's exam, or a descriptive not-found error. A single
// failed load is terminal for the request; retry policy belongs to callers.
func (l *Loader) Exam(ctx context.Context, year int) (*models.Exam, error) {
	l.mu.RLock()
	cached := l.exams[year]
	l.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	var exam models.Exam
	name := fmt.Sprintf("exam-%d.json", year)
	if err := l.read(ctx, name, schemaExam, &exam); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("exam %d not found", year)
		}
		return nil, err
	}

	l.mu.Lock()
	l.exams[year] = &exam
	l.mu.Unlock()
	return &exam, nil
}

// Dissection returns one year's classified question set.
func (l *Loader) Dissection(ctx context.Context, year int) ([]models.DissectionQuestion, error) {
	l.mu.RLock()
	cached := l.dissections[year]
	l.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	var questions []models.DissectionQuestion
	name := fmt.Sprintf("dissection-%d.json", year)
	if err := l.read(ctx, name, schemaDissection, &questions); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("dissection %d not found", year)
		}
		return nil, err
	}

	l.mu.Lock()
	l.dissections[year] = questions
	l.mu.Unlock()
	return questions, nil
}

// ReviewQuestions returns the all-years combined dataset backing the
// review tool.
func (l *Loader) ReviewQuestions(ctx context.Context) ([]models.DissectionQuestion, error) {
	l.mu.RLock()
	cached := l.reviewAll
	l.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	var questions []models.DissectionQuestion
	if err := l.read(ctx, "review-all.json", schemaDissection, &questions); err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.reviewAll = questions
	l.mu.Unlock()
	return questions, nil
}

// Similar returns the offline-computed similarity map.
func (l *Loader) Similar(ctx context.Context) (models.SimilarMap, error) {
	l.mu.RLock()
	cached := l.similar
	l.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	var similar models.SimilarMap
	if err := l.read(ctx, "review-similar.json", "", &similar); err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.similar = similar
	l.mu.Unlock()
	return similar, nil
}

func (l *Loader) read(ctx context.Context, name, schema string, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(l.dataDir, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	if l.validate && schema != "" {
		if err := validateDocument(schema, raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}
