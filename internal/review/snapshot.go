package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mir-sim/backend/internal/models"
	"github.com/tidwall/gjson"
)

// ErrVersionMismatch is returned when an imported snapshot carries any
// version other than the store's. Mismatched snapshots are rejected
// wholesale, never migrated.
var ErrVersionMismatch = errors.New("snapshot version mismatch")

// ExportSnapshot serializes the reviewer's whole versioned document,
// indented for human-readable downloads.
func (s *Store) ExportSnapshot(ctx context.Context, userID int64) ([]byte, error) {
	state := s.State(ctx, userID)
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export snapshot: %w", err)
	}
	return raw, nil
}

// ImportSnapshot merges an exported document into the current state.
// Incoming entries overwrite existing entries with the same key
// (last-write-wins, no timestamp comparison). On any validation failure
// the existing store is left untouched — there is no partial merge.
func (s *Store) ImportSnapshot(ctx context.Context, userID int64, document []byte) error {
	// Probe the version tag before committing to a full parse, so a
	// snapshot from a different schema generation is rejected cheaply.
	version := gjson.GetBytes(document, "version")
	if !version.Exists() || version.Int() != models.ReviewStateVersion {
		return ErrVersionMismatch
	}

	var incoming models.ReviewState
	if err := json.Unmarshal(document, &incoming); err != nil {
		return fmt.Errorf("parse snapshot: %w", err)
	}

	state := s.State(ctx, userID)
	for key, entry := range incoming.Reviews {
		state.Reviews[key] = entry
	}
	s.save(ctx, userID, state)
	return nil
}

func now() time.Time {
	return time.Now().UTC()
}
