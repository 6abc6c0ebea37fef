package storage

import (
	"context"
	"testing"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, found, err := m.Get(ctx, "missing"); err != nil || found {
		t.Fatalf("Get(missing) = found=%v err=%v, want absent", found, err)
	}

	if err := m.Set(ctx, "k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, found, err := m.Get(ctx, "k")
	if err != nil || !found {
		t.Fatalf("Get(k) = found=%v err=%v, want present", found, err)
	}
	if string(got) != `{"a":1}` {
		t.Errorf("Get(k) = %q, want %q", got, `{"a":1}`)
	}

	// Mutating the returned slice must not affect the stored value.
	got[0] = 'X'
	again, _, _ := m.Get(ctx, "k")
	if string(again) != `{"a":1}` {
		t.Errorf("stored value mutated through returned slice: %q", again)
	}

	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found, _ := m.Get(ctx, "k"); found {
		t.Error("key still present after Delete")
	}
}

func TestKeyBuilders(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{QuizDraftKey(7, 2024), "user:7:mir-quiz-2024"},
		{ResultsHistoryKey(7), "user:7:mir-results-history"},
		{ReviewStateKey(12), "user:12:mir-review-state"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("key = %q, want %q", tt.got, tt.want)
		}
	}
}
