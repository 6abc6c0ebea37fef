package review

import (
	"context"
	"testing"

	"github.com/mir-sim/backend/internal/models"
	"github.com/mir-sim/backend/internal/storage"
)

func TestExportXLSX(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemory())
	store.SetReview(ctx, testUserID, 2023, 40, models.ReviewRejected, "ambigua")
	store.SetReview(ctx, testUserID, 2024, 3, models.ReviewApproved, "")

	f, err := store.ExportXLSX(ctx, testUserID, 100)
	if err != nil {
		t.Fatalf("ExportXLSX failed: %v", err)
	}
	defer f.Close()

	// Header row plus entries ordered by (year, number).
	got, err := f.GetCellValue("Revisiones", "A2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if got != "2023-Q40" {
		t.Errorf("first entry = %q, want 2023-Q40", got)
	}

	status, _ := f.GetCellValue("Revisiones", "D3")
	if status != "approved" {
		t.Errorf("second entry status = %q, want approved", status)
	}

	unreviewed, _ := f.GetCellValue("Resumen", "B5")
	if unreviewed != "98" {
		t.Errorf("unreviewed summary = %q, want 98", unreviewed)
	}
}
