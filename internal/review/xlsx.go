package review

import (
	"context"
	"fmt"
	"sort"

	"github.com/mir-sim/backend/internal/models"
	"github.com/xuri/excelize/v2"
)

// ExportXLSX renders the reviewer's entries and summary stats as a
// spreadsheet for handoff outside the tool. Entries are ordered by
// question key (year, then number) so repeated exports diff cleanly.
func (s *Store) ExportXLSX(ctx context.Context, userID int64, totalKnown int) (*excelize.File, error) {
	state := s.State(ctx, userID)
	stats := s.ComputeStats(ctx, userID, totalKnown)

	f := excelize.NewFile()

	const sheet = "Revisiones"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Pregunta", "Convocatoria", "Número", "Estado", "Notas", "Actualizado"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("xlsx header: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("xlsx header: %w", err)
		}
	}

	keys := make([]string, 0, len(state.Reviews))
	for key := range state.Reviews {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		yi, ni, _ := models.ParseQuestionKey(keys[i])
		yj, nj, _ := models.ParseQuestionKey(keys[j])
		if yi != yj {
			return yi < yj
		}
		return ni < nj
	})

	for row, key := range keys {
		entry := state.Reviews[key]
		year, number, _ := models.ParseQuestionKey(key)
		values := []interface{}{
			key,
			year,
			number,
			string(entry.Status),
			entry.Notes,
			entry.UpdatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("xlsx cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("xlsx cell: %w", err)
			}
		}
	}

	const statsSheet = "Resumen"
	if _, err := f.NewSheet(statsSheet); err != nil {
		return nil, fmt.Errorf("xlsx stats sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Total", stats.Total},
		{"Aprobadas", stats.Approved},
		{"Marcadas", stats.Flagged},
		{"Rechazadas", stats.Rejected},
		{"Sin revisar", stats.Unreviewed},
	}
	for row, pair := range summary {
		for col, v := range pair {
			cell, err := excelize.CoordinatesToCellName(col+1, row+1)
			if err != nil {
				return nil, fmt.Errorf("xlsx stats: %w", err)
			}
			if err := f.SetCellValue(statsSheet, cell, v); err != nil {
				return nil, fmt.Errorf("xlsx stats: %w", err)
			}
		}
	}

	return f, nil
}
