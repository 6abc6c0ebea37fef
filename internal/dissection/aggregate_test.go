package dissection

import (
	"reflect"
	"testing"

	"github.com/mir-sim/backend/internal/models"
)

func q(specialty string, task models.ClinicalTask, level models.CognitiveLevel) models.DissectionQuestion {
	return models.DissectionQuestion{
		Year:           2024,
		Specialty:      specialty,
		ClinicalTask:   task,
		CognitiveLevel: level,
	}
}

func TestCountBySumsToLength(t *testing.T) {
	questions := []models.DissectionQuestion{
		q("Cardiología", models.TaskDiagnostico, models.LevelAnalisis),
		q("Cardiología", models.TaskTratamiento, models.LevelRecuerdo),
		q("Neurología", models.TaskDiagnostico, models.LevelAplicacion),
		q("", models.TaskDiagnostico, models.LevelRecuerdo),
		q("", models.TaskPrevencion, models.LevelRecuerdo),
	}

	counts := CountBy(questions, FieldSpecialty)

	if counts["Cardiología"] != 2 || counts["Neurología"] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
	if counts[NoData] != 2 {
		t.Errorf("empty specialties = %d, want 2 in %q bucket", counts[NoData], NoData)
	}

	sum := 0
	for _, n := range counts {
		sum += n
	}
	if sum != len(questions) {
		t.Errorf("count sum = %d, want %d", sum, len(questions))
	}
}

func TestSortedEntries(t *testing.T) {
	counts := map[string]int{"a": 2, "b": 5, "c": 2, "d": 1}

	desc := SortedEntries(counts, false)
	want := []Entry{{"b", 5}, {"a", 2}, {"c", 2}, {"d", 1}}
	if !reflect.DeepEqual(desc, want) {
		t.Errorf("descending = %v, want %v", desc, want)
	}

	asc := SortedEntries(counts, true)
	wantAsc := []Entry{{"d", 1}, {"a", 2}, {"c", 2}, {"b", 5}}
	if !reflect.DeepEqual(asc, wantAsc) {
		t.Errorf("ascending = %v, want %v", asc, wantAsc)
	}
}

func TestCrossTabulate(t *testing.T) {
	questions := []models.DissectionQuestion{
		q("Cardiología", models.TaskDiagnostico, ""),
		q("Cardiología", models.TaskDiagnostico, ""),
		q("Cardiología", models.TaskTratamiento, ""),
		q("Neurología", models.TaskDiagnostico, ""),
		// Missing either field: excluded from the table entirely.
		q("", models.TaskDiagnostico, ""),
		q("Digestivo", "", ""),
	}

	ct := CrossTabulate(questions, FieldSpecialty, FieldClinicalTask)

	// Rows by descending total: Cardiología (3) before Neurología (1).
	if !reflect.DeepEqual(ct.Rows, []string{"Cardiología", "Neurología"}) {
		t.Errorf("rows = %v", ct.Rows)
	}
	// Columns in first-seen order.
	if !reflect.DeepEqual(ct.Cols, []string{"diagnostico", "tratamiento"}) {
		t.Errorf("cols = %v", ct.Cols)
	}

	if ct.Matrix["Cardiología"]["diagnostico"] != 2 {
		t.Errorf("cell = %d, want 2", ct.Matrix["Cardiología"]["diagnostico"])
	}

	// Max equals the largest cell, and every fully-tagged item is counted
	// in exactly one cell.
	total, max := 0, 0
	for _, cells := range ct.Matrix {
		for _, n := range cells {
			total += n
			if n > max {
				max = n
			}
		}
	}
	if ct.Max != max {
		t.Errorf("Max = %d, want %d", ct.Max, max)
	}
	if total != 4 {
		t.Errorf("cell total = %d, want 4 (excluded items must not be counted)", total)
	}
}

func TestCrossTabulateEmpty(t *testing.T) {
	ct := CrossTabulate(nil, FieldSpecialty, FieldClinicalTask)
	if len(ct.Rows) != 0 || len(ct.Cols) != 0 || ct.Max != 0 {
		t.Errorf("empty input produced %v", ct)
	}
}

func TestTopSnomed(t *testing.T) {
	mk := func(displays ...string) models.DissectionQuestion {
		var entries []models.SnomedEntry
		for _, d := range displays {
			entries = append(entries, models.SnomedEntry{Code: "c-" + d, Display: d})
		}
		return models.DissectionQuestion{Snomed: models.SnomedCodes{Findings: entries}}
	}

	questions := []models.DissectionQuestion{
		mk("fiebre", "tos"),
		mk("fiebre"),
		mk("disnea"),
	}

	top := TopSnomed(questions, "findings", 2)
	if len(top) != 2 {
		t.Fatalf("len = %d, want 2", len(top))
	}
	if top[0].Key != "fiebre" || top[0].Count != 2 {
		t.Errorf("top entry = %v, want fiebre/2", top[0])
	}

	if got := TopSnomed(questions, "unknown-role", 5); len(got) != 0 {
		t.Errorf("unknown role returned %v", got)
	}
}

func TestUniqueValues(t *testing.T) {
	questions := []models.DissectionQuestion{
		q("Neurología", "", ""),
		q("Cardiología", "", ""),
		q("Neurología", "", ""),
		q("", "", ""),
	}
	got := UniqueValues(questions, FieldSpecialty)
	if !reflect.DeepEqual(got, []string{"Cardiología", "Neurología"}) {
		t.Errorf("UniqueValues = %v", got)
	}
}

func TestFormatLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "—"},
		{"caso_clinico", "Caso clínico"},
		{"consulta_ap", "Atención Primaria"},
		{"some_unknown_tag", "Some Unknown Tag"},
		{"única palabra", "Única Palabra"}, // accented initial stays intact
	}
	for _, tt := range tests {
		if got := FormatLabel(tt.in); got != tt.want {
			t.Errorf("FormatLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPct(t *testing.T) {
	if got := Pct(1, 3); got != 33.3 {
		t.Errorf("Pct(1,3) = %v, want 33.3", got)
	}
	if got := Pct(5, 0); got != 0 {
		t.Errorf("Pct(5,0) = %v, want 0", got)
	}
}
