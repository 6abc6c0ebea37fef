// Package dissection provides the pure aggregation and filtering utilities
// behind the statistical dissection views: field counts, heatmap
// cross-tabulations, SNOMED rankings, and the explorer filters.
package dissection

import (
	"sort"

	"github.com/mir-sim/backend/internal/models"
)

// NoData is the bucket for records whose grouping field is empty. Counting
// them keeps the invariant that bucket counts sum to the input length.
const NoData = "(sin dato)"

// Field names a groupable/filterable categorical field of a
// DissectionQuestion.
type Field string

const (
	FieldYear           Field = "year"
	FieldSpecialty      Field = "specialty"
	FieldSubspecialty   Field = "subspecialty"
	FieldTopic          Field = "topic"
	FieldQuestionType   Field = "questionType"
	FieldStemStyle      Field = "stemStyle"
	FieldImageType      Field = "imageType"
	FieldSetting        Field = "setting"
	FieldPopulation     Field = "population"
	FieldClinicalTask   Field = "clinicalTask"
	FieldCognitiveLevel Field = "cognitiveLevel"
	FieldReasoningType  Field = "reasoningType"
	FieldMirTipologia   Field = "mirTipologia"
)

// ValidFields lists every field the aggregation endpoints accept.
var ValidFields = map[Field]bool{
	FieldYear:           true,
	FieldSpecialty:      true,
	FieldSubspecialty:   true,
	FieldTopic:          true,
	FieldQuestionType:   true,
	FieldStemStyle:      true,
	FieldImageType:      true,
	FieldSetting:        true,
	FieldPopulation:     true,
	FieldClinicalTask:   true,
	FieldCognitiveLevel: true,
	FieldReasoningType:  true,
	FieldMirTipologia:   true,
}

// FieldValue extracts a field's stringified value; empty string for unset
// values (nil imageType, blank tags).
func FieldValue(q models.DissectionQuestion, field Field) string {
	switch field {
	case FieldYear:
		return itoa(q.Year)
	case FieldSpecialty:
		return q.Specialty
	case FieldSubspecialty:
		return q.Subspecialty
	case FieldTopic:
		return q.Topic
	case FieldQuestionType:
		return string(q.QuestionType)
	case FieldStemStyle:
		return string(q.StemStyle)
	case FieldImageType:
		if q.ImageType == nil {
			return ""
		}
		return string(*q.ImageType)
	case FieldSetting:
		return string(q.Setting)
	case FieldPopulation:
		return string(q.Population)
	case FieldClinicalTask:
		return string(q.ClinicalTask)
	case FieldCognitiveLevel:
		return string(q.CognitiveLevel)
	case FieldReasoningType:
		return string(q.ReasoningType)
	case FieldMirTipologia:
		return string(q.MirTipologia)
	}
	return ""
}

// CountBy groups questions by a field's value; empty values land in the
// NoData bucket rather than being dropped, so the counts always sum to
// len(questions).
func CountBy(questions []models.DissectionQuestion, field Field) map[string]int {
	counts := make(map[string]int)
	for _, q := range questions {
		v := FieldValue(q, field)
		if v == "" {
			v = NoData
		}
		counts[v]++
	}
	return counts
}

// Entry is one (value, count) pair of a count map.
type Entry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// SortedEntries orders a count map by count, descending unless asc is
// true. Ties break by key ascending: Go maps have no iteration order, so
// the tiebreak must be explicit for "top N" displays to be stable.
func SortedEntries(counts map[string]int, asc bool) []Entry {
	entries := make([]Entry, 0, len(counts))
	for k, v := range counts {
		entries = append(entries, Entry{Key: k, Count: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			if asc {
				return entries[i].Count < entries[j].Count
			}
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}

// CrossTab is a sparse two-field contingency table. Rows are ordered by
// descending row total; Cols keep first-seen discovery order, which the
// heatmap consumer relies on being deterministic across reloads. Max is
// the largest cell value, for color-intensity scaling.
type CrossTab struct {
	Rows   []string                  `json:"rows"`
	Cols   []string                  `json:"cols"`
	Matrix map[string]map[string]int `json:"matrix"`
	Max    int                       `json:"max"`
}

// CrossTabulate counts questions per (row-value, col-value) pair. A
// question missing either field is excluded from the table entirely — it
// appears in no cell and contributes to no total.
func CrossTabulate(questions []models.DissectionQuestion, rowField, colField Field) CrossTab {
	var rows, cols []string
	rowSeen := make(map[string]bool)
	colSeen := make(map[string]bool)
	matrix := make(map[string]map[string]int)
	max := 0

	for _, q := range questions {
		r := FieldValue(q, rowField)
		c := FieldValue(q, colField)
		if r == "" || c == "" {
			continue
		}
		if !rowSeen[r] {
			rowSeen[r] = true
			rows = append(rows, r)
			matrix[r] = make(map[string]int)
		}
		if !colSeen[c] {
			colSeen[c] = true
			cols = append(cols, c)
		}
		matrix[r][c]++
		if matrix[r][c] > max {
			max = matrix[r][c]
		}
	}

	totals := make(map[string]int, len(rows))
	for r, cells := range matrix {
		for _, n := range cells {
			totals[r] += n
		}
	}
	// Descending by row total; first-seen order breaks ties.
	sort.SliceStable(rows, func(i, j int) bool {
		return totals[rows[i]] > totals[rows[j]]
	})

	return CrossTab{Rows: rows, Cols: cols, Matrix: matrix, Max: max}
}

// TopSnomed ranks SNOMED terminology entries of one semantic role by how
// many questions cite them, using the display text (falling back to the
// code) as the ranking key. n <= 0 means unlimited.
func TopSnomed(questions []models.DissectionQuestion, role string, n int) []Entry {
	counts := make(map[string]int)
	for _, q := range questions {
		for _, entry := range q.Snomed.Role(role) {
			key := entry.Display
			if key == "" {
				key = entry.Code
			}
			counts[key]++
		}
	}
	entries := SortedEntries(counts, false)
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// CountCodes tallies flat code lists (ICD-10 or ATC) across questions.
func CountCodes(questions []models.DissectionQuestion, codes func(models.DissectionQuestion) []string) map[string]int {
	counts := make(map[string]int)
	for _, q := range questions {
		for _, code := range codes(q) {
			if code != "" {
				counts[code]++
			}
		}
	}
	return counts
}

// UniqueValues returns the sorted distinct non-empty values of a field.
func UniqueValues(questions []models.DissectionQuestion, field Field) []string {
	seen := make(map[string]bool)
	var values []string
	for _, q := range questions {
		v := FieldValue(q, field)
		if v != "" && !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	sort.Strings(values)
	return values
}

// SortQuestions orders by year then question number, ascending.
func SortQuestions(questions []models.DissectionQuestion) []models.DissectionQuestion {
	out := make([]models.DissectionQuestion, len(questions))
	copy(out, questions)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Number < out[j].Number
	})
	return out
}

// Pct formats n/total as a percentage with one decimal.
func Pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(n) / float64(total) * 100)
}
