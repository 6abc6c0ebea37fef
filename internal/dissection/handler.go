package dissection

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/mir-sim/backend/internal/content"
	"github.com/mir-sim/backend/internal/models"
)

type Handler struct {
	loader *content.Loader
}

func NewHandler(loader *content.Loader) *Handler {
	return &Handler{loader: loader}
}

// GetDissection returns the dissected questions for a year, optionally
// narrowed by tag filters and a free-text search.
func (h *Handler) GetDissection(w http.ResponseWriter, r *http.Request) {
	questions, ok := h.loadQuestions(w, r)
	if !ok {
		return
	}

	filters := filtersFromQuery(r)
	filtered := SortQuestions(Filter(questions, filters))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"questions": filtered,
		"total":     len(filtered),
	})
}

// GetStats returns the value distribution of a single tag field.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	questions, ok := h.loadQuestions(w, r)
	if !ok {
		return
	}

	field := Field(r.URL.Query().Get("field"))
	if !ValidFields[field] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Unknown field: " + string(field)})
		return
	}

	filtered := Filter(questions, filtersFromQuery(r))
	counts := CountBy(filtered, field)
	entries := SortedEntries(counts, false)

	type statEntry struct {
		Key   string  `json:"key"`
		Label string  `json:"label"`
		Count int     `json:"count"`
		Pct   float64 `json:"pct"`
	}
	stats := make([]statEntry, 0, len(entries))
	for _, e := range entries {
		stats = append(stats, statEntry{
			Key:   e.Key,
			Label: FormatLabel(e.Key),
			Count: e.Count,
			Pct:   Pct(e.Count, len(filtered)),
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"field":   field,
		"total":   len(filtered),
		"entries": stats,
	})
}

// GetCrossTab returns a two-field contingency table.
func (h *Handler) GetCrossTab(w http.ResponseWriter, r *http.Request) {
	questions, ok := h.loadQuestions(w, r)
	if !ok {
		return
	}

	rowField := Field(r.URL.Query().Get("rows"))
	colField := Field(r.URL.Query().Get("cols"))
	if !ValidFields[rowField] || !ValidFields[colField] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "rows and cols must name valid fields"})
		return
	}

	filtered := Filter(questions, filtersFromQuery(r))
	writeJSON(w, http.StatusOK, CrossTabulate(filtered, rowField, colField))
}

// GetSnomed returns the most frequent SNOMED CT codes for a semantic role.
func (h *Handler) GetSnomed(w http.ResponseWriter, r *http.Request) {
	questions, ok := h.loadQuestions(w, r)
	if !ok {
		return
	}

	role := r.URL.Query().Get("role")
	if _, ok := SnomedRoleLabels[role]; !ok && role != "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Unknown SNOMED role: " + role})
		return
	}
	if role == "" {
		role = "clinicalFocus"
	}
	limit := intQueryParam(r, "limit", 20)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"role":    role,
		"label":   SnomedRoleLabels[role],
		"entries": TopSnomed(questions, role, limit),
	})
}

func (h *Handler) loadQuestions(w http.ResponseWriter, r *http.Request) ([]models.DissectionQuestion, bool) {
	vars := mux.Vars(r)
	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid exam year"})
		return nil, false
	}

	questions, err := h.loader.Dissection(r.Context(), year)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
		} else {
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load dissection data"})
		}
		return nil, false
	}
	return questions, true
}

// filtersFromQuery maps query parameters onto tag filters. Each valid field
// name doubles as a parameter; empty values are ignored.
func filtersFromQuery(r *http.Request) Filters {
	f := Filters{Search: r.URL.Query().Get("search")}
	for field := range ValidFields {
		if v := r.URL.Query().Get(string(field)); v != "" {
			if f.Fields == nil {
				f.Fields = make(map[Field]string)
			}
			f.Fields[field] = v
		}
	}
	return f
}

func intQueryParam(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
