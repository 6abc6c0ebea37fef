package review

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/mir-sim/backend/internal/content"
	"github.com/mir-sim/backend/internal/models"
)

// maxImportSize bounds uploaded snapshot documents.
const maxImportSize = 4 << 20

type Handler struct {
	store  *Store
	loader *content.Loader
}

func NewHandler(store *Store, loader *content.Loader) *Handler {
	return &Handler{store: store, loader: loader}
}

func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

// GetState returns the reviewer's full review document.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	writeJSON(w, http.StatusOK, h.store.State(r.Context(), userID))
}

// GetStats summarizes review progress over the known question corpus.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	questions, err := h.loader.ReviewQuestions(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load questions"})
		return
	}
	writeJSON(w, http.StatusOK, h.store.ComputeStats(r.Context(), userID, len(questions)))
}

// GetQuestions returns the question list for the review tool, filtered by
// query parameters including the reviewer's own statuses.
func (h *Handler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	questions, err := h.loader.ReviewQuestions(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load questions"})
		return
	}

	state := h.store.State(r.Context(), userID)
	getStatus := func(year, number int) *models.ReviewStatus {
		entry, ok := state.Reviews[models.QuestionKey(year, number)]
		if !ok {
			return nil
		}
		status := entry.Status
		return &status
	}

	filtered := FilterQuestions(questions, filtersFromQuery(r), getStatus)
	if filtered == nil {
		filtered = []models.DissectionQuestion{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"questions": filtered,
		"total":     len(filtered),
	})
}

// GetSimilar returns the precomputed nearest neighbours of one question.
func (h *Handler) GetSimilar(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if _, _, ok := models.ParseQuestionKey(key); !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid question key"})
		return
	}

	similar, err := h.loader.Similar(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load similarity data"})
		return
	}

	entries := similar[key]
	if entries == nil {
		entries = []models.SimilarEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"key": key, "similar": entries})
}

// SetReview records or updates the review of a single question.
func (h *Handler) SetReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	year, number, ok := questionVars(w, r)
	if !ok {
		return
	}

	var req models.SetReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if !models.ValidReviewStatuses[req.Status] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "status must be approved, flagged, or rejected"})
		return
	}

	h.store.SetReview(r.Context(), userID, year, number, req.Status, req.Notes)
	writeJSON(w, http.StatusOK, h.store.State(r.Context(), userID))
}

// ClearReview removes a question's review entry, returning it to unreviewed.
func (h *Handler) ClearReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	year, number, ok := questionVars(w, r)
	if !ok {
		return
	}

	h.store.ClearReview(r.Context(), userID, year, number)
	writeJSON(w, http.StatusOK, h.store.State(r.Context(), userID))
}

// Export streams the review document as a downloadable JSON snapshot.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	data, err := h.store.ExportSnapshot(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to export review state"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="mir-review-state.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Import merges an uploaded snapshot into the stored review document.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Failed to read request body"})
		return
	}

	if err := h.store.ImportSnapshot(r.Context(), userID, data); err != nil {
		if errors.Is(err, ErrVersionMismatch) {
			writeJSON(w, http.StatusUnprocessableEntity, models.ErrorResponse{Error: err.Error()})
		} else {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid snapshot document"})
		}
		return
	}
	writeJSON(w, http.StatusOK, h.store.State(r.Context(), userID))
}

// ExportXLSX streams the review document as a spreadsheet.
func (h *Handler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	totalKnown := 0
	if questions, err := h.loader.ReviewQuestions(r.Context()); err == nil {
		totalKnown = len(questions)
	}

	f, err := h.store.ExportXLSX(r.Context(), userID, totalKnown)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to build spreadsheet"})
		return
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to build spreadsheet"})
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="mir-review-state.xlsx"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func questionVars(w http.ResponseWriter, r *http.Request) (year, number int, ok bool) {
	vars := mux.Vars(r)
	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid exam year"})
		return 0, 0, false
	}
	number, err = strconv.Atoi(vars["number"])
	if err != nil || number <= 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid question number"})
		return 0, 0, false
	}
	return year, number, true
}

func filtersFromQuery(r *http.Request) Filters {
	q := r.URL.Query()
	f := Filters{
		Specialty:      q.Get("specialty"),
		Status:         q.Get("status"),
		QuestionType:   q.Get("questionType"),
		CognitiveLevel: q.Get("cognitiveLevel"),
		ClinicalTask:   q.Get("clinicalTask"),
		Population:     q.Get("population"),
		Setting:        q.Get("setting"),
		Search:         q.Get("search"),
	}
	if year, err := strconv.Atoi(q.Get("year")); err == nil {
		f.Year = year
	}
	if field, value := q.Get("tagField"), q.Get("tagValue"); field != "" && value != "" {
		f.Tag = &TagFilter{Field: field, Value: value}
	}
	return f
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
