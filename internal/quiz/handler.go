package quiz

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/mir-sim/backend/internal/content"
	"github.com/mir-sim/backend/internal/models"
)

type Handler struct {
	service *Service
	loader  *content.Loader
}

func NewHandler(service *Service, loader *content.Loader) *Handler {
	return &Handler{service: service, loader: loader}
}

// getUserID extracts the authenticated user ID from the request context.
func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

func (h *Handler) GetManifest(w http.ResponseWriter, r *http.Request) {
	manifest, err := h.loader.Manifest(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load exam manifest"})
		return
	}
	writeJSON(w, http.StatusOK, manifest)
}

func (h *Handler) GetExam(w http.ResponseWriter, r *http.Request) {
	exam, ok := h.loadExam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, exam)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	exam, ok := h.loadExam(w, r)
	if !ok {
		return
	}

	state, restored := h.service.Session(r.Context(), userID, exam)
	writeJSON(w, http.StatusOK, models.SessionResponse{
		State:         state,
		AnsweredCount: state.AnsweredCount(),
		Restored:      restored,
	})
}

func (h *Handler) SelectAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	exam, ok := h.loadExam(w, r)
	if !ok {
		return
	}

	var req models.SelectAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.QuestionNumber <= 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "questionNumber is required"})
		return
	}
	if req.SelectedOrder <= 0 || req.SelectedOrder > exam.NumOptions {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "selectedOrder must be between 1 and " + strconv.Itoa(exam.NumOptions)})
		return
	}

	state := h.service.Apply(r.Context(), userID, exam, SelectAnswer{
		QuestionNumber: req.QuestionNumber,
		SelectedOrder:  req.SelectedOrder,
	})
	writeJSON(w, http.StatusOK, models.SessionResponse{State: state, AnsweredCount: state.AnsweredCount()})
}

func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	exam, ok := h.loadExam(w, r)
	if !ok {
		return
	}

	var req models.NavigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	state := h.service.Apply(r.Context(), userID, exam, Navigate{QuestionNumber: req.QuestionNumber})
	writeJSON(w, http.StatusOK, models.SessionResponse{State: state, AnsweredCount: state.AnsweredCount()})
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	exam, ok := h.loadExam(w, r)
	if !ok {
		return
	}

	result, err := h.service.Submit(r.Context(), userID, exam)
	if err != nil {
		if errors.Is(err, ErrNoAttempt) {
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "No attempt in progress for this exam"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to submit attempt"})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	exam, ok := h.loadExam(w, r)
	if !ok {
		return
	}

	state := h.service.Reset(r.Context(), userID, exam)
	writeJSON(w, http.StatusOK, models.SessionResponse{State: state})
}

func (h *Handler) GetResults(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	results := h.service.Results(r.Context(), userID)
	if results == nil {
		results = []models.QuizResult{}
	}
	writeJSON(w, http.StatusOK, models.ResultListResponse{Results: results, Total: len(results)})
}

// loadExam parses the {year} path variable and loads the exam, writing the
// error response itself when either step fails.
func (h *Handler) loadExam(w http.ResponseWriter, r *http.Request) (*models.Exam, bool) {
	vars := mux.Vars(r)
	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid exam year"})
		return nil, false
	}

	exam, err := h.loader.Exam(r.Context(), year)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
		} else {
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load exam"})
		}
		return nil, false
	}
	return exam, true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
