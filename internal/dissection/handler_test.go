package dissection

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/mir-sim/backend/internal/content"
)

func newTestRouter() *mux.Router {
	h := NewHandler(content.NewLoader("../content/testdata", true))
	r := mux.NewRouter()
	r.HandleFunc("/dissections/{year}/snomed", h.GetSnomed).Methods("GET")
	return r
}

func TestGetSnomedDefaultsToClinicalFocus(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/dissections/2023/snomed", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp struct {
		Role    string  `json:"role"`
		Label   string  `json:"label"`
		Entries []Entry `json:"entries"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Role != "clinicalFocus" {
		t.Errorf("default role = %q, want clinicalFocus", resp.Role)
	}
	if resp.Label != "Foco clínico" {
		t.Errorf("label = %q, want Foco clínico", resp.Label)
	}
	if len(resp.Entries) != 1 || resp.Entries[0].Key != "Embolia pulmonar" {
		t.Errorf("entries = %+v, want one Embolia pulmonar entry", resp.Entries)
	}
}

func TestGetSnomedExplicitRole(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/dissections/2023/snomed?role=findings", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp struct {
		Role    string  `json:"role"`
		Entries []Entry `json:"entries"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Role != "findings" {
		t.Errorf("role = %q, want findings", resp.Role)
	}
	if len(resp.Entries) != 1 || resp.Entries[0].Key != "Disnea" {
		t.Errorf("entries = %+v, want one Disnea entry", resp.Entries)
	}
}

func TestGetSnomedRejectsUnknownRole(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/dissections/2023/snomed?role=diagnostico_principal", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}
