package consultation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/mediconsult/platform/pkg/catalog"
	"github.com/mediconsult/platform/pkg/common/models"
	"github.com/mediconsult/platform/pkg/diagnosis"
)

func newTestRouter(t *testing.T, maxBody int64, opts ...Option) *mux.Router {
	t.Helper()
	handler, err := NewHTTPHandler(newTestService(t, diagnosis.DefaultMinConfidence, opts...), catalog.Default(), maxBody)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	router := mux.NewRouter()
	handler.Register(router)
	return router
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHTTPConsult(t *testing.T) {
	router := newTestRouter(t, 1<<20)

	rec := do(router, http.MethodPost, "/api/v1/consultations",
		`{"text":"mujhe bukhar aur sir dard hai","patient_details":{"age":"34","gender":"male","language":"hi"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp models.ConsultationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != models.StatusDiagnosed || resp.Prediction.Disease != "Viral Fever" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestHTTPConsultEmptyTextAsksForMore(t *testing.T) {
	router := newTestRouter(t, 1<<20)

	rec := do(router, http.MethodPost, "/api/v1/consultations", `{"text":""}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp models.ConsultationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != models.StatusNeedMoreInfo || resp.Prediction != nil || resp.Prescription != nil {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestHTTPConsultRejectsBadInput(t *testing.T) {
	router := newTestRouter(t, 1<<20)

	cases := []struct {
		name    string
		body    string
		details bool
	}{
		{"malformed json", `{"text":`, false},
		{"wrong type", `{"text": 42}`, true},
		{"missing text", `{"patient_details":{}}`, true},
		{"age as number", `{"text":"fever","patient_details":{"age":34}}`, true},
		{"invalid age", `{"text":"fever","patient_details":{"age":"old"}}`, false},
	}
	for _, tc := range cases {
		rec := do(router, http.MethodPost, "/api/v1/consultations", tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tc.name, rec.Code)
			continue
		}
		var body errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Errorf("%s: decode error body: %v", tc.name, err)
			continue
		}
		if tc.details && len(body.Details) == 0 {
			t.Errorf("%s: expected schema details", tc.name)
		}
	}
}

func TestHTTPConsultBodyTooLarge(t *testing.T) {
	router := newTestRouter(t, 16)

	rec := do(router, http.MethodPost, "/api/v1/consultations", `{"text":"fever and headache since two days"}`)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestHTTPExtract(t *testing.T) {
	router := newTestRouter(t, 1<<20)

	rec := do(router, http.MethodPost, "/api/v1/symptoms/extract", `{"text":"my stomach hurts"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body extractResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Symptoms) != 1 || body.Symptoms[0] != "stomach_pain" || body.Matches[0].Evidence == "" {
		t.Fatalf("unexpected extraction %+v", body)
	}
}

func TestHTTPHistory(t *testing.T) {
	disabled := newTestRouter(t, 1<<20)
	if rec := do(disabled, http.MethodGet, "/api/v1/consultations", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without store, got %d", rec.Code)
	}

	router := newTestRouter(t, 1<<20, WithStore(newMemoryStore()))
	rec := do(router, http.MethodPost, "/api/v1/consultations", `{"text":"fever and headache"}`)
	var created models.ConsultationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if rec := do(router, http.MethodGet, "/api/v1/consultations/"+created.ID, ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for stored consultation, got %d", rec.Code)
	}
	if rec := do(router, http.MethodGet, "/api/v1/consultations/missing", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec := do(router, http.MethodGet, "/api/v1/consultations?limit=x", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", rec.Code)
	}

	rec = do(router, http.MethodGet, "/api/v1/consultations?limit=5", "")
	var list struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil || list.Count != 1 {
		t.Fatalf("expected one consultation, got %d (%v)", list.Count, err)
	}
}

func TestHTTPMedicines(t *testing.T) {
	router := newTestRouter(t, 1<<20)

	var body struct {
		Medicines []models.Medicine `json:"medicines"`
		Count     int               `json:"count"`
	}

	rec := do(router, http.MethodGet, "/api/v1/medicines?category=urinary", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count == 0 {
		t.Fatal("expected urinary medicines")
	}
	for _, m := range body.Medicines {
		if m.Category != "urinary" {
			t.Fatalf("unexpected category %s", m.Category)
		}
	}

	rec = do(router, http.MethodGet, "/api/v1/medicines?category=unknown", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body.Count != 0 || body.Medicines == nil {
		t.Fatalf("expected empty list, got %+v (%v)", body, err)
	}
}
