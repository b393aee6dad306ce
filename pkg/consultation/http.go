package consultation

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/mediconsult/platform/pkg/catalog"
	"github.com/mediconsult/platform/pkg/common/logger"
	"github.com/mediconsult/platform/pkg/common/models"
	"github.com/mediconsult/platform/pkg/symptom"
)

type HTTPHandler struct {
	service  *Service
	catalog  *catalog.Catalog
	maxBody  int64
	requests *requestValidator
}

func NewHTTPHandler(service *Service, cat *catalog.Catalog, maxBody int64) (*HTTPHandler, error) {
	requests, err := newRequestValidator()
	if err != nil {
		return nil, err
	}
	return &HTTPHandler{service: service, catalog: cat, maxBody: maxBody, requests: requests}, nil
}

func (h *HTTPHandler) Register(router *mux.Router) {
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/consultations", h.handleConsult).Methods(http.MethodPost)
	api.HandleFunc("/consultations", h.handleRecent).Methods(http.MethodGet)
	api.HandleFunc("/consultations/{id}", h.handleGet).Methods(http.MethodGet)
	api.HandleFunc("/symptoms/extract", h.handleExtract).Methods(http.MethodPost)
	api.HandleFunc("/medicines", h.handleMedicines).Methods(http.MethodGet)
}

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

type extractResponse struct {
	Symptoms []models.SymptomTag `json:"symptoms"`
	Matches  []symptom.Match     `json:"matches"`
}

func (h *HTTPHandler) handleConsult(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Consult(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *HTTPHandler) handleExtract(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	matches := h.service.Extract(req.Text)
	out := extractResponse{
		Symptoms: make([]models.SymptomTag, 0, len(matches)),
		Matches:  make([]symptom.Match, 0, len(matches)),
	}
	for _, m := range matches {
		out.Symptoms = append(out.Symptoms, m.Tag)
		out.Matches = append(out.Matches, m)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *HTTPHandler) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	items, err := h.service.Recent(r.Context(), limit)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"consultations": items,
		"count":         len(items),
	})
}

func (h *HTTPHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	resp, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *HTTPHandler) handleMedicines(w http.ResponseWriter, r *http.Request) {
	var medicines []models.Medicine
	if category := r.URL.Query().Get("category"); category != "" {
		medicines = h.catalog.ByCategory(category)
	} else {
		medicines = h.catalog.All()
	}
	if medicines == nil {
		medicines = []models.Medicine{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"medicines":  medicines,
		"count":      len(medicines),
		"categories": h.catalog.Categories(),
	})
}

func (h *HTTPHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (models.ConsultationRequest, bool) {
	var req models.ConsultationRequest
	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return req, false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read request body"})
		return req, false
	}

	if err := h.requests.Validate(body); err != nil {
		var schemaErr *SchemaError
		if errors.As(err, &schemaErr) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request", Details: schemaErr.Details})
			return req, false
		}
		logger.Component("consultation").WithError(err).Warn("invalid consultation payload")
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return req, false
	}

	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return req, false
	}
	return req, true
}

func (h *HTTPHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case IsValidationError(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "consultation not found"})
	case errors.Is(err, ErrPersistenceDisabled):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	default:
		logger.Component("consultation").WithError(err).Error("consultation request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
