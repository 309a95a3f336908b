package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"serverless-adapter/internal/middleware"
	"serverless-adapter/internal/models"
	"serverless-adapter/internal/services"
	"serverless-adapter/pkg/lambda"
)

// NewChiApp builds the chi variant of the demo application
func NewChiApp(recordService services.RecordService) *chi.Mux {
	r := chi.NewRouter()

	r.Use(lambdaRequestID)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, healthBody())
	})
	r.HandleFunc("/inspect", Inspect)

	for _, collection := range []string{models.CollectionUsers, models.CollectionCollaborators} {
		h := NewRecordHandler(recordService, collection)
		r.Route("/"+collection, func(r chi.Router) {
			r.Get("/", h.ListHTTP)
			r.Post("/", h.CreateHTTP)
			r.Put("/", h.UpsertHTTP)
			r.Get("/{id}", h.GetHTTP)
		})
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusNotFound, middleware.ErrorResponse{
			Error:     "Not found",
			Message:   "endpoint not found",
			RequestID: chimiddleware.GetReqID(r.Context()),
			Timestamp: time.Now().Format(time.RFC3339),
		})
	})

	return r
}

// lambdaRequestID copies the provider request ID into X-Request-Id so chi's
// RequestID middleware picks it up.
func lambdaRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if event, ok := lambda.FromContext(r.Context()); ok && event.RequestID != "" && r.Header.Get(chimiddleware.RequestIDHeader) == "" {
			r.Header.Set(chimiddleware.RequestIDHeader, event.RequestID)
		}
		next.ServeHTTP(w, r)
	})
}

// CreateHTTP is the net/http form of Create
func (h *RecordHandler) CreateHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := chimiddleware.GetReqID(r.Context())

	var req services.RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, badRequest(err, requestID))
		return
	}

	record, err := h.recordService.Create(r.Context(), h.collection, &req)
	if err != nil {
		status, body := errorResponse(err, requestID)
		respondJSON(w, status, body)
		return
	}

	w.Header().Set("Location", "/"+h.collection+"/"+record.ID)
	w.WriteHeader(http.StatusCreated)
}

// UpsertHTTP is the net/http form of Upsert
func (h *RecordHandler) UpsertHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := chimiddleware.GetReqID(r.Context())

	var req services.RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, badRequest(err, requestID))
		return
	}

	record, created, err := h.recordService.Upsert(r.Context(), h.collection, &req)
	if err != nil {
		status, body := errorResponse(err, requestID)
		respondJSON(w, status, body)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondJSON(w, status, record)
}

// ListHTTP is the net/http form of List
func (h *RecordHandler) ListHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := chimiddleware.GetReqID(r.Context())
	query := r.URL.Query()

	page, err := queryInt(query.Get("page"), 1)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, badRequest(err, requestID))
		return
	}
	pageSize, err := queryInt(query.Get("page_size"), services.DefaultPageSize)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, badRequest(err, requestID))
		return
	}

	result, err := h.recordService.List(r.Context(), h.collection, page, pageSize)
	if err != nil {
		status, body := errorResponse(err, requestID)
		respondJSON(w, status, body)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetHTTP is the net/http form of Get
func (h *RecordHandler) GetHTTP(w http.ResponseWriter, r *http.Request) {
	record, err := h.recordService.Get(r.Context(), h.collection, chi.URLParam(r, "id"))
	if err != nil {
		status, body := errorResponse(err, chimiddleware.GetReqID(r.Context()))
		respondJSON(w, status, body)
		return
	}

	respondJSON(w, http.StatusOK, record)
}
