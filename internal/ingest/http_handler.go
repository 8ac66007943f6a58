package ingest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"
)

// HTTPHandler exposes the two ingestion pipelines as internal job
// endpoints. Each handler is the pipeline's outermost boundary: any
// error or panic escaping a run becomes the failure payload, never an
// unhandled fault.
type HTTPHandler struct {
	catalog     *CatalogService
	exhibitions *ExhibitionService
	secret      string
}

func NewHTTPHandler(catalog *CatalogService, exhibitions *ExhibitionService, secret string) *HTTPHandler {
	return &HTTPHandler{catalog: catalog, exhibitions: exhibitions, secret: secret}
}

type catalogSyncResponse struct {
	Success bool `json:"success"`
	Total   int  `json:"total"`
	Unique  int  `json:"unique"`
	Updated int  `json:"updated"`
}

type exhibitionSyncResponse struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Stats     ExhibitionStats `json:"stats"`
	Timestamp string          `json:"timestamp"`
}

type syncFailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Stack   string `json:"stack,omitempty"`
}

// SyncMuseums handles POST /internal/jobs/sync-museums.
func (h *HTTPHandler) SyncMuseums(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}
	defer recoverToFailure(w)

	res, err := h.catalog.Run(r.Context())
	if err != nil {
		writeFailure(w, err, "")
		return
	}

	writeJSON(w, http.StatusOK, catalogSyncResponse{
		Success: true,
		Total:   res.Total,
		Unique:  res.Unique,
		Updated: res.Updated,
	})
}

// SyncExhibitions handles POST /internal/jobs/sync-exhibitions.
func (h *HTTPHandler) SyncExhibitions(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}
	defer recoverToFailure(w)

	res, err := h.exhibitions.Run(r.Context())
	if err != nil {
		writeFailure(w, err, "")
		return
	}

	writeJSON(w, http.StatusOK, exhibitionSyncResponse{
		Success:   true,
		Message:   res.Message,
		Stats:     res.Stats,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HTTPHandler) authorized(w http.ResponseWriter, r *http.Request) bool {
	if h.secret != "" && r.Header.Get("X-Internal-Secret") != h.secret {
		writeJSON(w, http.StatusUnauthorized, syncFailureResponse{
			Success: false,
			Error:   "invalid internal secret",
		})
		return false
	}
	return true
}

func recoverToFailure(w http.ResponseWriter) {
	if rec := recover(); rec != nil {
		writeFailure(w, fmt.Errorf("pipeline panic: %v", rec), string(debug.Stack()))
	}
}

func writeFailure(w http.ResponseWriter, err error, stack string) {
	writeJSON(w, http.StatusInternalServerError, syncFailureResponse{
		Success: false,
		Error:   err.Error(),
		Stack:   stack,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
