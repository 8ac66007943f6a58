package museum

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"arthere/internal/httpx"
)

// HTTPHandler serves the read API the mobile app consumes: museum name,
// address, homepage URL and coordinates.
type HTTPHandler struct {
	repo Repository
}

func NewHTTPHandler(repo Repository) *HTTPHandler {
	return &HTTPHandler{repo: repo}
}

type museumView struct {
	Name          string   `json:"name"`
	Address       string   `json:"address,omitempty"`
	HomepageURL   string   `json:"homepage_url,omitempty"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	ExhibitionIDs []string `json:"exhibition_ids,omitempty"`
	LastUpdated   string   `json:"last_updated"`
}

func toView(m Museum) museumView {
	return museumView{
		Name:          m.Name,
		Address:       m.Address,
		HomepageURL:   m.HomepageURL,
		Latitude:      m.Latitude,
		Longitude:     m.Longitude,
		ExhibitionIDs: m.ExhibitionIDs,
		LastUpdated:   m.LastUpdated.UTC().Format(time.RFC3339),
	}
}

// List handles GET /museums
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(query.Get("page_size"))
	if pageSize <= 0 || pageSize > 500 {
		pageSize = 100
	}

	museums, total, err := h.repo.List(r.Context(), pageSize, (page-1)*pageSize)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}

	views := make([]museumView, 0, len(museums))
	for _, m := range museums {
		views = append(views, toView(m))
	}

	httpx.JSONSuccess(w, r, views, map[string]any{
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": (total + pageSize - 1) / pageSize,
	})
}

// GetByName handles GET /museums/{name}
func (h *HTTPHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimPrefix(r.URL.Path, "/museums/")
	name, err := url.PathUnescape(raw)
	if err != nil || name == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_NAME", "museum name is required")
		return
	}

	m, err := h.repo.GetByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "museum not found")
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}

	httpx.JSONSuccess(w, r, toView(m), nil)
}
