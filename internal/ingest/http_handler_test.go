package ingest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"arthere/internal/museum"
	"arthere/internal/platform/opendata"
	"arthere/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, fetchPage opendata.CatalogPage, fetchErr error) *HTTPHandler {
	t.Helper()

	mFetch := new(mockCatalogFetcher)
	mFetch.On("FetchPage", mock.Anything, 1, 100).Return(fetchPage, fetchErr)

	mMuseums := new(mockMuseumRepo)
	mMuseums.On("BulkUpsert", mock.Anything, mock.Anything).Return(int64(2), nil).Maybe()

	mRuns := new(mockRunRepo)
	mRuns.On("CreateRun", mock.Anything, mock.Anything).Return("run-1", nil)
	mRuns.On("UpdateRun", mock.Anything, mock.Anything).Return(nil)

	catalogSvc := NewCatalogService(mFetch, mMuseums, mRuns, "key", 100)

	mExFetch := new(mockExhibitionFetcher)
	mExFetch.On("FetchPage", mock.Anything, 1, 100).Return(opendata.ExhibitionPage{
		TotalCount: 1,
		Items: []opendata.ExhibitionItem{{
			Seq: "1", Place: "MMCA", StartDate: "00000101", EndDate: "99991231",
		}},
	}, nil).Maybe()
	mMuseums.On("GetByName", mock.Anything, "MMCA").Return(museum.Museum{}, museum.ErrNotFound).Maybe()
	mMuseums.On("Insert", mock.Anything, mock.Anything).Return(nil).Maybe()

	exhibitionSvc := NewExhibitionService(mExFetch, mMuseums, mRuns, "key", 100)

	return NewHTTPHandler(catalogSvc, exhibitionSvc, "")
}

func TestHTTPHandler_SyncMuseums(t *testing.T) {
	t.Run("success payload carries the run counters", func(t *testing.T) {
		page := opendata.CatalogPage{
			TotalCount: 3,
			Items: []opendata.CatalogItem{
				{Name: "A", ReferenceDate: "20240101"},
				{Name: "A", ReferenceDate: "20240105"},
				{Name: "B"},
			},
		}
		h := newTestHandler(t, page, nil)

		w := httptest.NewRecorder()
		h.SyncMuseums(w, testutil.NewRequest(http.MethodPost, "/internal/jobs/sync-museums", nil))

		resp := testutil.RecordHTTPResponse(w)
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, true, resp.Body["success"])
		assert.Equal(t, float64(3), resp.Body["total"])
		assert.Equal(t, float64(2), resp.Body["unique"])
		assert.Equal(t, float64(2), resp.Body["updated"])
	})

	t.Run("pipeline failure becomes a 500 failure payload", func(t *testing.T) {
		h := newTestHandler(t, opendata.CatalogPage{}, &opendata.UpstreamError{
			Page: 1, Code: "30", Message: "SERVICE_KEY_IS_NOT_REGISTERED_ERROR",
		})

		w := httptest.NewRecorder()
		h.SyncMuseums(w, testutil.NewRequest(http.MethodPost, "/internal/jobs/sync-museums", nil))

		resp := testutil.RecordHTTPResponse(w)
		require.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.Equal(t, false, resp.Body["success"])
		assert.Contains(t, resp.Body["error"], "SERVICE_KEY_IS_NOT_REGISTERED_ERROR")
	})

	t.Run("internal secret is enforced when configured", func(t *testing.T) {
		h := newTestHandler(t, opendata.CatalogPage{}, nil)
		h.secret = "s3cret"

		w := httptest.NewRecorder()
		h.SyncMuseums(w, testutil.NewRequest(http.MethodPost, "/internal/jobs/sync-museums", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPost, "/internal/jobs/sync-museums", nil)
		r.Header.Set("X-Internal-Secret", "s3cret")
		h.SyncMuseums(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestHTTPHandler_SyncExhibitions(t *testing.T) {
	t.Run("success payload carries message, stats and timestamp", func(t *testing.T) {
		h := newTestHandler(t, opendata.CatalogPage{}, nil)

		w := httptest.NewRecorder()
		h.SyncExhibitions(w, testutil.NewRequest(http.MethodPost, "/internal/jobs/sync-exhibitions", nil))

		resp := testutil.RecordHTTPResponse(w)
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, true, resp.Body["success"])
		assert.NotEmpty(t, resp.Body["message"])
		assert.NotEmpty(t, resp.Body["timestamp"])

		stats, ok := resp.Body["stats"].(map[string]interface{})
		require.True(t, ok, "stats object missing")
		assert.Equal(t, float64(1), stats["total"])
		assert.Equal(t, float64(1), stats["inserted"])
		assert.Equal(t, float64(0), stats["updated"])
		assert.Equal(t, float64(0), stats["errors"])
	})
}
