package opendata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	successResultCode = "00"
	// data.go.kr reports logical success through a localized marker in
	// resultMsg, independent of the HTTP status.
	successResultMsg = "NORMAL SERVICE"
)

func resultOK(code, msg string) bool {
	return code == successResultCode || strings.Contains(msg, successResultMsg)
}

// CatalogItem is one museum/gallery entry as the catalog API serves it.
// Coordinates arrive as text and are parsed later.
type CatalogItem struct {
	Name          string `json:"fcltyNm"`
	Address       string `json:"rdnmadr"`
	HomepageURL   string `json:"homepageUrl"`
	Latitude      string `json:"latitude"`
	Longitude     string `json:"longitude"`
	ReferenceDate string `json:"referenceDate"`
}

// CatalogPage is a decoded page plus the dataset-wide total from the
// response body, used by the probe to size the run.
type CatalogPage struct {
	Items      []CatalogItem
	TotalCount int
}

type catalogEnvelope struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			TotalCount json.Number   `json:"totalCount"`
			Items      []CatalogItem `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

// CatalogClient talks to the public museum/art-gallery catalog API
// (paginated JSON, serviceKey credential).
type CatalogClient struct {
	httpClient *http.Client
	baseURL    string
	serviceKey string
	limiter    *rate.Limiter
}

func NewCatalogClient(baseURL, serviceKey string, rps int) *CatalogClient {
	if rps <= 0 {
		rps = 5
	}
	return &CatalogClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		serviceKey: serviceKey,
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
	}
}

// FetchPage retrieves one page of catalog entries. An empty item list is
// a valid page, not an error.
func (c *CatalogClient) FetchPage(ctx context.Context, page, rows int) (CatalogPage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return CatalogPage{}, err
	}

	q := url.Values{}
	q.Set("serviceKey", c.serviceKey)
	q.Set("pageNo", strconv.Itoa(page))
	q.Set("numOfRows", strconv.Itoa(rows))
	q.Set("type", "json")
	reqURL := fmt.Sprintf("%s?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return CatalogPage{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return CatalogPage{}, &TransportError{Page: page, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return CatalogPage{}, &StatusError{Page: page, StatusCode: resp.StatusCode}
	}

	var env catalogEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return CatalogPage{}, &DecodeError{Page: page, Err: err}
	}

	if !resultOK(env.Response.Header.ResultCode, env.Response.Header.ResultMsg) {
		return CatalogPage{}, &UpstreamError{
			Page:    page,
			Code:    env.Response.Header.ResultCode,
			Message: env.Response.Header.ResultMsg,
		}
	}

	// totalCount is served as a bare number or a quoted string depending
	// on the dataset; json.Number tolerates both.
	total, err := env.Response.Body.TotalCount.Int64()
	if err != nil && env.Response.Body.TotalCount != "" {
		return CatalogPage{}, &DecodeError{Page: page, Err: fmt.Errorf("totalCount %q: %w", env.Response.Body.TotalCount, err)}
	}

	return CatalogPage{
		Items:      env.Response.Body.Items,
		TotalCount: int(total),
	}, nil
}
