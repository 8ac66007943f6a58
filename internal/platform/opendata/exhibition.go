package opendata

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// ExhibitionItem is one exhibition as the period API serves it. Dates are
// fixed-width YYYYMMDD strings; Place is the venue a museum row is keyed on.
type ExhibitionItem struct {
	Seq       string `xml:"seq"`
	Title     string `xml:"title"`
	Place     string `xml:"place"`
	StartDate string `xml:"startDate"`
	EndDate   string `xml:"endDate"`
	Area      string `xml:"area"`
	GPSX      string `xml:"gpsX"`
	GPSY      string `xml:"gpsY"`
}

type ExhibitionPage struct {
	Items      []ExhibitionItem
	TotalCount int
}

type exhibitionEnvelope struct {
	XMLName xml.Name `xml:"response"`
	Header  struct {
		ResultCode string `xml:"resultCode"`
		ResultMsg  string `xml:"resultMsg"`
	} `xml:"header"`
	Body struct {
		TotalCount int `xml:"totalCount"`
		Items      struct {
			Item []ExhibitionItem `xml:"item"`
		} `xml:"items"`
	} `xml:"body"`
}

// ExhibitionClient talks to the exhibition period API (paginated XML).
type ExhibitionClient struct {
	httpClient *http.Client
	baseURL    string
	serviceKey string
	limiter    *rate.Limiter
}

func NewExhibitionClient(baseURL, serviceKey string, rps int) *ExhibitionClient {
	if rps <= 0 {
		rps = 5
	}
	return &ExhibitionClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		serviceKey: serviceKey,
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
	}
}

func (c *ExhibitionClient) FetchPage(ctx context.Context, page, rows int) (ExhibitionPage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return ExhibitionPage{}, err
	}

	q := url.Values{}
	q.Set("serviceKey", c.serviceKey)
	q.Set("cPage", strconv.Itoa(page))
	q.Set("rows", strconv.Itoa(rows))
	reqURL := fmt.Sprintf("%s?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return ExhibitionPage{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ExhibitionPage{}, &TransportError{Page: page, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ExhibitionPage{}, &StatusError{Page: page, StatusCode: resp.StatusCode}
	}

	var env exhibitionEnvelope
	if err := xml.NewDecoder(resp.Body).Decode(&env); err != nil {
		return ExhibitionPage{}, &DecodeError{Page: page, Err: err}
	}

	if !resultOK(env.Header.ResultCode, env.Header.ResultMsg) {
		return ExhibitionPage{}, &UpstreamError{
			Page:    page,
			Code:    env.Header.ResultCode,
			Message: env.Header.ResultMsg,
		}
	}

	return ExhibitionPage{
		Items:      env.Body.Items.Item,
		TotalCount: env.Body.TotalCount,
	}, nil
}
