// Package nominatim resolves place names through the Nominatim search API.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fabmap/internal/domain"
	"fabmap/internal/logger"
	"fabmap/internal/metrics"
	"fabmap/internal/ports"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "fabmap/1.0"
	DefaultLimit     = 8
)

// Client implements ports.Geocoder
type Client struct {
	baseURL   string
	userAgent string
	limit     int
	http      *http.Client
}

var _ ports.Geocoder = (*Client)(nil)

// NewClient creates a Client. Empty values fall back to the public instance
// and the default user agent; a nil httpClient uses a 5s timeout.
func NewClient(baseURL, userAgent string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		limit:     DefaultLimit,
		http:      httpClient,
	}
}

// result is one entry of the search response. Coordinates arrive as strings.
type result struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Search returns places matching query in the service's ranking order.
// An empty query makes no request.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("format", "json")
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(c.limit))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	t0 := time.Now()
	metrics.GeocodeRequestsTotal.Inc()
	logger.L().Debug("geocode_req", "query", query)
	resp, err := c.http.Do(req)
	if err != nil {
		logger.L().Error("geocode_http_error", "err", err)
		metrics.GeocodeFailTotal.Inc()
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.GeocodeFailTotal.Inc()
		logger.L().Error("geocode_http_status", "status", resp.StatusCode)
		return nil, fmt.Errorf("geocoder returned %s", resp.Status)
	}

	var raw []result
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		logger.L().Error("geocode_decode_error", "err", err)
		metrics.GeocodeFailTotal.Inc()
		return nil, err
	}

	places := make([]domain.Place, 0, len(raw))
	for _, r := range raw {
		lat, errLat := strconv.ParseFloat(r.Lat, 64)
		lng, errLng := strconv.ParseFloat(r.Lon, 64)
		pos := domain.Coordinate{Lat: lat, Lng: lng}
		if errLat != nil || errLng != nil || pos.Validate() != nil {
			logger.L().Warn("geocode_bad_result", "label", r.DisplayName, "lat", r.Lat, "lon", r.Lon)
			continue
		}
		places = append(places, domain.Place{Label: r.DisplayName, Position: pos})
	}

	dur := time.Since(t0).Milliseconds()
	metrics.GeocodeDurationMs.Observe(float64(dur))
	logger.L().Debug("geocode_resp", "query", query, "results", len(places), "duration_ms", dur)
	return places, nil
}
