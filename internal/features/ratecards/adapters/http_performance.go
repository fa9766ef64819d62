package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rate-shopper/internal/features/ratecards/domain"
)

// HTTPPerformanceRepository reads carrier scorecards from an external scorecard service.
type HTTPPerformanceRepository struct {
	baseURL string
	client  *http.Client
}

// NewHTTPPerformanceRepository creates a repository calling baseURL with client.
func NewHTTPPerformanceRepository(baseURL string, client *http.Client) *HTTPPerformanceRepository {
	return &HTTPPerformanceRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// scorecardResponse is the JSON returned by GET /v1/carriers/{id}/performance.
type scorecardResponse struct {
	CarrierID    string    `json:"carrierId"`
	Zone         string    `json:"zone"`
	PeriodStart  time.Time `json:"periodStart"`
	PeriodEnd    time.Time `json:"periodEnd"`
	OverallScore float64   `json:"overallScore"`
}

// LatestScore implements ports.CarrierPerformanceRepository. A 404 means no scorecard.
func (r *HTTPPerformanceRepository) LatestScore(ctx context.Context, carrierID, zone string) (*domain.CarrierPerformance, error) {
	endpoint := fmt.Sprintf("%s/v1/carriers/%s/performance?zone=%s",
		r.baseURL, url.PathEscape(carrierID), url.QueryEscape(zone))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build scorecard request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scorecard request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("scorecard service returned status %d", resp.StatusCode)
	}

	var body scorecardResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to parse scorecard response: %w", err)
	}

	return &domain.CarrierPerformance{
		CarrierID:    body.CarrierID,
		Zone:         body.Zone,
		PeriodStart:  body.PeriodStart,
		PeriodEnd:    body.PeriodEnd,
		OverallScore: body.OverallScore,
	}, nil
}
