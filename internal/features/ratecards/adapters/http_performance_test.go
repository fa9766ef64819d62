package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rate-shopper/internal/core/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPPerformanceRepository_LatestScore(t *testing.T) {
	var gotPath, gotZone string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotZone = r.URL.Query().Get("zone")

		switch r.URL.Path {
		case "/v1/carriers/car-swift/performance":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"carrierId": "car-swift",
				"zone": "D",
				"periodStart": "2026-08-01T00:00:00Z",
				"periodEnd": "2026-08-31T23:59:59Z",
				"overallScore": 81.5
			}`))
		case "/v1/carriers/car-broken/performance":
			w.WriteHeader(http.StatusInternalServerError)
		case "/v1/carriers/car-garbled/performance":
			w.Write([]byte(`{not json`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	repo := NewHTTPPerformanceRepository(ts.URL+"/", httpclient.NewClient(2*time.Second))
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		p, err := repo.LatestScore(ctx, "car-swift", "D")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "/v1/carriers/car-swift/performance", gotPath)
		assert.Equal(t, "D", gotZone)
		assert.Equal(t, 81.5, p.OverallScore)
		assert.Equal(t, "D", p.Zone)
	})

	t.Run("NotFound", func(t *testing.T) {
		p, err := repo.LatestScore(ctx, "car-unknown", "")
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("ServerError", func(t *testing.T) {
		_, err := repo.LatestScore(ctx, "car-broken", "A")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
	})

	t.Run("InvalidBody", func(t *testing.T) {
		_, err := repo.LatestScore(ctx, "car-garbled", "A")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse scorecard response")
	})
}
