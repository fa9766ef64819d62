package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_ObserveRequest(t *testing.T) {
	r := NewRecorder()

	r.ObserveRequest("PARCEL", "quoted", 20*time.Millisecond)
	r.ObserveRequest("PARCEL", "quoted", 30*time.Millisecond)
	r.ObserveRequest("PARCEL", "no_carriers", 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.requests.WithLabelValues("PARCEL", "quoted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.requests.WithLabelValues("PARCEL", "no_carriers")))
}

func TestRecorder_ObserveCandidates(t *testing.T) {
	r := NewRecorder()

	r.ObserveCandidates("FULL_TRUCKLOAD", 3, 1, 2)

	assert.Equal(t, 3.0, testutil.ToFloat64(r.candidates.WithLabelValues("FULL_TRUCKLOAD", "quoted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.candidates.WithLabelValues("FULL_TRUCKLOAD", "skipped")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.candidates.WithLabelValues("FULL_TRUCKLOAD", "unserviceable")))
}

func TestRecorder_Gather(t *testing.T) {
	r := NewRecorder()
	r.ObserveRequest("PALLETIZED", "quoted", time.Millisecond)

	families, err := r.Registry().Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "rate_shopper_quote_requests_total")
	assert.Contains(t, names, "rate_shopper_quote_duration_seconds")
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveRequest("PARCEL", "quoted", time.Millisecond)
		r.ObserveCandidates("PARCEL", 1, 0, 0)
	})
	assert.Nil(t, r.Registry())
}
