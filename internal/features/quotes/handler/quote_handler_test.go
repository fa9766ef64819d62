package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rate-shopper/internal/features/quotes/domain"
	"rate-shopper/internal/features/quotes/service"
	"rate-shopper/internal/features/ratecards/adapters"
	ratecards "rate-shopper/internal/features/ratecards/domain"
	"rate-shopper/internal/features/ratecards/ports"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

// blockingContracts holds ListActive until the request context ends.
type blockingContracts struct {
	*adapters.MemoryStore
}

func (b blockingContracts) ListActive(ctx context.Context, _ ratecards.ContractFilter) ([]ratecards.RateContract, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// failingContracts fails every contract listing.
type failingContracts struct {
	*adapters.MemoryStore
}

func (f failingContracts) ListActive(context.Context, ratecards.ContractFilter) ([]ratecards.RateContract, error) {
	return nil, errors.New("connection refused")
}

func fixtureStore(t *testing.T) *adapters.MemoryStore {
	t.Helper()
	store, err := adapters.LoadMemoryStore("../../ratecards/adapters/testdata/rates.json")
	require.NoError(t, err)
	return store
}

func newApp(t *testing.T, contracts ports.RateContractRepository, timeout time.Duration) *fiber.App {
	t.Helper()
	store := fixtureStore(t)
	if contracts == nil {
		contracts = store
	}
	svc := service.NewQuoteService(contracts, store, store, service.Options{
		Now: func() time.Time { return testNow },
	})
	handler := NewQuoteHandler(svc, timeout)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("requestid", "test-ray-id")
		return c.Next()
	})
	app.Post("/v1/quotes", handler.GetQuotes)
	app.Post("/v1/allocations", handler.Allocate)
	return app
}

func post(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	var payload []byte
	switch b := body.(type) {
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func parcelBody() map[string]any {
	return map[string]any{
		"origin_pincode":      "110001",
		"destination_pincode": "400001",
		"weight":              2,
		"length":              30,
		"width":               20,
		"height":              15,
		"payment_mode":        "cod",
		"order_value":         2000,
	}
}

// TestQuoteHandler_GetQuotes_Success verifies a ranked quote set for a parcel shipment.
func TestQuoteHandler_GetQuotes_Success(t *testing.T) {
	app := newApp(t, nil, time.Second)

	resp := post(t, app, "/v1/quotes", parcelBody())
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decode[domain.QuoteResult](t, resp)
	assert.True(t, result.Success)
	assert.Equal(t, ratecards.SegmentParcel, result.Segment)
	require.NotNil(t, result.Recommended)
	assert.Equal(t, "car-swift", result.Recommended.CarrierID)
	assert.Equal(t, 123.9, result.Recommended.TotalCost)
}

// TestQuoteHandler_GetQuotes_NoCarriers verifies that an empty result is a 200 with success=false.
func TestQuoteHandler_GetQuotes_NoCarriers(t *testing.T) {
	app := newApp(t, nil, time.Second)

	body := parcelBody()
	body["carrier_ids"] = []string{"car-zip"}
	resp := post(t, app, "/v1/quotes", body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decode[domain.QuoteResult](t, resp)
	assert.False(t, result.Success)
	assert.Equal(t, domain.NoCarriersMessage, result.Message)
	assert.Empty(t, result.Quotes)
	assert.Nil(t, result.Recommended)
}

// TestQuoteHandler_GetQuotes_BadBody verifies malformed JSON is rejected.
func TestQuoteHandler_GetQuotes_BadBody(t *testing.T) {
	app := newApp(t, nil, time.Second)

	resp := post(t, app, "/v1/quotes", `{"weight":`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	errResp := decode[ErrorResponse](t, resp)
	assert.Contains(t, errResp.Message, "valid JSON")
	assert.Equal(t, "test-ray-id", errResp.RayID)
}

// TestQuoteHandler_GetQuotes_FieldValidation verifies struct tag failures are reported by JSON name.
func TestQuoteHandler_GetQuotes_FieldValidation(t *testing.T) {
	app := newApp(t, nil, time.Second)

	body := parcelBody()
	body["weight"] = 0
	delete(body, "origin_pincode")
	resp := post(t, app, "/v1/quotes", body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	errResp := decode[ErrorResponse](t, resp)
	assert.Equal(t, "request validation failed", errResp.Message)
	assert.Equal(t, "gt", errResp.Fields["weight"])
	assert.Equal(t, "required", errResp.Fields["origin_pincode"])
	assert.Equal(t, "test-ray-id", errResp.RayID)
}

// TestQuoteHandler_GetQuotes_OutOfRange verifies absurd weights and dimensions are rejected up front.
func TestQuoteHandler_GetQuotes_OutOfRange(t *testing.T) {
	app := newApp(t, nil, time.Second)

	body := parcelBody()
	body["length"], body["width"], body["height"] = 1e200, 1e200, 1e200
	body["weight"] = 1e200
	resp := post(t, app, "/v1/quotes", body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	errResp := decode[ErrorResponse](t, resp)
	assert.Equal(t, "request validation failed", errResp.Message)
	assert.Equal(t, "lte", errResp.Fields["length"])
	assert.Equal(t, "lte", errResp.Fields["weight"])
}

// TestQuoteHandler_GetQuotes_DomainValidation verifies rules enforced by the engine map to 400.
func TestQuoteHandler_GetQuotes_DomainValidation(t *testing.T) {
	app := newApp(t, nil, time.Second)

	body := parcelBody()
	delete(body, "height")
	resp := post(t, app, "/v1/quotes", body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	errResp := decode[ErrorResponse](t, resp)
	assert.Contains(t, errResp.Fields, "dimensions")
}

// TestQuoteHandler_GetQuotes_Timeout verifies a request that outlives its deadline maps to 504.
func TestQuoteHandler_GetQuotes_Timeout(t *testing.T) {
	app := newApp(t, blockingContracts{fixtureStore(t)}, 20*time.Millisecond)

	resp := post(t, app, "/v1/quotes", parcelBody())
	assert.Equal(t, fiber.StatusGatewayTimeout, resp.StatusCode)
	assert.Equal(t, "quote computation timed out", decode[ErrorResponse](t, resp).Message)
}

// TestQuoteHandler_GetQuotes_UpstreamFailure verifies repository failures map to 502.
func TestQuoteHandler_GetQuotes_UpstreamFailure(t *testing.T) {
	app := newApp(t, failingContracts{fixtureStore(t)}, time.Second)

	resp := post(t, app, "/v1/quotes", parcelBody())
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	errResp := decode[ErrorResponse](t, resp)
	assert.Equal(t, "rate data is temporarily unavailable", errResp.Message)
	assert.NotContains(t, errResp.Message, "connection refused")
	assert.Equal(t, "test-ray-id", errResp.RayID)
}

// TestQuoteHandler_Allocate_Success verifies the top pick and alternatives for a strategy.
func TestQuoteHandler_Allocate_Success(t *testing.T) {
	app := newApp(t, nil, time.Second)

	body := parcelBody()
	body["payment_mode"] = "PREPAID"
	body["strategy"] = "cheapest_first"
	resp := post(t, app, "/v1/allocations", body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decode[domain.AllocationResult](t, resp)
	assert.True(t, result.Success)
	assert.Equal(t, domain.StrategyCheapestFirst, result.Strategy)
	assert.Equal(t, "D", result.Zone)
	require.NotNil(t, result.Allocation)
	assert.Equal(t, "car-swift", result.Allocation.CarrierID)
	require.Len(t, result.Alternatives, 1)
	assert.Equal(t, "car-zip", result.Alternatives[0].CarrierID)
	assert.Greater(t, result.Alternatives[0].TotalCost, result.Allocation.TotalCost)
}

// TestQuoteHandler_Allocate_DefaultsToBalanced verifies an omitted strategy selects BALANCED.
func TestQuoteHandler_Allocate_DefaultsToBalanced(t *testing.T) {
	app := newApp(t, nil, time.Second)

	resp := post(t, app, "/v1/allocations", parcelBody())
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decode[domain.AllocationResult](t, resp)
	assert.Equal(t, domain.StrategyBalanced, result.Strategy)
}

// TestQuoteHandler_Allocate_UnknownStrategy verifies unknown strategies are rejected.
func TestQuoteHandler_Allocate_UnknownStrategy(t *testing.T) {
	app := newApp(t, nil, time.Second)

	body := parcelBody()
	body["strategy"] = "RANDOM"
	resp := post(t, app, "/v1/allocations", body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	errResp := decode[ErrorResponse](t, resp)
	assert.Contains(t, errResp.Fields, "strategy")
}
