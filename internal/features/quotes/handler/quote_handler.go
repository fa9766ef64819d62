package handler

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"rate-shopper/internal/core/logger"
	"rate-shopper/internal/features/quotes/domain"
	"rate-shopper/internal/features/quotes/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuoteHandler handles HTTP requests for quoting and allocation.
type QuoteHandler struct {
	quoteService *service.QuoteService
	validate     *validator.Validate
	timeout      time.Duration
}

// NewQuoteHandler creates a new QuoteHandler. Every request is bounded by timeout.
func NewQuoteHandler(quoteService *service.QuoteService, timeout time.Duration) *QuoteHandler {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &QuoteHandler{
		quoteService: quoteService,
		validate:     validate,
		timeout:      timeout,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
	// Fields maps each rejected field to the rule it broke.
	Fields map[string]string `json:"fields,omitempty"`
}

// QuoteRequest is the JSON body of a quote request.
type QuoteRequest struct {
	OriginPincode      string   `json:"origin_pincode" validate:"required" example:"560001"`
	DestinationPincode string   `json:"destination_pincode" validate:"required" example:"799001"`
	Weight             float64  `json:"weight" validate:"gt=0,lte=100000" example:"1.2"`
	Length             *float64 `json:"length,omitempty" validate:"omitempty,gt=0,lte=10000"`
	Width              *float64 `json:"width,omitempty" validate:"omitempty,gt=0,lte=10000"`
	Height             *float64 `json:"height,omitempty" validate:"omitempty,gt=0,lte=10000"`
	PaymentMode        string   `json:"payment_mode,omitempty" example:"COD"`
	OrderValue         float64  `json:"order_value" validate:"gte=0,lte=1000000000000" example:"1000"`
	DeclaredValue      *float64 `json:"declared_value,omitempty" validate:"omitempty,gte=0,lte=1000000000000"`
	PackageCount       int      `json:"package_count,omitempty" validate:"gte=0"`
	ServiceType        string   `json:"service_type,omitempty" example:"SURFACE"`
	CarrierIDs         []string `json:"carrier_ids,omitempty" validate:"omitempty,dive,required"`
	Channel            string   `json:"channel,omitempty" example:"D2C"`
	IsFragile          bool     `json:"is_fragile,omitempty"`
	IsDangerousGoods   bool     `json:"is_dangerous_goods,omitempty"`
	OriginCity         string   `json:"origin_city,omitempty"`
	DestinationCity    string   `json:"destination_city,omitempty"`
	VehicleType        string   `json:"vehicle_type,omitempty" example:"32FT_MXL"`
}

// AllocationRequest is a quote request plus the ranking strategy.
type AllocationRequest struct {
	QuoteRequest
	// Strategy is CHEAPEST_FIRST, FASTEST_FIRST, BEST_SLA or BALANCED (default).
	Strategy string `json:"strategy,omitempty" example:"BALANCED"`
}

func (r QuoteRequest) toDomain() domain.RateRequest {
	return domain.RateRequest{
		OriginPincode:      r.OriginPincode,
		DestinationPincode: r.DestinationPincode,
		Weight:             r.Weight,
		Length:             r.Length,
		Width:              r.Width,
		Height:             r.Height,
		PaymentMode:        domain.PaymentMode(r.PaymentMode),
		OrderValue:         r.OrderValue,
		DeclaredValue:      r.DeclaredValue,
		PackageCount:       r.PackageCount,
		ServiceType:        r.ServiceType,
		CarrierIDs:         r.CarrierIDs,
		Channel:            r.Channel,
		IsFragile:          r.IsFragile,
		IsDangerousGoods:   r.IsDangerousGoods,
		OriginCity:         r.OriginCity,
		DestinationCity:    r.DestinationCity,
		VehicleType:        r.VehicleType,
	}
}

// GetQuotes godoc
// @Summary Quote every eligible carrier for a shipment
// @Description Classifies the shipment into a segment, prices every active rate contract and ranks the serviceable quotes with the balanced strategy
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body QuoteRequest true "Shipment"
// @Success 200 {object} domain.QuoteResult
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 504 {object} ErrorResponse
// @Router /v1/quotes [post]
func (h *QuoteHandler) GetQuotes(c *fiber.Ctx) error {
	var body QuoteRequest
	if ok, err := h.bind(c, &body); !ok {
		return err
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	result, err := h.quoteService.GetQuotes(ctx, body.toDomain())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(result)
}

// Allocate godoc
// @Summary Allocate a carrier for a shipment
// @Description Ranks the serviceable quotes with the requested strategy and returns the top pick with up to three alternatives
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body AllocationRequest true "Shipment and strategy"
// @Success 200 {object} domain.AllocationResult
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 504 {object} ErrorResponse
// @Router /v1/allocations [post]
func (h *QuoteHandler) Allocate(c *fiber.Ctx) error {
	var body AllocationRequest
	if ok, err := h.bind(c, &body); !ok {
		return err
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	result, err := h.quoteService.Allocate(ctx, body.toDomain(), domain.Strategy(body.Strategy))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(result)
}

// bind parses and validates the body. When ok is false the 400 response has been written.
func (h *QuoteHandler) bind(c *fiber.Ctx, out any) (ok bool, err error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "request body must be valid JSON",
			RayID:   rayID(c),
		})
	}

	if err := h.validate.Struct(out); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return false, err
		}
		fields := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields[fe.Field()] = fe.Tag()
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "request validation failed",
			RayID:   rayID(c),
			Fields:  fields,
		})
	}
	return true, nil
}

// fail maps a service error onto a status code. Only validation errors are
// echoed to the caller; upstream failures are logged and answered generically.
func (h *QuoteHandler) fail(c *fiber.Ctx, err error) error {
	status, message := fiber.StatusBadGateway, "rate data is temporarily unavailable"
	switch {
	case errors.Is(err, domain.ErrValidation):
		status, message = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		status, message = fiber.StatusGatewayTimeout, "quote computation timed out"
	case errors.Is(err, context.Canceled):
		status, message = fiber.StatusServiceUnavailable, "quote request was cancelled"
	}

	resp := ErrorResponse{Message: message, RayID: rayID(c)}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Fields = map[string]string{verr.Field: verr.Reason}
	}
	if status != fiber.StatusBadRequest {
		logger.Named("quotes").Warn("Quote request failed",
			zap.String("ray_id", resp.RayID),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	return c.Status(status).JSON(resp)
}

func rayID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}
