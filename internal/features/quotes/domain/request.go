package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Upper bounds on request attributes. Anything larger is a data-entry error and
// would push derived weights and amounts out of the float64 range.
const (
	MaxShipmentWeight = 100000.0 // kg
	MaxDimension      = 10000.0  // cm
	MaxMoneyValue     = 1e12
)

// ErrValidation is wrapped by every ValidationError.
var ErrValidation = errors.New("invalid request")

// ValidationError reports a malformed request before any computation runs.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// PaymentMode is how the consignee pays.
type PaymentMode string

const (
	PaymentPrepaid PaymentMode = "PREPAID"
	PaymentCOD     PaymentMode = "COD"
)

// RateRequest carries the shipment attributes a quote is computed from.
type RateRequest struct {
	OriginPincode      string
	DestinationPincode string
	// Weight is the actual weight in kg.
	Weight float64
	// Length, Width and Height are in cm and are either all set or all nil.
	Length *float64
	Width  *float64
	Height *float64

	PaymentMode PaymentMode
	OrderValue  float64
	// DeclaredValue defaults to OrderValue.
	DeclaredValue *float64
	// PackageCount defaults to 1.
	PackageCount int
	ServiceType  string
	CarrierIDs   []string
	Channel      string

	// IsFragile and IsDangerousGoods are accepted for future handling rules; no calculator reads them yet.
	IsFragile        bool
	IsDangerousGoods bool

	// OriginCity, DestinationCity and VehicleType narrow truckload lanes.
	// Cities are derived from the pincodes when empty.
	OriginCity      string
	DestinationCity string
	VehicleType     string
}

// Normalize fills defaults in place.
func (r *RateRequest) Normalize() {
	r.OriginPincode = strings.TrimSpace(r.OriginPincode)
	r.DestinationPincode = strings.TrimSpace(r.DestinationPincode)
	r.PaymentMode = PaymentMode(strings.ToUpper(strings.TrimSpace(string(r.PaymentMode))))
	if r.PaymentMode == "" {
		r.PaymentMode = PaymentPrepaid
	}
	if r.PackageCount == 0 {
		r.PackageCount = 1
	}
	if r.DeclaredValue == nil {
		declared := r.OrderValue
		r.DeclaredValue = &declared
	}
}

// Validate rejects requests no calculator can price. Call Normalize first.
func (r *RateRequest) Validate() error {
	switch {
	case r.OriginPincode == "":
		return invalid("origin_pincode", "is required")
	case r.DestinationPincode == "":
		return invalid("destination_pincode", "is required")
	case !(r.Weight > 0):
		return invalid("weight", "must be greater than zero")
	case r.Weight > MaxShipmentWeight:
		return invalid("weight", fmt.Sprintf("must not exceed %g kg", MaxShipmentWeight))
	case r.PaymentMode != PaymentPrepaid && r.PaymentMode != PaymentCOD:
		return invalid("payment_mode", fmt.Sprintf("must be PREPAID or COD, got %q", r.PaymentMode))
	case !(r.OrderValue >= 0):
		return invalid("order_value", "must not be negative")
	case r.OrderValue > MaxMoneyValue:
		return invalid("order_value", fmt.Sprintf("must not exceed %g", MaxMoneyValue))
	case r.DeclaredValue != nil && !(*r.DeclaredValue >= 0):
		return invalid("declared_value", "must not be negative")
	case r.DeclaredValue != nil && *r.DeclaredValue > MaxMoneyValue:
		return invalid("declared_value", fmt.Sprintf("must not exceed %g", MaxMoneyValue))
	case r.PackageCount < 1:
		return invalid("package_count", "must be at least 1")
	}

	set := 0
	for _, d := range []*float64{r.Length, r.Width, r.Height} {
		if d == nil {
			continue
		}
		if !(*d > 0) {
			return invalid("dimensions", "length, width and height must be greater than zero")
		}
		if *d > MaxDimension {
			return invalid("dimensions", fmt.Sprintf("length, width and height must not exceed %g cm", MaxDimension))
		}
		set++
	}
	if set != 0 && set != 3 {
		return invalid("dimensions", "length, width and height must be supplied together")
	}
	return nil
}

// Dimensions returns the parcel dimensions, or nil unless all three are set.
func (r *RateRequest) Dimensions() *Dimensions {
	return DimensionsOf(r.Length, r.Width, r.Height)
}

// Declared returns the declared value, falling back to the order value.
func (r *RateRequest) Declared() float64 {
	if r.DeclaredValue != nil {
		return *r.DeclaredValue
	}
	return r.OrderValue
}
