package domain

import (
	"rate-shopper/internal/core/money"
	ratecards "rate-shopper/internal/features/ratecards/domain"
)

// VolumetricDivisor converts cm³ to volumetric kg.
const VolumetricDivisor = 5000

// CubicCentimetresPerFoot converts cm³ to cubic feet for volume priced freight.
const CubicCentimetresPerFoot = 28316.8

// Segment thresholds in chargeable kg.
const (
	ParcelMaxWeight     = 30
	PalletizedMaxWeight = 3000
)

// WeightType says which weight was billed.
type WeightType string

const (
	WeightActual     WeightType = "ACTUAL"
	WeightVolumetric WeightType = "VOLUMETRIC"
)

// Dimensions of a shipment in cm.
type Dimensions struct {
	Length float64
	Width  float64
	Height float64
}

// DimensionsOf returns nil unless all three measurements are present.
func DimensionsOf(length, width, height *float64) *Dimensions {
	if length == nil || width == nil || height == nil {
		return nil
	}
	return &Dimensions{Length: *length, Width: *width, Height: *height}
}

// CubicFeet returns the volume in cubic feet.
func (d Dimensions) CubicFeet() float64 {
	return d.Length * d.Width * d.Height / CubicCentimetresPerFoot
}

// Volumetric returns l*w*h/divisor rounded to two places.
func Volumetric(length, width, height, divisor float64) float64 {
	if divisor <= 0 {
		divisor = VolumetricDivisor
	}
	return money.Round2(length * width * height / divisor)
}

// ChargeableWeight bills the greater of actual and volumetric weight.
// Without complete dimensions the actual weight is billed.
func ChargeableWeight(actual float64, dims *Dimensions) (float64, WeightType) {
	if dims == nil {
		return actual, WeightActual
	}
	volumetric := Volumetric(dims.Length, dims.Width, dims.Height, VolumetricDivisor)
	if actual >= volumetric {
		return actual, WeightActual
	}
	return volumetric, WeightVolumetric
}

// ClassifySegment picks the logistics segment for a chargeable weight and package count.
func ClassifySegment(chargeableWeight float64, packages int) ratecards.Segment {
	switch {
	case chargeableWeight <= ParcelMaxWeight && packages == 1:
		return ratecards.SegmentParcel
	case chargeableWeight <= PalletizedMaxWeight:
		return ratecards.SegmentPalletized
	default:
		return ratecards.SegmentFullTruckload
	}
}
