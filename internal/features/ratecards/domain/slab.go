package domain

import "strings"

// WeightSlab is a parcel price bracket for one (contract, zone).
type WeightSlab struct {
	ID         string  `json:"id"`
	ContractID string  `json:"contract_id"`
	Zone       string  `json:"zone"`
	MinWeight  float64 `json:"min_weight"`
	MaxWeight  float64 `json:"max_weight"`
	BaseRate   float64 `json:"base_rate"`
	// AdditionalRatePerUnit is charged for every started AdditionalUnitSize beyond MaxWeight.
	AdditionalRatePerUnit float64 `json:"additional_rate_per_unit"`
	AdditionalUnitSize    float64 `json:"additional_unit_size"`
	CODAvailable          bool    `json:"cod_available"`
	PrepaidAvailable      bool    `json:"prepaid_available"`
	MinDeliveryDays       int     `json:"min_delivery_days"`
	MaxDeliveryDays       int     `json:"max_delivery_days"`
}

// Extendable reports whether the slab can price weight beyond MaxWeight.
func (s WeightSlab) Extendable() bool {
	return s.AdditionalRatePerUnit > 0 && s.AdditionalUnitSize > 0
}

// RateType says how a palletized rate slab turns into a base charge.
type RateType string

const (
	RatePerWeightUnit RateType = "PER_WEIGHT_UNIT"
	RatePerVolumeUnit RateType = "PER_VOLUME_UNIT"
	RateFlat          RateType = "FLAT"
)

// ParseRateType maps a stored rate type tag; unknown tags price per weight unit.
func ParseRateType(s string) RateType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PER_VOLUME_UNIT", "PER_CFT":
		return RatePerVolumeUnit
	case "FLAT":
		return RateFlat
	default:
		return RatePerWeightUnit
	}
}

// UnmarshalText lets JSON and database text decode through ParseRateType.
func (r *RateType) UnmarshalText(b []byte) error {
	*r = ParseRateType(string(b))
	return nil
}

// RateSlab is a palletized price bracket, optionally scoped to one zone.
type RateSlab struct {
	ID         string `json:"id"`
	ContractID string `json:"contract_id"`
	// Zone empty means the slab applies to every zone.
	Zone      string  `json:"zone,omitempty"`
	MinWeight float64 `json:"min_weight"`
	// MaxWeight nil means open ended.
	MaxWeight *float64 `json:"max_weight,omitempty"`
	RateType  RateType `json:"rate_type"`
	Rate      float64  `json:"rate"`
	MinCharge float64  `json:"min_charge"`
}

// Covers reports whether weight falls inside the slab bounds.
func (s RateSlab) Covers(weight float64) bool {
	return s.MinWeight <= weight && (s.MaxWeight == nil || *s.MaxWeight >= weight)
}

// LaneRate is a truckload price for one origin city, destination city and vehicle type.
type LaneRate struct {
	ID              string  `json:"id"`
	ContractID      string  `json:"contract_id"`
	OriginCity      string  `json:"origin_city"`
	DestinationCity string  `json:"destination_city"`
	VehicleType     string  `json:"vehicle_type"`
	RatePerTrip     float64 `json:"rate_per_trip"`
	RatePerExtraKm  float64 `json:"rate_per_extra_km"`
	// MinKm is the distance included in RatePerTrip.
	MinKm        float64 `json:"min_km"`
	DistanceKm   float64 `json:"distance_km"`
	CapacityKg   float64 `json:"capacity_kg"`
	TransitHours int     `json:"transit_hours"`
	Active       bool    `json:"active"`
}

// Serves reports whether the lane connects the two city keys with a
// case-insensitive substring match and, when vehicleType is set, uses that vehicle.
func (l LaneRate) Serves(originCity, destinationCity, vehicleType string) bool {
	if !l.Active || originCity == "" || destinationCity == "" {
		return false
	}
	if !containsFold(l.OriginCity, originCity) || !containsFold(l.DestinationCity, destinationCity) {
		return false
	}
	return vehicleType == "" || strings.EqualFold(l.VehicleType, vehicleType)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
