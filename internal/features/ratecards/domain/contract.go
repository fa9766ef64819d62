package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Segment is the logistics segment a rate contract prices.
type Segment string

const (
	// SegmentParcel is small parcel (D2C) shipping priced by weight slab and zone.
	SegmentParcel Segment = "PARCEL"
	// SegmentPalletized is less-than-truckload (B2B) freight priced by rate slab.
	SegmentPalletized Segment = "PALLETIZED"
	// SegmentFullTruckload is dedicated vehicle freight priced per lane.
	SegmentFullTruckload Segment = "FULL_TRUCKLOAD"
)

// ErrUnknownSegment is returned by ParseSegment for unrecognised values.
var ErrUnknownSegment = errors.New("unknown segment")

// ParseSegment accepts the canonical names and the D2C/B2B/FTL aliases.
func ParseSegment(s string) (Segment, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PARCEL", "D2C":
		return SegmentParcel, nil
	case "PALLETIZED", "B2B", "LTL":
		return SegmentPalletized, nil
	case "FULL_TRUCKLOAD", "FTL":
		return SegmentFullTruckload, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSegment, s)
}

// UnmarshalText decodes through ParseSegment so aliases are normalised and
// unknown values fail. An empty value leaves the segment unset.
func (s *Segment) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*s = ""
		return nil
	}
	seg, err := ParseSegment(string(b))
	if err != nil {
		return err
	}
	*s = seg
	return nil
}

// ContractStatus is the lifecycle state of a rate contract as seen by the engine.
type ContractStatus string

const (
	ContractStatusActive   ContractStatus = "ACTIVE"
	ContractStatusInactive ContractStatus = "INACTIVE"
)

// RateContract is the read model of one carrier rate contract.
type RateContract struct {
	ID          string         `json:"id"`
	CarrierID   string         `json:"carrier_id"`
	CarrierName string         `json:"carrier_name"`
	CarrierCode string         `json:"carrier_code"`
	Name        string         `json:"name"`
	Segment     Segment        `json:"segment"`
	ServiceType string         `json:"service_type"`
	Status      ContractStatus `json:"status"`
	// EffectiveFrom is inclusive.
	EffectiveFrom time.Time `json:"effective_from"`
	// EffectiveTo is inclusive; nil means open ended.
	EffectiveTo *time.Time `json:"effective_to,omitempty"`
	// MinChargeableWeight floors the billed weight (palletized).
	MinChargeableWeight float64 `json:"min_chargeable_weight"`
	// MinTransitDays and MaxTransitDays are the delivery estimate used when
	// the priced bracket does not carry its own.
	MinTransitDays int `json:"min_transit_days"`
	MaxTransitDays int `json:"max_transit_days"`
}

// EffectiveOn reports whether the contract is active and in force at t.
func (c RateContract) EffectiveOn(t time.Time) bool {
	if c.Status != ContractStatusActive {
		return false
	}
	if t.Before(c.EffectiveFrom) {
		return false
	}
	return c.EffectiveTo == nil || !t.After(*c.EffectiveTo)
}

// ContractFilter selects the rate contracts eligible for a request.
type ContractFilter struct {
	Segment Segment
	// CarrierIDs restricts the result to these carriers when non-empty.
	CarrierIDs []string
	// ServiceType restricts the result to one service type when non-empty (case-insensitive).
	ServiceType string
	// AsOf is the date contracts must be effective on.
	AsOf   time.Time
	Limit  int
	Offset int
}

// Matches reports whether c satisfies every criterion of the filter except paging.
func (f ContractFilter) Matches(c RateContract) bool {
	if c.Segment != f.Segment || !c.EffectiveOn(f.AsOf) {
		return false
	}
	if f.ServiceType != "" && !strings.EqualFold(f.ServiceType, c.ServiceType) {
		return false
	}
	if len(f.CarrierIDs) == 0 {
		return true
	}
	for _, id := range f.CarrierIDs {
		if id == c.CarrierID {
			return true
		}
	}
	return false
}
