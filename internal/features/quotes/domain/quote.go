package domain

import (
	"fmt"
	"strings"

	"rate-shopper/internal/core/money"
	ratecards "rate-shopper/internal/features/ratecards/domain"
)

// TaxRatePercent is the flat tax applied to every pre-tax subtotal.
const TaxRatePercent = 18

// CostBreakdown holds the additive components of a quote. Every amount is rounded to two places.
type CostBreakdown struct {
	BaseCharge  float64 `json:"base_charge"`
	ExtraWeight float64 `json:"extra_weight_charge"`
	Fuel        float64 `json:"fuel_surcharge"`
	COD         float64 `json:"cod_charge"`
	OutOfArea   float64 `json:"oda_charge"`
	Handling    float64 `json:"handling_charge"`
	Insurance   float64 `json:"insurance_charge"`
	ReturnRisk  float64 `json:"rto_charge"`
	Other       float64 `json:"other_charges"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
}

// Subtotal is the pre-tax sum of every component.
func (b CostBreakdown) Subtotal() float64 {
	return money.Sum(b.BaseCharge, b.ExtraWeight, b.Fuel, b.COD, b.OutOfArea,
		b.Handling, b.Insurance, b.ReturnRisk, b.Other)
}

// Settle computes tax on the subtotal and the grand total.
func (b *CostBreakdown) Settle() {
	subtotal := b.Subtotal()
	b.Tax = money.Percent(subtotal, TaxRatePercent)
	b.Total = money.Sum(subtotal, b.Tax)
}

// CarrierQuote is the priced offer of one rate contract (or one lane of it).
type CarrierQuote struct {
	CarrierID        string            `json:"carrier_id"`
	CarrierName      string            `json:"carrier_name"`
	CarrierCode      string            `json:"carrier_code"`
	RateContractID   string            `json:"rate_contract_id"`
	RateContractName string            `json:"rate_contract_name"`
	Segment          ratecards.Segment `json:"segment"`
	ServiceType      string            `json:"service_type"`
	Breakdown        CostBreakdown     `json:"cost_breakdown"`
	TotalCost        float64           `json:"total_cost"`
	MinDeliveryDays  int               `json:"min_delivery_days"`
	MaxDeliveryDays  int               `json:"max_delivery_days"`
	Zone             string            `json:"zone,omitempty"`
	ChargeableWeight float64           `json:"chargeable_weight"`
	// PerformanceScore is nil when the carrier has no scorecard.
	PerformanceScore *float64 `json:"performance_score"`
	// AllocationScore is the balanced score in [0,100].
	AllocationScore float64  `json:"allocation_score"`
	CODAvailable    bool     `json:"cod_available"`
	Serviceable     bool     `json:"serviceable"`
	Remarks         []string `json:"remarks,omitempty"`

	LaneID      string `json:"lane_id,omitempty"`
	VehicleType string `json:"vehicle_type,omitempty"`
}

// NewCarrierQuote starts a serviceable quote carrying the contract identity.
func NewCarrierQuote(c ratecards.RateContract) CarrierQuote {
	return CarrierQuote{
		CarrierID:        c.CarrierID,
		CarrierName:      c.CarrierName,
		CarrierCode:      c.CarrierCode,
		RateContractID:   c.ID,
		RateContractName: c.Name,
		Segment:          c.Segment,
		ServiceType:      c.ServiceType,
		MinDeliveryDays:  c.MinTransitDays,
		MaxDeliveryDays:  c.MaxTransitDays,
		Serviceable:      true,
	}
}

// Remark appends a free text note.
func (q *CarrierQuote) Remark(format string, args ...any) {
	q.Remarks = append(q.Remarks, fmt.Sprintf(format, args...))
}

// Reject marks the quote as not serviceable with a reason.
func (q *CarrierQuote) Reject(format string, args ...any) {
	q.Serviceable = false
	q.Remark(format, args...)
}

// Settle finalizes tax and total from the breakdown.
func (q *CarrierQuote) Settle() {
	q.Breakdown.Settle()
	q.TotalCost = q.Breakdown.Total
	if money.Saturated(q.TotalCost) {
		q.Reject("amount exceeds the representable range")
	}
}

// ZoneResolution is the outcome of resolving an origin/destination pair.
type ZoneResolution struct {
	Zone       string  `json:"zone"`
	DistanceKm float64 `json:"distance_km"`
	IsRemote   bool    `json:"is_remote"`
	// Found is false when the zone was guessed from pincode prefixes.
	Found bool `json:"found"`
}

// Strategy is the ranking policy applied to a quote set.
type Strategy string

const (
	StrategyCheapestFirst Strategy = "CHEAPEST_FIRST"
	StrategyFastestFirst  Strategy = "FASTEST_FIRST"
	StrategyBestSLA       Strategy = "BEST_SLA"
	StrategyBalanced      Strategy = "BALANCED"
)

// ParseStrategy accepts the strategy names case-insensitively; empty selects BALANCED.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToUpper(strings.TrimSpace(s))); st {
	case "":
		return StrategyBalanced, nil
	case StrategyCheapestFirst, StrategyFastestFirst, StrategyBestSLA, StrategyBalanced:
		return st, nil
	}
	return "", invalid("strategy", fmt.Sprintf("unknown strategy %q", s))
}

// MaxAlternatives caps the runners-up returned next to a recommendation.
const MaxAlternatives = 3

// NoCarriersMessage is returned when no serviceable quote exists.
const NoCarriersMessage = "no carriers found for this shipment"

// QuoteResult is the ranked quote set for one request.
type QuoteResult struct {
	Success          bool              `json:"success"`
	Message          string            `json:"message,omitempty"`
	Segment          ratecards.Segment `json:"segment"`
	Zone             *ZoneResolution   `json:"zone,omitempty"`
	ChargeableWeight float64           `json:"chargeable_weight"`
	WeightType       WeightType        `json:"weight_type"`
	Quotes           []CarrierQuote    `json:"quotes"`
	Recommended      *CarrierQuote     `json:"recommended"`
	Alternatives     []CarrierQuote    `json:"alternatives"`
}

// Allocation is the chosen carrier of an allocation request.
type Allocation struct {
	CarrierID        string        `json:"carrier_id"`
	CarrierName      string        `json:"carrier_name"`
	CarrierCode      string        `json:"carrier_code"`
	RateContractID   string        `json:"rate_contract_id"`
	RateContractName string        `json:"rate_contract_name"`
	Breakdown        CostBreakdown `json:"cost_breakdown"`
	TotalCost        float64       `json:"total_cost"`
	MinDeliveryDays  int           `json:"min_delivery_days"`
	MaxDeliveryDays  int           `json:"max_delivery_days"`
	Score            float64       `json:"score"`
}

// AlternativeAllocation is the abbreviated form of a runner-up.
type AlternativeAllocation struct {
	CarrierID       string  `json:"carrier_id"`
	CarrierName     string  `json:"carrier_name"`
	RateContractID  string  `json:"rate_contract_id"`
	TotalCost       float64 `json:"total_cost"`
	MinDeliveryDays int     `json:"min_delivery_days"`
	Score           float64 `json:"score"`
}

// AllocationResult is the outcome of an allocation request.
type AllocationResult struct {
	Success      bool                    `json:"success"`
	Message      string                  `json:"message,omitempty"`
	Strategy     Strategy                `json:"strategy"`
	Segment      ratecards.Segment       `json:"segment"`
	Zone         string                  `json:"zone,omitempty"`
	Allocation   *Allocation             `json:"allocation"`
	Alternatives []AlternativeAllocation `json:"alternatives"`
}

// AllocationFrom builds the full allocation view of q.
func AllocationFrom(q CarrierQuote) *Allocation {
	return &Allocation{
		CarrierID:        q.CarrierID,
		CarrierName:      q.CarrierName,
		CarrierCode:      q.CarrierCode,
		RateContractID:   q.RateContractID,
		RateContractName: q.RateContractName,
		Breakdown:        q.Breakdown,
		TotalCost:        q.TotalCost,
		MinDeliveryDays:  q.MinDeliveryDays,
		MaxDeliveryDays:  q.MaxDeliveryDays,
		Score:            q.AllocationScore,
	}
}

// AlternativeFrom builds the abbreviated view of q.
func AlternativeFrom(q CarrierQuote) AlternativeAllocation {
	return AlternativeAllocation{
		CarrierID:       q.CarrierID,
		CarrierName:     q.CarrierName,
		RateContractID:  q.RateContractID,
		TotalCost:       q.TotalCost,
		MinDeliveryDays: q.MinDeliveryDays,
		Score:           q.AllocationScore,
	}
}
