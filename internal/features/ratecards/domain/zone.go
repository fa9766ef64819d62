package domain

import "time"

// Zone codes from nearest (A) to farthest (D).
const (
	ZoneA = "A"
	ZoneB = "B"
	ZoneC = "C"
	ZoneD = "D"
)

// ZoneMapping maps an origin/destination pair to a zone.
type ZoneMapping struct {
	OriginPincode      string `json:"origin_pincode"`
	DestinationPincode string `json:"destination_pincode"`
	// OriginRegion and DestinationRegion are broader keys used by the fallback lookup.
	OriginRegion      string  `json:"origin_region,omitempty"`
	DestinationRegion string  `json:"destination_region,omitempty"`
	Zone              string  `json:"zone"`
	DistanceKm        float64 `json:"distance_km"`
	IsODA             bool    `json:"is_oda"`
}

// CarrierPerformance is one scorecard period for a carrier.
type CarrierPerformance struct {
	CarrierID string `json:"carrier_id"`
	// Zone empty means the score covers every zone.
	Zone         string    `json:"zone,omitempty"`
	PeriodStart  time.Time `json:"period_start"`
	PeriodEnd    time.Time `json:"period_end"`
	OverallScore float64   `json:"overall_score"`
}
