package service

import "strings"

// metroByPrefix maps two digit pincode prefixes to the metro name lanes are keyed by.
// Pincodes outside these prefixes have no derived city and match no lane.
var metroByPrefix = map[string]string{
	"11": "Delhi",
	"12": "Gurgaon",
	"20": "Noida",
	"30": "Jaipur",
	"38": "Ahmedabad",
	"39": "Surat",
	"40": "Mumbai",
	"41": "Pune",
	"44": "Nagpur",
	"45": "Indore",
	"50": "Hyderabad",
	"56": "Bangalore",
	"60": "Chennai",
	"68": "Kochi",
	"70": "Kolkata",
	"78": "Guwahati",
}

// cityKey returns the explicit city when given, else the metro derived from the pincode.
func cityKey(city, pincode string) string {
	if c := strings.TrimSpace(city); c != "" {
		return c
	}
	if len(pincode) < 2 {
		return ""
	}
	return metroByPrefix[pincode[:2]]
}
