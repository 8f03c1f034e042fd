// Package campus knows where the campus is and how it is carved into blocks.
package campus

import "campustrace/matching"

// Boundary is the circular campus area item coordinates must fall inside.
type Boundary struct {
	CenterLat    float64
	CenterLng    float64
	RadiusMeters float64
}

// Contains reports whether the coordinate lies within the campus circle.
func (b Boundary) Contains(lat, lng float64) bool {
	return matching.DistanceMeters(b.CenterLat, b.CenterLng, lat, lng) <= b.RadiusMeters
}

// centralBand is the degree offset around the center treated as the
// Central Block.
const centralBand = 0.0009

// Block names the campus quadrant a coordinate falls into, relative to the
// configured center.
func (b Boundary) Block(lat, lng float64) string {
	dLat := lat - b.CenterLat
	dLng := lng - b.CenterLng

	if dLat > -centralBand && dLat < centralBand && dLng > -centralBand && dLng < centralBand {
		return "Central Block"
	}

	latBand := "South"
	if lat >= b.CenterLat {
		latBand = "North"
	}
	lngBand := "West"
	if lng >= b.CenterLng {
		lngBand = "East"
	}
	return latBand + "-" + lngBand + " Block"
}
