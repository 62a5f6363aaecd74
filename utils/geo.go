package utils

import (
	"fmt"
	"math"
)

const earthRadiusMeters = 6371000.0

// CalculateDistance returns the great-circle distance in meters between two
// coordinates using the Haversine formula.
func CalculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// VenueIDFor derives the storage key for a venue from its coordinates, each
// rounded to six decimal places. Check-ins whose coordinates round to the
// same values collapse to the same venue.
func VenueIDFor(lat, lon float64) string {
	return fmt.Sprintf("%.6f_%.6f", lat, lon)
}
