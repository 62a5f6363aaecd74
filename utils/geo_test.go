package utils

import (
	"math"
	"testing"
)

func TestCalculateDistanceZero(t *testing.T) {
	if d := CalculateDistance(-23.5505, -46.6333, -23.5505, -46.6333); d != 0 {
		t.Errorf("expected zero distance for identical points, got %f", d)
	}
}

func TestCalculateDistanceKnown(t *testing.T) {
	// 0.0045 degrees of latitude is very close to 500 meters.
	d := CalculateDistance(0, 0, 0.0045, 0)
	if math.Abs(d-500) > 2 {
		t.Errorf("expected ~500m, got %f", d)
	}
}

func TestCalculateDistanceSymmetric(t *testing.T) {
	a := CalculateDistance(-23.5505, -46.6333, -22.9068, -43.1729)
	b := CalculateDistance(-22.9068, -43.1729, -23.5505, -46.6333)
	if a != b {
		t.Errorf("distance not symmetric: %f vs %f", a, b)
	}
	if a < 300000 || a > 400000 {
		t.Errorf("São Paulo to Rio should be roughly 360km, got %f", a)
	}
}

func TestVenueIDFor(t *testing.T) {
	if got := VenueIDFor(-23.5505, -46.6333); got != "-23.550500_-46.633300" {
		t.Errorf("unexpected venue id: %s", got)
	}
}

func TestVenueIDForCollapsesNearbyCoordinates(t *testing.T) {
	a := VenueIDFor(1.0000001, 2.0000004)
	b := VenueIDFor(1.0000004, 2.0000001)
	if a != b {
		t.Errorf("coordinates rounding to the same 6 decimals should share a venue: %s vs %s", a, b)
	}
}

func TestVenueIDForDistinguishesDistinctVenues(t *testing.T) {
	a := VenueIDFor(1.00001, 2.0)
	b := VenueIDFor(1.00002, 2.0)
	if a == b {
		t.Errorf("distinct coordinates should not share a venue id: %s", a)
	}
}
