package domain

import (
	"math"
	"testing"
)

func TestDistanceKm(t *testing.T) {
	timesSquare := Coordinates{Lat: 40.758, Lon: -73.9855}

	tests := []struct {
		name string
		a, b Coordinates
		want float64
	}{
		{"same point", timesSquare, timesSquare, 0},
		{"one degree of longitude at the equator", Coordinates{0, 0}, Coordinates{0, 1}, 111.1949},
		{"times square to african burial ground", timesSquare, Coordinates{40.71452681, -74.00447358}, 5.0915},
		{"times square to appalachian", timesSquare, Coordinates{40.41029575, -76.4337548}, 210.3246},
		{"big ben to statue of liberty", Coordinates{51.5007, -0.1246}, Coordinates{40.6892, -74.0445}, 5574.8405},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-3 {
				t.Fatalf("DistanceKm = %.4f, want %.4f", got, tt.want)
			}
		})
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	points := []Coordinates{
		{40.758, -73.9855},
		{38.971601, -76.483355},
		{-33.8688, 151.2093},
		{89.9, 0},
		{0, 180},
		{0, -180},
	}

	for _, a := range points {
		for _, b := range points {
			ab := DistanceKm(a, b)
			ba := DistanceKm(b, a)
			if math.Abs(ab-ba) > 1e-9 {
				t.Errorf("DistanceKm(%v, %v) = %v but reverse = %v", a, b, ab, ba)
			}
			if ab < 0 {
				t.Errorf("DistanceKm(%v, %v) = %v, want non-negative", a, b, ab)
			}
		}
	}
}

func TestDistanceKmAntipodal(t *testing.T) {
	got := DistanceKm(Coordinates{0, 0}, Coordinates{0, 180})
	want := math.Pi * EarthRadiusKm
	if math.IsNaN(got) || math.Abs(got-want) > 1e-6 {
		t.Fatalf("antipodal distance = %v, want %v", got, want)
	}
}
