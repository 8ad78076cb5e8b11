package domain

import (
	"math"
	"strconv"
	"strings"
)

// Immutable geographic coordinates (latitude, longitude) in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// ParseCoordinates parses a "lat,lon" string such as "40.758,-73.9855".
// Exactly two comma-separated finite real numbers are accepted; surrounding
// whitespace around each number is ignored.
func ParseCoordinates(s string) (Coordinates, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coordinates{}, &ValidationError{Field: "near", Reason: "use 'lat,lon' (e.g., '40.758,-73.9855')"}
	}

	lat, err := parseDegrees(parts[0])
	if err != nil {
		return Coordinates{}, &ValidationError{Field: "near", Reason: "invalid latitude " + strconv.Quote(parts[0])}
	}

	lon, err := parseDegrees(parts[1])
	if err != nil {
		return Coordinates{}, &ValidationError{Field: "near", Reason: "invalid longitude " + strconv.Quote(parts[1])}
	}

	return Coordinates{Lat: lat, Lon: lon}, nil
}

func parseDegrees(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}

// String renders coordinates back into the "lat,lon" form accepted by ParseCoordinates.
func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}
