package services

import (
	"math"
	"strconv"
	"strings"
	"trailblazer-service/internal/domain"
	"trailblazer-service/internal/ports"
)

// NormalizeRecord maps one directory record to a candidate park for region.
//
// It reports false when the record has no usable park code or name; such
// records are dropped, not treated as errors. Coordinates that are missing,
// non-numeric or off the globe leave the candidate without a location.
func NormalizeRecord(rec ports.DirectoryRecord, region string) (*domain.Park, bool) {
	code := trimmed(rec.ParkCode)
	name := trimmed(rec.FullName)
	if name == "" {
		name = trimmed(rec.Name)
	}
	if code == "" || name == "" {
		return nil, false
	}

	return &domain.Park{
		ExternalCode: code,
		Name:         name,
		Region:       region,
		Location:     parseLocation(rec.Latitude, rec.Longitude),
		Description:  trimmed(rec.Description),
		URL:          trimmed(rec.URL),
		Designation:  trimmed(rec.Designation),
	}, true
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func parseLocation(lat, lon *string) *domain.Coordinates {
	la, ok := parseCoordinate(lat, 90)
	if !ok {
		return nil
	}
	lo, ok := parseCoordinate(lon, 180)
	if !ok {
		return nil
	}
	return &domain.Coordinates{Lat: la, Lon: lo}
}

func parseCoordinate(s *string, bound float64) (float64, bool) {
	v := trimmed(s)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > bound {
		return 0, false
	}
	return f, true
}
