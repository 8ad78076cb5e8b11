package domain

import "strings"

// Represents a park imported from the external directory.
//
// ID is assigned by storage on first insert and never changes. ExternalCode is
// the directory's identifier and the reconciliation key; storage keeps it unique.
// Location is either fully present or nil, a Park is never half-located.
type Park struct {
	ID           int64
	ExternalCode string
	Name         string
	Region       string
	Location     *Coordinates
	Description  string
	URL          string
	Designation  string
}

// Located reports whether the park carries coordinates.
func (p *Park) Located() bool { return p.Location != nil }

// SameAttributes reports whether the mutable attributes of p and other are equal.
// ID and ExternalCode are identity, not attributes, and are ignored.
func (p *Park) SameAttributes(other *Park) bool {
	return len(p.ChangedFields(other)) == 0
}

// ChangedFields lists the mutable attributes that differ between p and other.
func (p *Park) ChangedFields(other *Park) []string {
	var changed []string
	if p.Name != other.Name {
		changed = append(changed, "name")
	}
	if p.Region != other.Region {
		changed = append(changed, "region")
	}
	switch {
	case p.Location == nil && other.Location == nil:
	case p.Location == nil || other.Location == nil:
		changed = append(changed, "lat", "lon")
	default:
		if p.Location.Lat != other.Location.Lat {
			changed = append(changed, "lat")
		}
		if p.Location.Lon != other.Location.Lon {
			changed = append(changed, "lon")
		}
	}
	if p.Description != other.Description {
		changed = append(changed, "description")
	}
	if p.URL != other.URL {
		changed = append(changed, "url")
	}
	if p.Designation != other.Designation {
		changed = append(changed, "designation")
	}
	return changed
}

// NormalizeRegion uppercases and trims a region code ("ny " -> "NY").
func NormalizeRegion(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidRegion reports whether code is a two-letter region code after normalization.
func ValidRegion(code string) bool {
	code = NormalizeRegion(code)
	if len(code) != 2 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
