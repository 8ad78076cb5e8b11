package dto

import "trailblazer-service/internal/domain"

// ParkResponse is the wire shape of one park. Lat and Lon are both null for
// parks without a location.
type ParkResponse struct {
	ID           int64    `json:"id"`
	ExternalCode string   `json:"external_code"`
	Name         string   `json:"name"`
	State        string   `json:"state"`
	Lat          *float64 `json:"lat"`
	Lon          *float64 `json:"lon"`
	Description  string   `json:"description"`
	URL          string   `json:"url"`
	Designation  string   `json:"designation"`
}

func NewParkResponse(p *domain.Park) ParkResponse {
	res := ParkResponse{
		ID:           p.ID,
		ExternalCode: p.ExternalCode,
		Name:         p.Name,
		State:        p.Region,
		Description:  p.Description,
		URL:          p.URL,
		Designation:  p.Designation,
	}
	if p.Location != nil {
		lat, lon := p.Location.Lat, p.Location.Lon
		res.Lat, res.Lon = &lat, &lon
	}
	return res
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
