package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"trailblazer-service/internal/api/dto"
	"trailblazer-service/internal/config"
	"trailblazer-service/internal/domain"
	"trailblazer-service/internal/platform/logging"
	"trailblazer-service/internal/platform/obs"
	"trailblazer-service/internal/ports"
	"trailblazer-service/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// ParkHandler exposes read-only park listing and lookup endpoints.
type ParkHandler struct {
	Repo     ports.ParkRepository
	Search   config.SearchConfig
	validate *validator.Validate
}

func NewParkHandler(repo ports.ParkRepository, search config.SearchConfig) *ParkHandler {
	return &ParkHandler{Repo: repo, Search: search, validate: validator.New()}
}

// List serves GET /parks?near=lat,lon&radius=km&limit=n&offset=n.
// Without near it pages through every park in storage order.
func (h *ParkHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseListQuery(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	parks, err := services.NearbyParks(r.Context(), h.Repo, q)
	if err != nil {
		h.fail(w, r, err, "list parks failed")
		return
	}

	res := make([]dto.ParkResponse, 0, len(parks))
	for _, p := range parks {
		res = append(res, dto.NewParkResponse(p))
	}
	writeJSON(w, r, http.StatusOK, res)
}

// Get serves GET /parks/{id}.
func (h *ParkHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "park id must be an integer")
		return
	}

	p, err := services.GetPark(r.Context(), h.Repo, id)
	if err != nil {
		h.fail(w, r, err, "get park failed")
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewParkResponse(p))
}

func (h *ParkHandler) parseListQuery(r *http.Request) (services.NearbyQuery, error) {
	values := r.URL.Query()
	q := services.NearbyQuery{
		RadiusKm: h.Search.DefaultRadiusKm,
		Limit:    h.Search.DefaultLimit,
	}

	if s := values.Get("radius"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return q, &domain.ValidationError{Field: "radius", Reason: "must be a number"}
		}
		q.RadiusKm = v
	}
	if s := values.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return q, &domain.ValidationError{Field: "limit", Reason: "must be an integer"}
		}
		q.Limit = v
	}
	if s := values.Get("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return q, &domain.ValidationError{Field: "offset", Reason: "must be an integer"}
		}
		q.Offset = v
	}

	if err := h.validate.Var(q.RadiusKm, fmt.Sprintf("gte=%g,lte=%g", h.Search.MinRadiusKm, h.Search.MaxRadiusKm)); err != nil {
		return q, &domain.ValidationError{
			Field:  "radius",
			Reason: fmt.Sprintf("must be between %g and %g", h.Search.MinRadiusKm, h.Search.MaxRadiusKm),
		}
	}
	if err := h.validate.Var(q.Limit, fmt.Sprintf("gte=1,lte=%d", h.Search.MaxLimit)); err != nil {
		return q, &domain.ValidationError{
			Field:  "limit",
			Reason: fmt.Sprintf("must be between 1 and %d", h.Search.MaxLimit),
		}
	}
	if err := h.validate.Var(q.Offset, "gte=0"); err != nil {
		return q, &domain.ValidationError{Field: "offset", Reason: "must not be negative"}
	}

	if near := strings.TrimSpace(values.Get("near")); near != "" {
		c, err := domain.ParseCoordinates(near)
		if err != nil {
			return q, err
		}
		q.Center = &c
	}

	return q, nil
}

// fail maps service errors onto status codes. Unexpected errors are logged
// and hidden behind a generic message.
func (h *ParkHandler) fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "park not found")
	default:
		logging.L().Error().Err(err).Str("req_id", obs.RequestID(r.Context())).Msg(msg)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
