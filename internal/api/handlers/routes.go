package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"supplychain-service/internal/api/dto"
	"supplychain-service/internal/domain"
	"supplychain-service/internal/services"
	"time"

	"github.com/go-chi/chi/v5"
)

// RouteHandler exposes route CRUD, listing and tracking.
type RouteHandler struct {
	Svc *services.RouteService
}

func (h *RouteHandler) List(w http.ResponseWriter, r *http.Request) {
	f, err := parseRouteFilter(r.URL.Query())
	if err != nil {
		writeServiceError(w, r, "list routes", err)
		return
	}

	routes, err := h.Svc.List(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, "list routes", err)
		return
	}

	res := dto.ListRoutesResponse{Routes: make([]dto.RouteResponse, 0, len(routes))}
	for _, rt := range routes {
		res.Routes = append(res.Routes, dto.NewRouteResponse(rt))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *RouteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.RouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	route, err := req.ToDomain()
	if err != nil {
		writeServiceError(w, r, "create route", err)
		return
	}

	created, err := h.Svc.Create(r.Context(), route)
	if err != nil {
		writeServiceError(w, r, "create route", err)
		return
	}

	w.Header().Set("Location", "/api/routes/"+created.ID)
	writeJSON(w, r, http.StatusCreated, dto.NewRouteResponse(created))
}

func (h *RouteHandler) Get(w http.ResponseWriter, r *http.Request) {
	route, err := h.Svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, "get route", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewRouteResponse(route))
}

// Replace overwrites the whole route record; omitted fields are cleared.
func (h *RouteHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var req dto.RouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	route, err := req.ToDomain()
	if err != nil {
		writeServiceError(w, r, "update route", err)
		return
	}

	updated, err := h.Svc.Update(r.Context(), chi.URLParam(r, "id"), route)
	if err != nil {
		writeServiceError(w, r, "update route", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewRouteResponse(updated))
}

func (h *RouteHandler) Tracking(w http.ResponseWriter, r *http.Request) {
	t, err := h.Svc.Track(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, "track route", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewTrackingResponse(t))
}

func (h *RouteHandler) Facets(w http.ResponseWriter, r *http.Request) {
	f, err := h.Svc.Facets(r.Context())
	if err != nil {
		writeServiceError(w, r, "route facets", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.RouteFacetsResponse{
		Statuses:     f.Statuses,
		Drivers:      f.Drivers,
		Origins:      f.Origins,
		Destinations: f.Destinations,
	})
}

func (h *RouteHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.Svc.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, "route stats", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewRouteStatsResponse(st))
}

// parseRouteFilter reads q, status, driver, origin, destination, from and to.
// List parameters may repeat or hold comma-separated values.
func parseRouteFilter(q url.Values) (services.RouteFilter, error) {
	f := services.RouteFilter{
		Search:       q.Get("q"),
		Drivers:      multi(q, "driver"),
		Origins:      multi(q, "origin"),
		Destinations: multi(q, "destination"),
	}

	ve := &domain.ValidationError{}
	for _, s := range multi(q, "status") {
		st, err := domain.ParseRouteStatus(s)
		if err != nil {
			ve.Add("status", fmt.Sprintf("Status %q is not a known route status", s))
			continue
		}
		f.Statuses = append(f.Statuses, st)
	}

	f.From = parseDateParam(q, "from", ve)
	f.To = parseDateParam(q, "to", ve)

	return f, ve.Err()
}

func multi(q url.Values, key string) []string {
	var out []string
	for _, v := range q[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseDateParam(q url.Values, key string, ve *domain.ValidationError) *time.Time {
	s := strings.TrimSpace(q.Get(key))
	if s == "" {
		return nil
	}
	t, err := time.ParseInLocation(dto.DateLayout, s, time.UTC)
	if err != nil {
		ve.Add(key, fmt.Sprintf("%q must be YYYY-MM-DD", s))
		return nil
	}
	return &t
}
