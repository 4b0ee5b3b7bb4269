package dto

import (
	"errors"
	"fmt"
	"strings"
	"supplychain-service/internal/domain"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

type RouteProduct struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

// RouteRequest is the body of both create and replace; a replace sends the whole record.
type RouteRequest struct {
	RouteNumber   string         `json:"routeNumber"`
	DriverName    string         `json:"driverName"`
	VehicleID     string         `json:"vehicleId"`
	Origin        string         `json:"origin"`
	Destination   string         `json:"destination"`
	Distance      float64        `json:"distance"`
	Temperature   float64        `json:"temperature"`
	ScheduledDate string         `json:"scheduledDate"`
	EstimatedTime string         `json:"estimatedTime"`
	Status        string         `json:"status"`
	Products      []RouteProduct `json:"products"`
	GPSLocation   bool           `json:"gpsLocation"`
}

// ToDomain converts the request. A malformed scheduledDate is reported in the
// same ValidationError as every other field Route.Validate rejects.
func (req RouteRequest) ToDomain() (domain.Route, error) {
	r := domain.Route{
		RouteNumber:   req.RouteNumber,
		DriverName:    req.DriverName,
		VehicleID:     req.VehicleID,
		Origin:        req.Origin,
		Destination:   req.Destination,
		DistanceKm:    req.Distance,
		TemperatureC:  req.Temperature,
		EstimatedTime: req.EstimatedTime,
		Status:        domain.RouteStatus(req.Status),
		GPSAvailable:  req.GPSLocation,
	}
	for _, p := range req.Products {
		r.Products = append(r.Products, domain.RouteProduct{ProductName: p.ProductName, Quantity: p.Quantity})
	}

	if s := strings.TrimSpace(req.ScheduledDate); s != "" {
		d, err := time.ParseInLocation(DateLayout, s, time.UTC)
		if err != nil {
			ve := &domain.ValidationError{}
			var rest *domain.ValidationError
			if errors.As(r.Validate(), &rest) {
				for _, f := range rest.Fields {
					if f.Field != "scheduledDate" {
						ve.Fields = append(ve.Fields, f)
					}
				}
			}
			ve.Add("scheduledDate", fmt.Sprintf("ScheduledDate %q must be YYYY-MM-DD", s))
			return domain.Route{}, ve
		}
		r.ScheduledDate = d
	}
	return r, nil
}

type RouteResponse struct {
	ID            string         `json:"id"`
	RouteNumber   string         `json:"routeNumber"`
	DriverName    string         `json:"driverName"`
	VehicleID     string         `json:"vehicleId"`
	Origin        string         `json:"origin"`
	Destination   string         `json:"destination"`
	Distance      float64        `json:"distance"`
	Temperature   float64        `json:"temperature"`
	ScheduledDate string         `json:"scheduledDate"`
	EstimatedTime string         `json:"estimatedTime"`
	Status        string         `json:"status"`
	Products      []RouteProduct `json:"products"`
	GPSLocation   bool           `json:"gpsLocation"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func NewRouteResponse(r domain.Route) RouteResponse {
	res := RouteResponse{
		ID:            r.ID,
		RouteNumber:   r.RouteNumber,
		DriverName:    r.DriverName,
		VehicleID:     r.VehicleID,
		Origin:        r.Origin,
		Destination:   r.Destination,
		Distance:      r.DistanceKm,
		Temperature:   r.TemperatureC,
		ScheduledDate: r.ScheduledDate.Format(DateLayout),
		EstimatedTime: r.EstimatedTime,
		Status:        string(r.Status),
		Products:      make([]RouteProduct, 0, len(r.Products)),
		GPSLocation:   r.GPSAvailable,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	for _, p := range r.Products {
		res.Products = append(res.Products, RouteProduct{ProductName: p.ProductName, Quantity: p.Quantity})
	}
	return res
}

type ListRoutesResponse struct {
	Routes []RouteResponse `json:"routes"`
}

type TimelineStep struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	State       string `json:"state"`
}

type TrackingResponse struct {
	Route    RouteResponse  `json:"route"`
	Progress int            `json:"progress"`
	Timeline []TimelineStep `json:"timeline"`
	GPSNote  string         `json:"gpsNote"`
}

func NewTrackingResponse(t domain.Tracking) TrackingResponse {
	res := TrackingResponse{
		Route:    NewRouteResponse(t.Route),
		Progress: t.Progress,
		Timeline: make([]TimelineStep, 0, len(t.Timeline)),
		GPSNote:  t.GPSNote,
	}
	for _, s := range t.Timeline {
		res.Timeline = append(res.Timeline, TimelineStep{Label: s.Label, Description: s.Description, State: string(s.State)})
	}
	return res
}

type RouteFacetsResponse struct {
	Statuses     []string `json:"statuses"`
	Drivers      []string `json:"drivers"`
	Origins      []string `json:"origins"`
	Destinations []string `json:"destinations"`
}

type RouteStatsResponse struct {
	TotalRoutes    int `json:"totalRoutes"`
	InTransit      int `json:"inTransit"`
	Delivered      int `json:"delivered"`
	AvgTemperature int `json:"avgTemperature"`
}

func NewRouteStatsResponse(s domain.RouteStats) RouteStatsResponse {
	return RouteStatsResponse{
		TotalRoutes:    s.TotalRoutes,
		InTransit:      s.InTransit,
		Delivered:      s.Delivered,
		AvgTemperature: s.AvgTemperatureC,
	}
}
