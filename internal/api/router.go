package api

import (
	"net/http"
	"supplychain-service/internal/api/handlers"
	"supplychain-service/internal/services"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Deps are the services the HTTP API is built on.
type Deps struct {
	Routes   *services.RouteService
	Products *services.ProductService
	Vendors  *services.VendorService
	Orders   *services.OrderService
	KPIs     *services.KPIService
	Logger   *zap.Logger
	// Now is optional and dates KPI export filenames.
	Now func() time.Time
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = zap.L()
	}

	routes := &handlers.RouteHandler{Svc: deps.Routes}
	products := &handlers.ProductHandler{Svc: deps.Products}
	vendors := &handlers.VendorHandler{Svc: deps.Vendors}
	orders := &handlers.OrderHandler{Svc: deps.Orders}
	kpis := &handlers.KPIHandler{Svc: deps.KPIs, Now: deps.Now}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(loggingMiddleware(log.Named("http")))
	r.Use(middleware.Recoverer)

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Get("/health", handlers.Health)

	r.Route("/api", func(api chi.Router) {
		api.Route("/routes", func(rt chi.Router) {
			rt.Get("/", routes.List)
			rt.Post("/", routes.Create)
			rt.Get("/facets", routes.Facets)
			rt.Get("/stats", routes.Stats)
			rt.Get("/{id}", routes.Get)
			rt.Put("/{id}", routes.Replace)
			rt.Get("/{id}/tracking", routes.Tracking)
		})

		api.Get("/products", products.List)
		api.Post("/products", products.Create)

		api.Get("/vendors", vendors.List)
		api.Post("/vendors", vendors.Create)

		api.Get("/orders", orders.List)
		api.Post("/orders", orders.Create)
		api.Patch("/orders/{id}/status", orders.UpdateStatus)

		api.Get("/kpis", kpis.Get)
		api.Get("/kpis/export", kpis.Export)
	})

	return r
}
