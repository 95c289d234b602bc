package router

import (
	"github.com/go-chi/chi/v5"

	"clts/internal/handlers/booking"
	"clts/internal/handlers/calendar"
	"clts/internal/handlers/leave"
	"clts/internal/handlers/resource"
	"clts/transport/http/middleware"
)

type DomainHandlers struct {
	Booking  booking.Handler
	Leave    leave.Handler
	Calendar calendar.Handler
	Resource resource.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AppMiddleware  middleware.AppMiddleware
	Auth           middleware.Auth
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AppMiddleware.Tracing)
		routerGroup.Use(r.AppMiddleware.CORS)
		routerGroup.Use(r.AppMiddleware.RateLimit())
		routerGroup.Use(r.Auth.APIKey)
		routerGroup.Use(r.Auth.Identity)
		routerGroup.Use(r.Auth.RBAC)

		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Leave.Router(routerGroup)
		r.DomainHandlers.Calendar.Router(routerGroup)
		r.DomainHandlers.Resource.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, appMiddleware middleware.AppMiddleware, auth middleware.Auth) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AppMiddleware:  appMiddleware,
		Auth:           auth,
	}
}
