//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"clts/config"
	"clts/infras/kafka"
	"clts/infras/otel"
	"clts/infras/postgres"
	"clts/infras/redis"
	"clts/permissions"
	"clts/shared/cache"
	"clts/transport/http"
	"clts/transport/http/middleware"
	"clts/transport/http/router"

	bookingRepository "clts/internal/domains/booking/repository"
	bookingService "clts/internal/domains/booking/service"
	calendarService "clts/internal/domains/calendar/service"
	moduleRepository "clts/internal/domains/coursemodule/repository"
	departmentRepository "clts/internal/domains/department/repository"
	instructorRepository "clts/internal/domains/instructor/repository"
	labRepository "clts/internal/domains/lab/repository"
	leaveRepository "clts/internal/domains/leave/repository"
	leaveService "clts/internal/domains/leave/service"
	resourceService "clts/internal/domains/resource/service"
	schedulingService "clts/internal/domains/scheduling/service"

	bookingHandler "clts/internal/handlers/booking"
	calendarHandler "clts/internal/handlers/calendar"
	leaveHandler "clts/internal/handlers/leave"
	resourceHandler "clts/internal/handlers/resource"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	permissions.Get,
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
	schedulingService.New,
)

var leaveDomain = wire.NewSet(
	leaveRepository.New,
	leaveService.New,
)

var calendarDomain = wire.NewSet(
	calendarService.New,
)

var resourceDomain = wire.NewSet(
	labRepository.New,
	instructorRepository.New,
	moduleRepository.New,
	departmentRepository.New,
	resourceService.New,
)

var domains = wire.NewSet(
	bookingDomain,
	leaveDomain,
	calendarDomain,
	resourceDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	bookingHandler.New,
	leaveHandler.New,
	calendarHandler.New,
	resourceHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
