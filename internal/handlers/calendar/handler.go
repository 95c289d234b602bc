package calendar

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"clts/infras/otel"
	"clts/internal/domains/calendar/service"
	"clts/shared/constant"
	"clts/shared/timezone"
	"clts/transport/http/response"
)

type Handler struct {
	service service.Calendar
	otel    otel.Otel
}

func New(service service.Calendar, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/calendar", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetMonth)
	})
}

// GetMonth renders the month view. Missing year/month default to the current
// date; out-of-range months roll over into the neighbouring year.
func (handler *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMonth")
	defer scope.End()

	now := timezone.Now()
	year := now.Year()
	month := int(now.Month())

	if value := r.URL.Query().Get(constant.RequestParamYear); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			year = parsed
		}
	}

	if value := r.URL.Query().Get(constant.RequestParamMonth); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			month = parsed
		}
	}

	view, err := handler.service.BuildMonth(ctx, year, month)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build month view")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, view)
}
