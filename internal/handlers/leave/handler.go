package leave

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"clts/infras/otel"
	"clts/internal/domains/leave/model"
	"clts/internal/domains/leave/model/dto"
	"clts/internal/domains/leave/service"
	"clts/shared/constant"
	gDto "clts/shared/dto"
	"clts/shared/validator"
	"clts/transport/http/response"
)

type Handler struct {
	service service.Leave
	otel    otel.Otel
}

func New(service service.Leave, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/leaves", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.RequestLeave)
		routerGroup.Get("/", handler.GetLeaves)
		routerGroup.Get("/{id}", handler.GetLeaveByID)
		routerGroup.Post("/{id}/approve", handler.ApproveLeave)
		routerGroup.Post("/{id}/reject", handler.RejectLeave)
	})
}

func (handler *Handler) RequestLeave(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RequestLeave")
	defer scope.End()

	req := dto.RequestLeaveRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Request(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to request leave")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Leave requested successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

func (handler *Handler) GetLeaves(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLeaves")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	for _, field := range []string{model.FieldInstructorID, model.FieldStatus} {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	if from := r.URL.Query().Get("from"); from != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			ArgName:  "range_from",
			Field:    model.FieldEndDate,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    from,
			Table:    model.TableName,
		})
	}

	if to := r.URL.Query().Get("to"); to != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			ArgName:  "range_to",
			Field:    model.FieldStartDate,
			Operator: gDto.FilterOperatorLessEq,
			Value:    to,
			Table:    model.TableName,
		})
	}

	leaves, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get leaves")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, leaves)
}

func (handler *Handler) GetLeaveByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLeaveByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	leave, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get leave by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, leave)
}

func (handler *Handler) ApproveLeave(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApproveLeave")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Approve(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to approve leave")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Leave approved successfully")
}

func (handler *Handler) RejectLeave(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RejectLeave")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Reject(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reject leave")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Leave rejected successfully")
}
