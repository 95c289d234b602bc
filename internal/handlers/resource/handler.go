package resource

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"clts/infras/otel"
	moduleModel "clts/internal/domains/coursemodule/model"
	departmentModel "clts/internal/domains/department/model"
	instructorModel "clts/internal/domains/instructor/model"
	labModel "clts/internal/domains/lab/model"
	"clts/internal/domains/resource/model/dto"
	"clts/internal/domains/resource/service"
	"clts/shared"
	"clts/shared/constant"
	gDto "clts/shared/dto"
	"clts/shared/validator"
	"clts/transport/http/response"
)

// Handler serves the reference entities: labs, instructors, modules and
// departments. Each block below is the same CRUD shape over a different
// entity.
type Handler struct {
	service service.Resource
	otel    otel.Otel
}

func New(service service.Resource, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/labs", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateLab)
		routerGroup.Get("/", handler.GetLabs)
		routerGroup.Get("/{id}", handler.GetLabByID)
		routerGroup.Patch("/{id}", handler.UpdateLab)
		routerGroup.Delete("/{id}", handler.DeleteLab)
	})

	router.Route("/instructors", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateInstructor)
		routerGroup.Get("/", handler.GetInstructors)
		routerGroup.Get("/{id}", handler.GetInstructorByID)
		routerGroup.Patch("/{id}", handler.UpdateInstructor)
		routerGroup.Delete("/{id}", handler.DeleteInstructor)
	})

	router.Route("/modules", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateModule)
		routerGroup.Get("/", handler.GetModules)
		routerGroup.Get("/{id}", handler.GetModuleByCode)
		routerGroup.Patch("/{id}", handler.UpdateModule)
		routerGroup.Delete("/{id}", handler.DeleteModule)
	})

	router.Route("/departments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateDepartment)
		routerGroup.Get("/", handler.GetDepartments)
		routerGroup.Get("/{id}", handler.GetDepartmentByCode)
		routerGroup.Patch("/{id}", handler.UpdateDepartment)
		routerGroup.Delete("/{id}", handler.DeleteDepartment)
	})
}

func (handler *Handler) CreateLab(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateLab")
	defer scope.End()

	req := dto.CreateLabRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.CreateLab(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create lab")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

func (handler *Handler) GetLabs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLabs")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := filterFromQuery(r, labModel.TableName, labModel.FieldDepartmentCode)
	appendActiveFilter(r, &filterGroup, labModel.TableName, labModel.FieldActive)

	res, err := handler.service.GetLabs(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get labs")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func (handler *Handler) GetLabByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLabByID")
	defer scope.End()

	res, err := handler.service.GetLab(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get lab by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func (handler *Handler) UpdateLab(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateLab")
	defer scope.End()

	req := dto.UpdateLabRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateLab(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update lab")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Lab updated successfully")
}

func (handler *Handler) DeleteLab(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteLab")
	defer scope.End()

	if err := handler.service.DeleteLab(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete lab")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Lab deleted successfully")
}

func (handler *Handler) CreateInstructor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateInstructor")
	defer scope.End()

	req := dto.CreateInstructorRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.CreateInstructor(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create instructor")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

func (handler *Handler) GetInstructors(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInstructors")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := filterFromQuery(r, instructorModel.TableName, instructorModel.FieldDepartmentCode, instructorModel.FieldRole)
	appendActiveFilter(r, &filterGroup, instructorModel.TableName, instructorModel.FieldActive)

	res, err := handler.service.GetInstructors(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get instructors")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func (handler *Handler) GetInstructorByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInstructorByID")
	defer scope.End()

	res, err := handler.service.GetInstructor(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get instructor by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func (handler *Handler) UpdateInstructor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateInstructor")
	defer scope.End()

	req := dto.UpdateInstructorRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateInstructor(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update instructor")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Instructor updated successfully")
}

func (handler *Handler) DeleteInstructor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteInstructor")
	defer scope.End()

	if err := handler.service.DeleteInstructor(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete instructor")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Instructor deleted successfully")
}

func (handler *Handler) CreateModule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateModule")
	defer scope.End()

	req := dto.CreateModuleRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.CreateModule(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create module")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

func (handler *Handler) GetModules(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetModules")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := filterFromQuery(r, moduleModel.TableName, moduleModel.FieldOfferingDept)
	appendSemesterFilter(r, &filterGroup)
	appendActiveFilter(r, &filterGroup, moduleModel.TableName, moduleModel.FieldActive)

	res, err := handler.service.GetModules(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get modules")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func (handler *Handler) GetModuleByCode(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetModuleByCode")
	defer scope.End()

	res, err := handler.service.GetModule(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get module by code")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func (handler *Handler) UpdateModule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateModule")
	defer scope.End()

	req := dto.UpdateModuleRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateModule(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update module")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Module updated successfully")
}

func (handler *Handler) DeleteModule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteModule")
	defer scope.End()

	if err := handler.service.DeleteModule(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete module")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Module deleted successfully")
}

func (handler *Handler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDepartment")
	defer scope.End()

	req := dto.CreateDepartmentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.CreateDepartment(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create department")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

func (handler *Handler) GetDepartments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDepartments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := filterFromQuery(r, departmentModel.TableName)
	appendActiveFilter(r, &filterGroup, departmentModel.TableName, departmentModel.FieldActive)

	res, err := handler.service.GetDepartments(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get departments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func (handler *Handler) GetDepartmentByCode(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDepartmentByCode")
	defer scope.End()

	res, err := handler.service.GetDepartment(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get department by code")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func (handler *Handler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDepartment")
	defer scope.End()

	req := dto.UpdateDepartmentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateDepartment(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update department")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Department updated successfully")
}

func (handler *Handler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteDepartment")
	defer scope.End()

	if err := handler.service.DeleteDepartment(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete department")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Department deleted successfully")
}

// filterFromQuery builds an equality filter for every listed field present in
// the query string.
func filterFromQuery(r *http.Request, table string, fields ...string) gDto.FilterGroup {
	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	for _, field := range fields {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    table,
			})
		}
	}

	return filterGroup
}

// appendActiveFilter adds a typed boolean filter when ?active= is present.
func appendActiveFilter(r *http.Request, filterGroup *gDto.FilterGroup, table, field string) {
	active := shared.ConvertStringToBool(r.URL.Query().Get(field))
	if active == nil {
		return
	}

	filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
		Field:    field,
		Operator: gDto.FilterOperatorEq,
		Value:    *active,
		Table:    table,
	})
}

// appendSemesterFilter adds a typed integer filter when ?semester= is present.
func appendSemesterFilter(r *http.Request, filterGroup *gDto.FilterGroup) {
	value := r.URL.Query().Get(moduleModel.FieldSemester)
	if value == "" {
		return
	}

	semester, err := strconv.Atoi(value)
	if err != nil {
		return
	}

	filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
		Field:    moduleModel.FieldSemester,
		Operator: gDto.FilterOperatorEq,
		Value:    semester,
		Table:    moduleModel.TableName,
	})
}
