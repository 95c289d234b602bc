// Package service exposes CRUD over the reference entities the scheduling
// engine consumes: labs, instructors, modules and departments. The engine
// itself only ever reads them.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"clts/config"
	"clts/infras/otel"
	moduleModel "clts/internal/domains/coursemodule/model"
	moduleRepo "clts/internal/domains/coursemodule/repository"
	departmentModel "clts/internal/domains/department/model"
	departmentRepo "clts/internal/domains/department/repository"
	instructorModel "clts/internal/domains/instructor/model"
	instructorRepo "clts/internal/domains/instructor/repository"
	labModel "clts/internal/domains/lab/model"
	labRepo "clts/internal/domains/lab/repository"
	"clts/internal/domains/resource/model/dto"
	"clts/shared"
	"clts/shared/cache"
	"clts/shared/constant"
	gDto "clts/shared/dto"
	"clts/shared/failure"
	gModel "clts/shared/model"
	"clts/shared/timezone"
)

const (
	cacheLab        = "lab"
	cacheInstructor = "instructor"
	cacheModule     = "module"
	cacheDepartment = "department"
)

type Resource interface {
	CreateLab(ctx context.Context, req dto.CreateLabRequest) (dto.LabResponse, error)
	GetLabs(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetLabsResponse, error)
	GetLab(ctx context.Context, id string) (dto.LabResponse, error)
	UpdateLab(ctx context.Context, req dto.UpdateLabRequest, id string) error
	DeleteLab(ctx context.Context, id string) error

	CreateInstructor(ctx context.Context, req dto.CreateInstructorRequest) (dto.InstructorResponse, error)
	GetInstructors(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetInstructorsResponse, error)
	GetInstructor(ctx context.Context, id string) (dto.InstructorResponse, error)
	UpdateInstructor(ctx context.Context, req dto.UpdateInstructorRequest, id string) error
	DeleteInstructor(ctx context.Context, id string) error

	CreateModule(ctx context.Context, req dto.CreateModuleRequest) (dto.ModuleResponse, error)
	GetModules(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetModulesResponse, error)
	GetModule(ctx context.Context, code string) (dto.ModuleResponse, error)
	UpdateModule(ctx context.Context, req dto.UpdateModuleRequest, code string) error
	DeleteModule(ctx context.Context, code string) error

	CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest) (dto.DepartmentResponse, error)
	GetDepartments(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetDepartmentsResponse, error)
	GetDepartment(ctx context.Context, code string) (dto.DepartmentResponse, error)
	UpdateDepartment(ctx context.Context, req dto.UpdateDepartmentRequest, code string) error
	DeleteDepartment(ctx context.Context, code string) error
}

type serviceImpl struct {
	labs        labRepo.Lab
	instructors instructorRepo.Instructor
	modules     moduleRepo.Module
	departments departmentRepo.Department
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	labs labRepo.Lab,
	instructors instructorRepo.Instructor,
	modules moduleRepo.Module,
	departments departmentRepo.Department,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Resource {
	return &serviceImpl{
		labs:        labs,
		instructors: instructors,
		modules:     modules,
		departments: departments,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func activeOrDefault(active *bool) bool {
	if active == nil {
		return true
	}

	return *active
}

func (s *serviceImpl) metadata(ctx context.Context) gModel.Metadata {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return gModel.Metadata{
		CreatedAt:  timezone.Now(),
		ModifiedAt: timezone.Now(),
		CreatedBy:  user,
		ModifiedBy: user,
	}
}

func (s *serviceImpl) CreateLab(ctx context.Context, req dto.CreateLabRequest) (res dto.LabResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".resource.CreateLab")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.departmentMustExist(ctx, req.DepartmentCode); err != nil {
		return res, err
	}

	lab := labModel.Lab{
		ID:             uuid.NewString(),
		Name:           req.Name,
		DepartmentCode: req.DepartmentCode,
		Capacity:       req.Capacity,
		Active:         activeOrDefault(req.Active),
		Metadata:       s.metadata(ctx),
	}

	if err = s.labs.Insert(ctx, lab); err != nil {
		log.Error().Err(err).Msg("failed to create lab")

		return res, fmt.Errorf("failed to create lab: %w", err)
	}

	res.FromModel(lab)
	s.invalidate(ctx, cacheLab)

	return res, nil
}

func (s *serviceImpl) GetLabs(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetLabsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".resource.GetLabs")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheLab+":gets", params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.labs.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count labs")

		return res, fmt.Errorf("failed to count labs: %w", err)
	}

	models, err := s.labs.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get labs")

		return res, fmt.Errorf("failed to get labs: %w", err)
	}

	res.FromModels(models, total, params.Limit)
	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) GetLab(ctx context.Context, id string) (res dto.LabResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".resource.GetLab")
	defer scope.End()
	defer scope.TraceIfError(err)

	lab, err := s.labs.Get(ctx, shared.FilterByID(id, labModel.FieldID, labModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get lab")

		return res, fmt.Errorf("failed to get lab: %w", err)
	}

	if lab.ID == constant.Empty {
		return res, failure.NotFound("lab not found") //nolint:wrapcheck
	}

	res.FromModel(lab)

	return res, nil
}

func (s *serviceImpl) UpdateLab(ctx context.Context, req dto.UpdateLabRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".resource.UpdateLab")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.DepartmentCode != constant.Empty {
		if err = s.departmentMustExist(ctx, req.DepartmentCode); err != nil {
			return err
		}
	}

	return s.update(ctx, updateTarget{
		exist:  s.labs.Exist,
		apply:  s.labs.Update,
		filter: shared.FilterByID(id, labModel.FieldID, labModel.TableName),
		entity: labModel.EntityName,
		prefix: cacheLab,
		fields: req,
	})
}

func (s *serviceImpl) DeleteLab(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".resource.DeleteLab")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.delete(ctx, deleteTarget{
		exist:  s.labs.Exist,
		remove: s.labs.Delete,
		filter: shared.FilterByID(id, labModel.FieldID, labModel.TableName),
		entity: labModel.EntityName,
		prefix: cacheLab,
	})
}

func (s *serviceImpl) CreateInstructor(ctx context.Context, req dto.CreateInstructorRequest) (res dto.InstructorResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".resource.CreateInstructor")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.departmentMustExist(ctx, req.DepartmentCode); err != nil {
		return res, err
	}

	role := req.Role
	if role == constant.Empty {
		role = constant.RoleInstructor
	}

	instructor := instructorModel.Instructor{
		ID:             uuid.NewString(),
		Email:          req.Email,
		Name:           req.Name,
		DepartmentCode: req.DepartmentCode,
		Role:           role,
		Active:         activeOrDefault(req.Active),
		Metadata:       s.metadata(ctx),
	}

	if err = s.instructors.Insert(ctx, instructor); err != nil {
		log.Error().Err(err).Msg("failed to create instructor")

		return res, fmt.Errorf("failed to create instructor: %w", err)
	}

	res.FromModel(instructor)
	s.invalidate(ctx, cacheInstructor)

	return res, nil
}

func (s *serviceImpl) GetInstructors(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetInstructorsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".resource.GetInstructors")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheInstructor+":gets", params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.instructors.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count instructors")

		return res, fmt.Errorf("failed to count instructors: %w", err)
	}

	models, err := s.instructors.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get instructors")

		return res, fmt.Errorf("failed to get instructors: %w", err)
	}

	res.FromModels(models, total, params.Limit)
	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) GetInstructor(ctx context.Context, id string) (res dto.InstructorResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".resource.GetInstructor")
	defer scope.End()
	defer scope.TraceIfError(err)

	instructor, err := s.instructors.Get(ctx, shared.FilterByID(id, instructorModel.FieldID, instructorModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get instructor")

		return res, fmt.Errorf("failed to get instructor: %w", err)
	}

	if instructor.ID == constant.Empty {
		return res, failure.NotFound("instructor not found") //nolint:wrapcheck
	}

	res.FromModel(instructor)

	return res, nil
}

func (s *serviceImpl) UpdateInstructor(ctx context.Context, req dto.UpdateInstructorRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".resource.UpdateInstructor")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.DepartmentCode != constant.Empty {
		if err = s.departmentMustExist(ctx, req.DepartmentCode); err != nil {
			return err
		}
	}

	return s.update(ctx, updateTarget{
		exist:  s.instructors.Exist,
		apply:  s.instructors.Update,
		filter: shared.FilterByID(id, instructorModel.FieldID, instructorModel.TableName),
		entity: instructorModel.EntityName,
		prefix: cacheInstructor,
		fields: req,
	})
}

func (s *serviceImpl) DeleteInstructor(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".resource.DeleteInstructor")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.delete(ctx, deleteTarget{
		exist:  s.instructors.Exist,
		remove: s.instructors.Delete,
		filter: shared.FilterByID(id, instructorModel.FieldID, instructorModel.TableName),
		entity: instructorModel.EntityName,
		prefix: cacheInstructor,
	})
}

func (s *serviceImpl) CreateModule(ctx context.Context, req dto.CreateModuleRequest) (res dto.ModuleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".resource.CreateModule")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.departmentMustExist(ctx, req.OfferingDept); err != nil {
		return res, err
	}

	module := moduleModel.Module{
		Code:          req.Code,
		Title:         req.Title,
		OfferingDept:  req.OfferingDept,
		EnrolledCount: req.EnrolledCount,
		Semester:      req.Semester,
		Active:        activeOrDefault(req.Active),
		Metadata:      s.metadata(ctx),
	}

	if err = s.modules.Insert(ctx, module); err != nil {
		log.Error().Err(err).Msg("failed to create module")

		return res, fmt.Errorf("failed to create module: %w", err)
	}

	res.FromModel(module)
	s.invalidate(ctx, cacheModule)

	return res, nil
}

func (s *serviceImpl) GetModules(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetModulesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".resource.GetModules")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheModule+":gets", params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.modules.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count modules")

		return res, fmt.Errorf("failed to count modules: %w", err)
	}

	models, err := s.modules.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get modules")

		return res, fmt.Errorf("failed to get modules: %w", err)
	}

	res.FromModels(models, total, params.Limit)
	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) GetModule(ctx context.Context, code string) (res dto.ModuleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".resource.GetModule")
	defer scope.End()
	defer scope.TraceIfError(err)

	module, err := s.modules.Get(ctx, shared.FilterByID(code, moduleModel.FieldCode, moduleModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get module")

		return res, fmt.Errorf("failed to get module: %w", err)
	}

	if module.Code == constant.Empty {
		return res, failure.NotFound("module not found") //nolint:wrapcheck
	}

	res.FromModel(module)

	return res, nil
}

func (s *serviceImpl) UpdateModule(ctx context.Context, req dto.UpdateModuleRequest, code string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".resource.UpdateModule")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.OfferingDept != constant.Empty {
		if err = s.departmentMustExist(ctx, req.OfferingDept); err != nil {
			return err
		}
	}

	return s.update(ctx, updateTarget{
		exist:  s.modules.Exist,
		apply:  s.modules.Update,
		filter: shared.FilterByID(code, moduleModel.FieldCode, moduleModel.TableName),
		entity: moduleModel.EntityName,
		prefix: cacheModule,
		fields: req,
	})
}

func (s *serviceImpl) DeleteModule(ctx context.Context, code string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".resource.DeleteModule")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.delete(ctx, deleteTarget{
		exist:  s.modules.Exist,
		remove: s.modules.Delete,
		filter: shared.FilterByID(code, moduleModel.FieldCode, moduleModel.TableName),
		entity: moduleModel.EntityName,
		prefix: cacheModule,
	})
}

func (s *serviceImpl) CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest) (res dto.DepartmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".resource.CreateDepartment")
	defer scope.End()
	defer scope.TraceIfError(err)

	department := departmentModel.Department{
		Code:     req.Code,
		Name:     req.Name,
		Active:   activeOrDefault(req.Active),
		Metadata: s.metadata(ctx),
	}

	if err = s.departments.Insert(ctx, department); err != nil {
		log.Error().Err(err).Msg("failed to create department")

		return res, fmt.Errorf("failed to create department: %w", err)
	}

	res.FromModel(department)
	s.invalidate(ctx, cacheDepartment)

	return res, nil
}

func (s *serviceImpl) GetDepartments(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetDepartmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".resource.GetDepartments")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheDepartment+":gets", params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.departments.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count departments")

		return res, fmt.Errorf("failed to count departments: %w", err)
	}

	models, err := s.departments.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get departments")

		return res, fmt.Errorf("failed to get departments: %w", err)
	}

	res.FromModels(models, total, params.Limit)
	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) GetDepartment(ctx context.Context, code string) (res dto.DepartmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".resource.GetDepartment")
	defer scope.End()
	defer scope.TraceIfError(err)

	department, err := s.departments.Get(ctx, shared.FilterByID(code, departmentModel.FieldCode, departmentModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get department")

		return res, fmt.Errorf("failed to get department: %w", err)
	}

	if department.Code == constant.Empty {
		return res, failure.NotFound("department not found") //nolint:wrapcheck
	}

	res.FromModel(department)

	return res, nil
}

func (s *serviceImpl) UpdateDepartment(ctx context.Context, req dto.UpdateDepartmentRequest, code string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".resource.UpdateDepartment")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.update(ctx, updateTarget{
		exist:  s.departments.Exist,
		apply:  s.departments.Update,
		filter: shared.FilterByID(code, departmentModel.FieldCode, departmentModel.TableName),
		entity: departmentModel.EntityName,
		prefix: cacheDepartment,
		fields: req,
	})
}

func (s *serviceImpl) DeleteDepartment(ctx context.Context, code string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".resource.DeleteDepartment")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.delete(ctx, deleteTarget{
		exist:  s.departments.Exist,
		remove: s.departments.Delete,
		filter: shared.FilterByID(code, departmentModel.FieldCode, departmentModel.TableName),
		entity: departmentModel.EntityName,
		prefix: cacheDepartment,
	})
}

type updateTarget struct {
	exist  func(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	apply  func(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	filter gDto.FilterGroup
	entity string
	prefix string
	fields any
}

func (s *serviceImpl) update(ctx context.Context, target updateTarget) error {
	exist, err := target.exist(ctx, target.filter)
	if err != nil {
		log.Error().Err(err).Str("entity", target.entity).Msg("failed to check if entity exists")

		return fmt.Errorf("failed to check if %s exists: %w", target.entity, err)
	}

	if !exist {
		return failure.NotFound(target.entity + " not found") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err := target.apply(ctx, shared.TransformFields(target.fields, user), target.filter); err != nil {
		log.Error().Err(err).Str("entity", target.entity).Msg("failed to update entity")

		return fmt.Errorf("failed to update %s: %w", target.entity, err)
	}

	s.invalidate(ctx, target.prefix)

	return nil
}

type deleteTarget struct {
	exist  func(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	remove func(ctx context.Context, filter gDto.FilterGroup) error
	filter gDto.FilterGroup
	entity string
	prefix string
}

func (s *serviceImpl) delete(ctx context.Context, target deleteTarget) error {
	exist, err := target.exist(ctx, target.filter)
	if err != nil {
		log.Error().Err(err).Str("entity", target.entity).Msg("failed to check if entity exists")

		return fmt.Errorf("failed to check if %s exists: %w", target.entity, err)
	}

	if !exist {
		return failure.NotFound(target.entity + " not found") //nolint:wrapcheck
	}

	if err := target.remove(ctx, target.filter); err != nil {
		log.Error().Err(err).Str("entity", target.entity).Msg("failed to delete entity")

		return fmt.Errorf("failed to delete %s: %w", target.entity, err)
	}

	s.invalidate(ctx, target.prefix)

	return nil
}

func (s *serviceImpl) departmentMustExist(ctx context.Context, code string) error {
	exist, err := s.departments.Exist(ctx, shared.FilterByID(code, departmentModel.FieldCode, departmentModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if department exists")

		return fmt.Errorf("failed to check if department exists: %w", err)
	}

	if !exist {
		return failure.NotFound("department not found") //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) save(ctx context.Context, key string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, key, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save to cache")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, prefix string) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, prefix)
	}()
}
