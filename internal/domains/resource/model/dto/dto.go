package dto

import (
	moduleModel "clts/internal/domains/coursemodule/model"
	departmentModel "clts/internal/domains/department/model"
	instructorModel "clts/internal/domains/instructor/model"
	labModel "clts/internal/domains/lab/model"
	"clts/shared"
	gDto "clts/shared/dto"
)

type CreateLabRequest struct {
	Name           string `json:"name"            validate:"required,max=100"`
	DepartmentCode string `json:"department_code" validate:"required,max=15"`
	Capacity       int    `json:"capacity"        validate:"required,min=1"`
	Active         *bool  `json:"active"          validate:"omitempty"`
}

type UpdateLabRequest struct {
	Name           string `db:"name"            json:"name"            validate:"omitempty,max=100"`
	DepartmentCode string `db:"department_code" json:"department_code" validate:"omitempty,max=15"`
	Capacity       int    `db:"capacity"        json:"capacity"        validate:"omitempty,min=1"`
	Active         *bool  `db:"active"          json:"active"          validate:"omitempty"`
}

type LabResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	DepartmentCode string `json:"department_code"`
	Capacity       int    `json:"capacity"`
	Active         bool   `json:"active"`
	gDto.Metadata
}

func (r *LabResponse) FromModel(model labModel.Lab) {
	r.ID = model.ID
	r.Name = model.Name
	r.DepartmentCode = model.DepartmentCode
	r.Capacity = model.Capacity
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetLabsResponse struct {
	Labs      []LabResponse `json:"labs"`
	TotalPage int           `json:"total_page"`
	TotalData int           `json:"total_data"`
}

func (r *GetLabsResponse) FromModels(models []labModel.Lab, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Labs = make([]LabResponse, len(models))
	for i, mod := range models {
		r.Labs[i].FromModel(mod)
	}
}

type CreateInstructorRequest struct {
	Email          string `json:"email"           validate:"required,email,max=100"`
	Name           string `json:"name"            validate:"required,max=100"`
	DepartmentCode string `json:"department_code" validate:"required,max=15"`
	Role           string `json:"role"            validate:"omitempty,oneof=SUPER_ADMIN ADMIN INSTRUCTOR"`
	Active         *bool  `json:"active"          validate:"omitempty"`
}

type UpdateInstructorRequest struct {
	Email          string `db:"email"           json:"email"           validate:"omitempty,email,max=100"`
	Name           string `db:"name"            json:"name"            validate:"omitempty,max=100"`
	DepartmentCode string `db:"department_code" json:"department_code" validate:"omitempty,max=15"`
	Role           string `db:"role"            json:"role"            validate:"omitempty,oneof=SUPER_ADMIN ADMIN INSTRUCTOR"`
	Active         *bool  `db:"active"          json:"active"          validate:"omitempty"`
}

type InstructorResponse struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	DepartmentCode string `json:"department_code"`
	Role           string `json:"role"`
	Active         bool   `json:"active"`
	gDto.Metadata
}

func (r *InstructorResponse) FromModel(model instructorModel.Instructor) {
	r.ID = model.ID
	r.Email = model.Email
	r.Name = model.Name
	r.DepartmentCode = model.DepartmentCode
	r.Role = model.Role
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetInstructorsResponse struct {
	Instructors []InstructorResponse `json:"instructors"`
	TotalPage   int                  `json:"total_page"`
	TotalData   int                  `json:"total_data"`
}

func (r *GetInstructorsResponse) FromModels(models []instructorModel.Instructor, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Instructors = make([]InstructorResponse, len(models))
	for i, mod := range models {
		r.Instructors[i].FromModel(mod)
	}
}

type CreateModuleRequest struct {
	Code          string `json:"code"           validate:"required,max=15"`
	Title         string `json:"title"          validate:"required,max=150"`
	OfferingDept  string `json:"offering_dept"  validate:"required,max=15"`
	EnrolledCount int    `json:"enrolled_count" validate:"omitempty,min=0"`
	Semester      int    `json:"semester"       validate:"omitempty,min=1,max=8"`
	Active        *bool  `json:"active"         validate:"omitempty"`
}

type UpdateModuleRequest struct {
	Title         string `db:"title"          json:"title"          validate:"omitempty,max=150"`
	OfferingDept  string `db:"offering_dept"  json:"offering_dept"  validate:"omitempty,max=15"`
	EnrolledCount int    `db:"enrolled_count" json:"enrolled_count" validate:"omitempty,min=0"`
	Semester      int    `db:"semester"       json:"semester"       validate:"omitempty,min=1,max=8"`
	Active        *bool  `db:"active"         json:"active"         validate:"omitempty"`
}

type ModuleResponse struct {
	Code          string `json:"code"`
	Title         string `json:"title"`
	OfferingDept  string `json:"offering_dept"`
	EnrolledCount int    `json:"enrolled_count"`
	Semester      int    `json:"semester"`
	Active        bool   `json:"active"`
	gDto.Metadata
}

func (r *ModuleResponse) FromModel(model moduleModel.Module) {
	r.Code = model.Code
	r.Title = model.Title
	r.OfferingDept = model.OfferingDept
	r.EnrolledCount = model.EnrolledCount
	r.Semester = model.Semester
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetModulesResponse struct {
	Modules   []ModuleResponse `json:"modules"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetModulesResponse) FromModels(models []moduleModel.Module, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Modules = make([]ModuleResponse, len(models))
	for i, mod := range models {
		r.Modules[i].FromModel(mod)
	}
}

type CreateDepartmentRequest struct {
	Code   string `json:"code"   validate:"required,max=15"`
	Name   string `json:"name"   validate:"required,max=100"`
	Active *bool  `json:"active" validate:"omitempty"`
}

type UpdateDepartmentRequest struct {
	Name   string `db:"name"   json:"name"   validate:"omitempty,max=100"`
	Active *bool  `db:"active" json:"active" validate:"omitempty"`
}

type DepartmentResponse struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
	gDto.Metadata
}

func (r *DepartmentResponse) FromModel(model departmentModel.Department) {
	r.Code = model.Code
	r.Name = model.Name
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetDepartmentsResponse struct {
	Departments []DepartmentResponse `json:"departments"`
	TotalPage   int                  `json:"total_page"`
	TotalData   int                  `json:"total_data"`
}

func (r *GetDepartmentsResponse) FromModels(models []departmentModel.Department, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Departments = make([]DepartmentResponse, len(models))
	for i, mod := range models {
		r.Departments[i].FromModel(mod)
	}
}
