package model

import "clts/shared/model"

const (
	TableName  = "instructors"
	EntityName = "instructor"

	FieldID             = "id"
	FieldEmail          = "email"
	FieldName           = "name"
	FieldDepartmentCode = "department_code"
	FieldRole           = "role"
	FieldActive         = "active"
)

type Instructor struct {
	ID             string `db:"id"`
	Email          string `db:"email"`
	Name           string `db:"name"`
	DepartmentCode string `db:"department_code"`
	Role           string `db:"role"`
	Active         bool   `db:"active"`
	model.Metadata
}
