package model

import "clts/shared/model"

const (
	TableName  = "labs"
	EntityName = "lab"

	FieldID             = "id"
	FieldName           = "name"
	FieldDepartmentCode = "department_code"
	FieldCapacity       = "capacity"
	FieldActive         = "active"
)

type Lab struct {
	ID             string `db:"id"`
	Name           string `db:"name"`
	DepartmentCode string `db:"department_code"`
	Capacity       int    `db:"capacity"`
	Active         bool   `db:"active"`
	model.Metadata
}
