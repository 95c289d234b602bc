package model

import "clts/shared/model"

const (
	TableName  = "modules"
	EntityName = "module"

	FieldCode          = "code"
	FieldTitle         = "title"
	FieldOfferingDept  = "offering_dept"
	FieldEnrolledCount = "enrolled_count"
	FieldSemester      = "semester"
	FieldActive        = "active"
)

type Module struct {
	Code          string `db:"code"`
	Title         string `db:"title"`
	OfferingDept  string `db:"offering_dept"`
	EnrolledCount int    `db:"enrolled_count"`
	Semester      int    `db:"semester"`
	Active        bool   `db:"active"`
	model.Metadata
}
