package model

import "clts/shared/model"

const (
	TableName  = "departments"
	EntityName = "department"

	FieldCode   = "code"
	FieldName   = "name"
	FieldActive = "active"
)

type Department struct {
	Code   string `db:"code"`
	Name   string `db:"name"`
	Active bool   `db:"active"`
	model.Metadata
}
