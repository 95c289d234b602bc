package model

import (
	"fmt"
	"time"

	"clts/shared/model"
)

const (
	TableName  = "leaves"
	EntityName = "leave"

	FieldID           = "id"
	FieldInstructorID = "instructor_id"
	FieldStartDate    = "start_date"
	FieldEndDate      = "end_date"
	FieldStatus       = "status"
	FieldReason       = "reason"
)

// Leave is an instructor absence over an inclusive date range. A single-day
// leave has StartDate == EndDate.
type Leave struct {
	ID             string    `db:"id"`
	InstructorID   string    `db:"instructor_id"`
	StartDate      time.Time `db:"start_date"`
	EndDate        time.Time `db:"end_date"`
	Status         string    `db:"status"`
	Reason         string    `db:"reason"`
	InstructorName string    `db:"instructor_name" table:"instructors" column:"name"`
	model.Metadata
}

func (l *Leave) GetJoinQuery() string {
	return fmt.Sprintf(`LEFT JOIN instructors ON instructors.id = %s.instructor_id`, TableName)
}

// Covers reports whether the leave range contains the given day.
func (l *Leave) Covers(day time.Time) bool {
	return !day.Before(l.StartDate) && !day.After(l.EndDate)
}
