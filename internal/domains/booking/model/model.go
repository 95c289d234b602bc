package model

import (
	"fmt"
	"time"

	"clts/shared/constant"
	"clts/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldSeriesID      = "series_id"
	FieldLabID         = "lab_id"
	FieldInstructorID  = "instructor_id"
	FieldModuleCode    = "module_code"
	FieldPracticalName = "practical_name"
	FieldBookingDate   = "booking_date"
	FieldStartTime     = "start_time"
	FieldEndTime       = "end_time"
	FieldStatus        = "status"
	FieldPurpose       = "purpose"
)

// Booking is one occupation of a lab by an instructor for a module. Rows
// created from a recurring request share a SeriesID; the grouping is logical
// only, every occurrence stays independently editable and deletable.
type Booking struct {
	ID            string    `db:"id"`
	SeriesID      *string   `db:"series_id"`
	LabID         string    `db:"lab_id"`
	InstructorID  string    `db:"instructor_id"`
	ModuleCode    string    `db:"module_code"`
	PracticalName string    `db:"practical_name"`
	BookingDate   time.Time `db:"booking_date"`
	StartTime     time.Time `db:"start_time"`
	EndTime       time.Time `db:"end_time"`
	Status        string    `db:"status"`
	Purpose       string    `db:"purpose"`

	LabName        string `db:"lab_name"        table:"labs"        column:"name"`
	InstructorName string `db:"instructor_name" table:"instructors" column:"name"`
	ModuleTitle    string `db:"module_title"    table:"modules"     column:"title"`

	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return `LEFT JOIN labs ON labs.id = bookings.lab_id
		LEFT JOIN instructors ON instructors.id = bookings.instructor_id
		LEFT JOIN modules ON modules.code = bookings.module_code`
}

// Interval renders the occupied window for conflict diagnostics.
func (b Booking) Interval() string {
	return fmt.Sprintf("%s-%s",
		b.StartTime.Format(constant.ClockFormat),
		b.EndTime.Format(constant.ClockFormat),
	)
}

// DateKey is the grouping key used by the calendar view.
func (b Booking) DateKey() string {
	return b.BookingDate.Format(constant.DayFormat)
}
