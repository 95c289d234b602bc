package dto

import (
	"time"

	"clts/internal/domains/booking/model"
	"clts/shared"
	"clts/shared/constant"
	gDto "clts/shared/dto"
)

// CreateBookingRequest covers both a single occurrence and a weekly series;
// when Recurring is set, RepeatUntil bounds the expansion (inclusive).
type CreateBookingRequest struct {
	LabID         string `json:"lab_id"         validate:"required,uuid"`
	InstructorID  string `json:"instructor_id"  validate:"required,uuid"`
	ModuleCode    string `json:"module_code"    validate:"required,max=15"`
	PracticalName string `json:"practical_name" validate:"omitempty,max=150"`
	BookingDate   string `json:"booking_date"   validate:"required,dateformat"`
	StartTime     string `json:"start_time"     validate:"required,timeformat"`
	EndTime       string `json:"end_time"       validate:"required,timeformat"`
	Purpose       string `json:"purpose"        validate:"omitempty,max=20"`
	Recurring     bool   `json:"recurring"      validate:"omitempty"`
	RepeatUntil   string `json:"repeat_until"   validate:"omitempty,dateformat"`
}

// ParseSchedule decodes the date and time fields. A failure here is a
// caller-side validation error, never a conflict.
func (c *CreateBookingRequest) ParseSchedule() (firstDate, start, end time.Time, err error) {
	firstDate, err = time.Parse(constant.DayFormat, c.BookingDate)
	if err != nil {
		return firstDate, start, end, err
	}

	start, err = time.Parse(constant.ClockFormat, c.StartTime)
	if err != nil {
		return firstDate, start, end, err
	}

	end, err = time.Parse(constant.ClockFormat, c.EndTime)
	if err != nil {
		return firstDate, start, end, err
	}

	return firstDate, start, end, nil
}

type UpdateBookingRequest struct {
	LabID         string `db:"lab_id"         json:"lab_id"         validate:"omitempty,uuid"`
	InstructorID  string `db:"instructor_id"  json:"instructor_id"  validate:"omitempty,uuid"`
	ModuleCode    string `db:"module_code"    json:"module_code"    validate:"omitempty,max=15"`
	PracticalName string `db:"practical_name" json:"practical_name" validate:"omitempty,max=150"`
	BookingDate   string `json:"booking_date"  validate:"omitempty,dateformat"`
	StartTime     string `json:"start_time"    validate:"omitempty,timeformat"`
	EndTime       string `json:"end_time"      validate:"omitempty,timeformat"`
	Status        string `db:"status"         json:"status"         validate:"omitempty,oneof=PENDING APPROVED CANCELLED"`
}

type BookingResponse struct {
	ID             string `json:"id"`
	SeriesID       string `json:"series_id,omitempty"`
	LabID          string `json:"lab_id"`
	LabName        string `json:"lab_name"`
	InstructorID   string `json:"instructor_id"`
	InstructorName string `json:"instructor_name"`
	ModuleCode     string `json:"module_code"`
	ModuleTitle    string `json:"module_title"`
	PracticalName  string `json:"practical_name"`
	BookingDate    string `json:"booking_date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Status         string `json:"status"`
	Purpose        string `json:"purpose"`
	OnLeave        bool   `json:"on_leave"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	if model.SeriesID != nil {
		r.SeriesID = *model.SeriesID
	}

	r.LabID = model.LabID
	r.LabName = model.LabName
	r.InstructorID = model.InstructorID
	r.InstructorName = model.InstructorName
	r.ModuleCode = model.ModuleCode
	r.ModuleTitle = model.ModuleTitle
	r.PracticalName = model.PracticalName
	r.BookingDate = model.BookingDate.Format(constant.DayFormat)
	r.StartTime = model.StartTime.Format(constant.ClockFormat)
	r.EndTime = model.EndTime.Format(constant.ClockFormat)
	r.Status = model.Status
	r.Purpose = model.Purpose
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type CreateSeriesResponse struct {
	CreatedCount int    `json:"created_count"`
	SeriesID     string `json:"series_id,omitempty"`
}
