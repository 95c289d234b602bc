package dto

import (
	"time"

	"clts/internal/domains/leave/model"
	"clts/shared"
	"clts/shared/constant"
	gDto "clts/shared/dto"
)

// RequestLeaveRequest creates a leave. InstructorID is optional: privileged
// callers may file on behalf of another instructor, everyone else files for
// themselves. EndDate defaults to StartDate when omitted.
type RequestLeaveRequest struct {
	InstructorID string `json:"instructor_id" validate:"omitempty,uuid"`
	StartDate    string `json:"start_date"    validate:"required,dateformat"`
	EndDate      string `json:"end_date"      validate:"omitempty,dateformat"`
	Reason       string `json:"reason"        validate:"omitempty,max=200"`
}

// ParseRange decodes the date range, applying the single-day default.
func (r *RequestLeaveRequest) ParseRange() (start, end time.Time, err error) {
	start, err = time.Parse(constant.DayFormat, r.StartDate)
	if err != nil {
		return start, end, err
	}

	if r.EndDate == "" {
		return start, start, nil
	}

	end, err = time.Parse(constant.DayFormat, r.EndDate)
	if err != nil {
		return start, end, err
	}

	return start, end, nil
}

type LeaveResponse struct {
	ID             string `json:"id"`
	InstructorID   string `json:"instructor_id"`
	InstructorName string `json:"instructor_name"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Status         string `json:"status"`
	Reason         string `json:"reason"`
	gDto.Metadata
}

func (r *LeaveResponse) FromModel(model model.Leave) {
	r.ID = model.ID
	r.InstructorID = model.InstructorID
	r.InstructorName = model.InstructorName
	r.StartDate = model.StartDate.Format(constant.DayFormat)
	r.EndDate = model.EndDate.Format(constant.DayFormat)
	r.Status = model.Status
	r.Reason = model.Reason
	r.Metadata.FromModel(model.Metadata)
}

type GetLeavesResponse struct {
	Leaves    []LeaveResponse `json:"leaves"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetLeavesResponse) FromModels(models []model.Leave, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Leaves = make([]LeaveResponse, len(models))
	for i, mod := range models {
		r.Leaves[i].FromModel(mod)
	}
}
