package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "smartschool_backend/internals/features/school/attendance/model"
)

/* ===================== REQUESTS ===================== */

type CreateAttendanceRequest struct {
	AttendanceStudentID uuid.UUID `json:"attendance_student_id" validate:"required"`
	AttendanceDate      string    `json:"attendance_date" validate:"required,datetime=2006-01-02"`
	AttendanceStatus    string    `json:"attendance_status" validate:"required,oneof=present absent late"`
	AttendanceNotes     *string   `json:"attendance_notes" validate:"omitempty,max=2000"`
}

func (r CreateAttendanceRequest) ToModel() (*model.AttendanceModel, error) {
	day, err := time.Parse("2006-01-02", r.AttendanceDate)
	if err != nil {
		return nil, err
	}
	m := &model.AttendanceModel{
		AttendanceStudentID: r.AttendanceStudentID,
		AttendanceDate:      datatypes.Date(day),
		AttendanceStatus:    r.AttendanceStatus,
	}
	if r.AttendanceNotes != nil {
		n := strings.TrimSpace(*r.AttendanceNotes)
		if n != "" {
			m.AttendanceNotes = &n
		}
	}
	return m, nil
}

type UpdateAttendanceRequest struct {
	AttendanceDate   *string `json:"attendance_date" validate:"omitempty,datetime=2006-01-02"`
	AttendanceStatus *string `json:"attendance_status" validate:"omitempty,oneof=present absent late"`
	AttendanceNotes  *string `json:"attendance_notes" validate:"omitempty,max=2000"`
}

// ApplyToModel sets only the fields present in the request.
func (r *UpdateAttendanceRequest) ApplyToModel(m *model.AttendanceModel) error {
	if r.AttendanceDate != nil {
		day, err := time.Parse("2006-01-02", *r.AttendanceDate)
		if err != nil {
			return err
		}
		m.AttendanceDate = datatypes.Date(day)
	}
	if r.AttendanceStatus != nil && *r.AttendanceStatus != "" {
		m.AttendanceStatus = *r.AttendanceStatus
	}
	if r.AttendanceNotes != nil {
		n := strings.TrimSpace(*r.AttendanceNotes)
		if n == "" {
			m.AttendanceNotes = nil
		} else {
			m.AttendanceNotes = &n
		}
	}
	return nil
}

/* ===================== RESPONSES ===================== */

type AttendanceResponse struct {
	AttendanceID        uuid.UUID `json:"attendance_id"`
	AttendanceStudentID uuid.UUID `json:"attendance_student_id"`
	AttendanceDate      string    `json:"attendance_date"`
	AttendanceStatus    string    `json:"attendance_status"`
	AttendanceNotes     *string   `json:"attendance_notes,omitempty"`
	StudentName         string    `json:"student_name,omitempty"`
	AttendanceCreatedAt time.Time `json:"attendance_created_at"`
	AttendanceUpdatedAt time.Time `json:"attendance_updated_at"`
}

func NewAttendanceResponse(m *model.AttendanceModel) *AttendanceResponse {
	resp := &AttendanceResponse{
		AttendanceID:        m.AttendanceID,
		AttendanceStudentID: m.AttendanceStudentID,
		AttendanceDate:      time.Time(m.AttendanceDate).Format("2006-01-02"),
		AttendanceStatus:    m.AttendanceStatus,
		AttendanceNotes:     m.AttendanceNotes,
		AttendanceCreatedAt: m.AttendanceCreatedAt,
		AttendanceUpdatedAt: m.AttendanceUpdatedAt,
	}
	if m.Student != nil {
		resp.StudentName = m.Student.FullName()
	}
	return resp
}

func NewAttendanceResponses(rows []model.AttendanceModel) []*AttendanceResponse {
	resp := make([]*AttendanceResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, NewAttendanceResponse(&rows[i]))
	}
	return resp
}
