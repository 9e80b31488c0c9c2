package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "smartschool_backend/internals/features/school/students/model"
)

/* ===================== REQUESTS ===================== */

type CreateStudentRequest struct {
	StudentFirstName string    `json:"student_first_name" validate:"required,min=1,max=80"`
	StudentLastName  string    `json:"student_last_name" validate:"required,min=1,max=80"`
	StudentCode      string    `json:"student_code" validate:"required,min=1,max=40"`
	StudentGradeID   uuid.UUID `json:"student_grade_id" validate:"required"`
	StudentGroupID   uuid.UUID `json:"student_group_id" validate:"required"`
	StudentStatus    *string   `json:"student_status" validate:"omitempty,oneof=active inactive graduated"`
	StudentImageURL  *string   `json:"student_image_url" validate:"omitempty,max=2048"`
}

func (r CreateStudentRequest) ToModel() *model.StudentModel {
	m := &model.StudentModel{
		StudentFirstName: strings.TrimSpace(r.StudentFirstName),
		StudentLastName:  strings.TrimSpace(r.StudentLastName),
		StudentCode:      strings.TrimSpace(r.StudentCode),
		StudentGradeID:   r.StudentGradeID,
		StudentGroupID:   r.StudentGroupID,
		StudentStatus:    model.StatusActive,
	}
	if r.StudentStatus != nil && *r.StudentStatus != "" {
		m.StudentStatus = *r.StudentStatus
	}
	if r.StudentImageURL != nil {
		u := strings.TrimSpace(*r.StudentImageURL)
		if u != "" {
			m.StudentImageURL = &u
		}
	}
	return m
}

// Update: all fields optional (partial update).
type UpdateStudentRequest struct {
	StudentFirstName *string    `json:"student_first_name" validate:"omitempty,min=1,max=80"`
	StudentLastName  *string    `json:"student_last_name" validate:"omitempty,min=1,max=80"`
	StudentCode      *string    `json:"student_code" validate:"omitempty,min=1,max=40"`
	StudentGradeID   *uuid.UUID `json:"student_grade_id" validate:"omitempty"`
	StudentGroupID   *uuid.UUID `json:"student_group_id" validate:"omitempty"`
	StudentStatus    *string    `json:"student_status" validate:"omitempty,oneof=active inactive graduated"`
	StudentImageURL  *string    `json:"student_image_url" validate:"omitempty,max=2048"`
}

// ApplyToModel sets only the fields present in the request.
func (r *UpdateStudentRequest) ApplyToModel(m *model.StudentModel) {
	if r.StudentFirstName != nil {
		m.StudentFirstName = strings.TrimSpace(*r.StudentFirstName)
	}
	if r.StudentLastName != nil {
		m.StudentLastName = strings.TrimSpace(*r.StudentLastName)
	}
	if r.StudentCode != nil {
		m.StudentCode = strings.TrimSpace(*r.StudentCode)
	}
	if r.StudentGradeID != nil {
		m.StudentGradeID = *r.StudentGradeID
	}
	if r.StudentGroupID != nil {
		m.StudentGroupID = *r.StudentGroupID
	}
	if r.StudentStatus != nil && *r.StudentStatus != "" {
		m.StudentStatus = *r.StudentStatus
	}
	if r.StudentImageURL != nil {
		u := strings.TrimSpace(*r.StudentImageURL)
		if u == "" {
			m.StudentImageURL = nil
		} else {
			m.StudentImageURL = &u
		}
	}
}

/* ===================== RESPONSES ===================== */

type StudentResponse struct {
	StudentID        uuid.UUID `json:"student_id"`
	StudentFirstName string    `json:"student_first_name"`
	StudentLastName  string    `json:"student_last_name"`
	StudentCode      string    `json:"student_code"`
	StudentGradeID   uuid.UUID `json:"student_grade_id"`
	StudentGroupID   uuid.UUID `json:"student_group_id"`
	StudentStatus    string    `json:"student_status"`
	StudentImageURL  *string   `json:"student_image_url,omitempty"`
	GradeName        string    `json:"grade_name,omitempty"`
	GroupName        string    `json:"group_name,omitempty"`
	StudentCreatedAt time.Time `json:"student_created_at"`
	StudentUpdatedAt time.Time `json:"student_updated_at"`
}

func NewStudentResponse(m *model.StudentModel) *StudentResponse {
	resp := &StudentResponse{
		StudentID:        m.StudentID,
		StudentFirstName: m.StudentFirstName,
		StudentLastName:  m.StudentLastName,
		StudentCode:      m.StudentCode,
		StudentGradeID:   m.StudentGradeID,
		StudentGroupID:   m.StudentGroupID,
		StudentStatus:    m.StudentStatus,
		StudentImageURL:  m.StudentImageURL,
		StudentCreatedAt: m.StudentCreatedAt,
		StudentUpdatedAt: m.StudentUpdatedAt,
	}
	if m.Grade != nil {
		resp.GradeName = m.Grade.GradeName
	}
	if m.Group != nil {
		resp.GroupName = m.Group.GroupName
	}
	return resp
}

func NewStudentResponses(rows []model.StudentModel) []*StudentResponse {
	resp := make([]*StudentResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, NewStudentResponse(&rows[i]))
	}
	return resp
}
