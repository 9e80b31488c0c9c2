package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "smartschool_backend/internals/features/school/groups/model"
)

/* ===================== REQUESTS ===================== */

type CreateGroupRequest struct {
	GroupName        string     `json:"group_name" validate:"required,min=1,max=120"`
	GroupGradeID     uuid.UUID  `json:"group_grade_id" validate:"required"`
	GroupTeacherID   *uuid.UUID `json:"group_teacher_id" validate:"omitempty"`
	GroupDescription *string    `json:"group_description" validate:"omitempty"`
}

func (r CreateGroupRequest) ToModel() *model.GroupModel {
	m := &model.GroupModel{
		GroupName:      strings.TrimSpace(r.GroupName),
		GroupGradeID:   r.GroupGradeID,
		GroupTeacherID: r.GroupTeacherID,
	}
	if r.GroupDescription != nil {
		d := strings.TrimSpace(*r.GroupDescription)
		if d != "" {
			m.GroupDescription = &d
		}
	}
	return m
}

// Update: all fields optional (partial update).
type UpdateGroupRequest struct {
	GroupName        *string    `json:"group_name" validate:"omitempty,min=1,max=120"`
	GroupGradeID     *uuid.UUID `json:"group_grade_id" validate:"omitempty"`
	GroupTeacherID   *uuid.UUID `json:"group_teacher_id" validate:"omitempty"`
	GroupDescription *string    `json:"group_description" validate:"omitempty"`
}

// ApplyToModel sets only the fields present in the request.
func (r *UpdateGroupRequest) ApplyToModel(m *model.GroupModel) {
	if r.GroupName != nil {
		m.GroupName = strings.TrimSpace(*r.GroupName)
	}
	if r.GroupGradeID != nil {
		m.GroupGradeID = *r.GroupGradeID
	}
	if r.GroupTeacherID != nil {
		m.GroupTeacherID = r.GroupTeacherID
	}
	if r.GroupDescription != nil {
		d := strings.TrimSpace(*r.GroupDescription)
		if d == "" {
			m.GroupDescription = nil
		} else {
			m.GroupDescription = &d
		}
	}
}

/* ===================== RESPONSES ===================== */

type GroupResponse struct {
	GroupID          uuid.UUID  `json:"group_id"`
	GroupName        string     `json:"group_name"`
	GroupGradeID     uuid.UUID  `json:"group_grade_id"`
	GroupTeacherID   *uuid.UUID `json:"group_teacher_id,omitempty"`
	GroupDescription *string    `json:"group_description,omitempty"`
	StudentCount     int        `json:"student_count"`
	GradeName        string     `json:"grade_name,omitempty"`
	TeacherName      string     `json:"teacher_name,omitempty"`
	GroupCreatedAt   time.Time  `json:"group_created_at"`
	GroupUpdatedAt   time.Time  `json:"group_updated_at"`
}

// NewGroupResponse derives student_count from the preloaded relation.
func NewGroupResponse(m *model.GroupModel) *GroupResponse {
	resp := &GroupResponse{
		GroupID:          m.GroupID,
		GroupName:        m.GroupName,
		GroupGradeID:     m.GroupGradeID,
		GroupTeacherID:   m.GroupTeacherID,
		GroupDescription: m.GroupDescription,
		StudentCount:     len(m.Students),
		GroupCreatedAt:   m.GroupCreatedAt,
		GroupUpdatedAt:   m.GroupUpdatedAt,
	}
	if m.Grade != nil {
		resp.GradeName = m.Grade.GradeName
	}
	if m.Teacher != nil {
		resp.TeacherName = m.Teacher.UserName
	}
	return resp
}

func NewGroupResponses(rows []model.GroupModel) []*GroupResponse {
	resp := make([]*GroupResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, NewGroupResponse(&rows[i]))
	}
	return resp
}
