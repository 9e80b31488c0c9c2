package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "smartschool_backend/internals/features/school/grades/model"
)

/* ===================== REQUESTS ===================== */

type CreateGradeRequest struct {
	GradeName string `json:"grade_name" validate:"required,min=1,max=80"`
}

func (r CreateGradeRequest) ToModel() *model.GradeModel {
	return &model.GradeModel{
		GradeName: strings.TrimSpace(r.GradeName),
	}
}

// Update: all fields optional (partial update).
type UpdateGradeRequest struct {
	GradeName *string `json:"grade_name" validate:"omitempty,min=1,max=80"`
}

// ApplyToModel sets only the fields present in the request.
func (r *UpdateGradeRequest) ApplyToModel(m *model.GradeModel) {
	if r.GradeName != nil {
		m.GradeName = strings.TrimSpace(*r.GradeName)
	}
}

/* ===================== RESPONSES ===================== */

type GradeResponse struct {
	GradeID        uuid.UUID `json:"grade_id"`
	GradeName      string    `json:"grade_name"`
	StudentCount   int       `json:"student_count"`
	Groups         []model.GroupRef `json:"groups,omitempty"`
	GradeCreatedAt time.Time `json:"grade_created_at"`
	GradeUpdatedAt time.Time `json:"grade_updated_at"`
}

// NewGradeResponse derives student_count from the preloaded relation; the
// count is never read from a stored column.
func NewGradeResponse(m *model.GradeModel) *GradeResponse {
	return &GradeResponse{
		GradeID:        m.GradeID,
		GradeName:      m.GradeName,
		StudentCount:   len(m.Students),
		Groups:         m.Groups,
		GradeCreatedAt: m.GradeCreatedAt,
		GradeUpdatedAt: m.GradeUpdatedAt,
	}
}

func NewGradeResponses(rows []model.GradeModel) []*GradeResponse {
	resp := make([]*GradeResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, NewGradeResponse(&rows[i]))
	}
	return resp
}
