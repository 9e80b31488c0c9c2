package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "smartschool_backend/internals/features/school/assessments/model"
)

/* ===================== REQUESTS ===================== */

type CreateAssessmentRequest struct {
	AssessmentStudentID uuid.UUID `json:"assessment_student_id" validate:"required"`
	AssessmentGroupID   uuid.UUID `json:"assessment_group_id" validate:"required"`
	AssessmentMetric    int       `json:"assessment_metric" validate:"required,min=1,max=5"`
	AssessmentValue     float64   `json:"assessment_value" validate:"min=0,max=100"`
	AssessmentDate      string    `json:"assessment_date" validate:"required,datetime=2006-01-02"`
	AssessmentNotes     *string   `json:"assessment_notes" validate:"omitempty,max=2000"`
}

func (r CreateAssessmentRequest) ToModel() (*model.AssessmentModel, error) {
	day, err := time.Parse("2006-01-02", r.AssessmentDate)
	if err != nil {
		return nil, err
	}
	m := &model.AssessmentModel{
		AssessmentStudentID: r.AssessmentStudentID,
		AssessmentGroupID:   r.AssessmentGroupID,
		AssessmentMetric:    r.AssessmentMetric,
		AssessmentValue:     r.AssessmentValue,
		AssessmentDate:      datatypes.Date(day),
	}
	if r.AssessmentNotes != nil {
		n := strings.TrimSpace(*r.AssessmentNotes)
		if n != "" {
			m.AssessmentNotes = &n
		}
	}
	return m, nil
}

type UpdateAssessmentRequest struct {
	AssessmentMetric *int     `json:"assessment_metric" validate:"omitempty,min=1,max=5"`
	AssessmentValue  *float64 `json:"assessment_value" validate:"omitempty,min=0,max=100"`
	AssessmentDate   *string  `json:"assessment_date" validate:"omitempty,datetime=2006-01-02"`
	AssessmentNotes  *string  `json:"assessment_notes" validate:"omitempty,max=2000"`
}

// ApplyToModel sets only the fields present in the request.
func (r *UpdateAssessmentRequest) ApplyToModel(m *model.AssessmentModel) error {
	if r.AssessmentMetric != nil {
		m.AssessmentMetric = *r.AssessmentMetric
	}
	if r.AssessmentValue != nil {
		m.AssessmentValue = *r.AssessmentValue
	}
	if r.AssessmentDate != nil {
		day, err := time.Parse("2006-01-02", *r.AssessmentDate)
		if err != nil {
			return err
		}
		m.AssessmentDate = datatypes.Date(day)
	}
	if r.AssessmentNotes != nil {
		n := strings.TrimSpace(*r.AssessmentNotes)
		if n == "" {
			m.AssessmentNotes = nil
		} else {
			m.AssessmentNotes = &n
		}
	}
	return nil
}

/* ===================== RESPONSES ===================== */

type AssessmentResponse struct {
	AssessmentID        uuid.UUID `json:"assessment_id"`
	AssessmentStudentID uuid.UUID `json:"assessment_student_id"`
	AssessmentGroupID   uuid.UUID `json:"assessment_group_id"`
	AssessmentMetric    int       `json:"assessment_metric"`
	AssessmentValue     float64   `json:"assessment_value"`
	AssessmentDate      string    `json:"assessment_date"`
	AssessmentNotes     *string   `json:"assessment_notes,omitempty"`
	StudentName         string    `json:"student_name,omitempty"`
	GroupName           string    `json:"group_name,omitempty"`
	AssessmentCreatedAt time.Time `json:"assessment_created_at"`
	AssessmentUpdatedAt time.Time `json:"assessment_updated_at"`
}

func NewAssessmentResponse(m *model.AssessmentModel) *AssessmentResponse {
	resp := &AssessmentResponse{
		AssessmentID:        m.AssessmentID,
		AssessmentStudentID: m.AssessmentStudentID,
		AssessmentGroupID:   m.AssessmentGroupID,
		AssessmentMetric:    m.AssessmentMetric,
		AssessmentValue:     m.AssessmentValue,
		AssessmentDate:      time.Time(m.AssessmentDate).Format("2006-01-02"),
		AssessmentNotes:     m.AssessmentNotes,
		AssessmentCreatedAt: m.AssessmentCreatedAt,
		AssessmentUpdatedAt: m.AssessmentUpdatedAt,
	}
	if m.Student != nil {
		resp.StudentName = m.Student.FullName()
	}
	if m.Group != nil {
		resp.GroupName = m.Group.GroupName
	}
	return resp
}

func NewAssessmentResponses(rows []model.AssessmentModel) []*AssessmentResponse {
	resp := make([]*AssessmentResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, NewAssessmentResponse(&rows[i]))
	}
	return resp
}
