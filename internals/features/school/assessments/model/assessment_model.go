package model

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	groupModel "smartschool_backend/internals/features/school/groups/model"
	studentModel "smartschool_backend/internals/features/school/students/model"
)

// Metric categories are a fixed enumeration of 5 kinds.
const (
	MetricMin = 1
	MetricMax = 5
)

func IsValidMetric(m int) bool {
	return m >= MetricMin && m <= MetricMax
}

// AssessmentModel maps table `assessments`.
type AssessmentModel struct {
	AssessmentID        uuid.UUID      `json:"assessment_id" gorm:"column:assessment_id;type:uuid;primaryKey"`
	AssessmentStudentID uuid.UUID      `json:"assessment_student_id" gorm:"column:assessment_student_id;type:uuid;not null;index"`
	AssessmentGroupID   uuid.UUID      `json:"assessment_group_id" gorm:"column:assessment_group_id;type:uuid;not null;index"`
	AssessmentMetric    int            `json:"assessment_metric" gorm:"column:assessment_metric;not null"`
	AssessmentValue     float64        `json:"assessment_value" gorm:"column:assessment_value;type:decimal(5,2);not null"`
	AssessmentDate      datatypes.Date `json:"assessment_date" gorm:"column:assessment_date;not null"`
	AssessmentNotes     *string        `json:"assessment_notes,omitempty" gorm:"column:assessment_notes;type:text"`

	AssessmentCreatedAt time.Time `json:"assessment_created_at" gorm:"column:assessment_created_at;autoCreateTime"`
	AssessmentUpdatedAt time.Time `json:"assessment_updated_at" gorm:"column:assessment_updated_at;autoUpdateTime"`

	Student *studentModel.StudentModel `json:"student,omitempty" gorm:"foreignKey:AssessmentStudentID;references:StudentID"`
	Group   *groupModel.GroupModel     `json:"group,omitempty" gorm:"foreignKey:AssessmentGroupID;references:GroupID"`
}

func (AssessmentModel) TableName() string {
	return "assessments"
}

func (m *AssessmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.AssessmentID == uuid.Nil {
		m.AssessmentID = uuid.New()
	}
	return nil
}

// AuditFields enumerates the scalar columns tracked by the audit diff.
func (m *AssessmentModel) AuditFields() map[string]string {
	notes := ""
	if m.AssessmentNotes != nil {
		notes = *m.AssessmentNotes
	}
	return map[string]string{
		"assessment_student_id": m.AssessmentStudentID.String(),
		"assessment_group_id":   m.AssessmentGroupID.String(),
		"assessment_metric":     strconv.Itoa(m.AssessmentMetric),
		"assessment_value":      strconv.FormatFloat(m.AssessmentValue, 'f', 2, 64),
		"assessment_date":       time.Time(m.AssessmentDate).Format("2006-01-02"),
		"assessment_notes":      notes,
	}
}
