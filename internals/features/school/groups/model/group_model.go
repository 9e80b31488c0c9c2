package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	gradeModel "smartschool_backend/internals/features/school/grades/model"
	userModel "smartschool_backend/internals/features/users/user/model"
)

// GroupModel maps table `groups` (a class section inside a grade).
type GroupModel struct {
	GroupID          uuid.UUID  `json:"group_id" gorm:"column:group_id;type:uuid;primaryKey"`
	GroupName        string     `json:"group_name" gorm:"column:group_name;type:varchar(120);not null"`
	GroupGradeID     uuid.UUID  `json:"group_grade_id" gorm:"column:group_grade_id;type:uuid;not null;index"`
	GroupTeacherID   *uuid.UUID `json:"group_teacher_id,omitempty" gorm:"column:group_teacher_id;type:uuid"`
	GroupDescription *string    `json:"group_description,omitempty" gorm:"column:group_description;type:text"`

	GroupCreatedAt time.Time `json:"group_created_at" gorm:"column:group_created_at;autoCreateTime"`
	GroupUpdatedAt time.Time `json:"group_updated_at" gorm:"column:group_updated_at;autoUpdateTime"`

	Grade    *gradeModel.GradeModel  `json:"grade,omitempty" gorm:"foreignKey:GroupGradeID;references:GradeID"`
	Teacher  *userModel.UserModel    `json:"teacher,omitempty" gorm:"foreignKey:GroupTeacherID;references:UserID"`
	Students []gradeModel.StudentRef `json:"students,omitempty" gorm:"foreignKey:StudentGroupID;references:GroupID"`
}

func (GroupModel) TableName() string {
	return "groups"
}

func (m *GroupModel) BeforeCreate(tx *gorm.DB) error {
	if m.GroupID == uuid.Nil {
		m.GroupID = uuid.New()
	}
	return nil
}

// AuditFields enumerates the scalar columns tracked by the audit diff.
func (m *GroupModel) AuditFields() map[string]string {
	fields := map[string]string{
		"group_name":     m.GroupName,
		"group_grade_id": m.GroupGradeID.String(),
	}
	if m.GroupTeacherID != nil {
		fields["group_teacher_id"] = m.GroupTeacherID.String()
	} else {
		fields["group_teacher_id"] = ""
	}
	if m.GroupDescription != nil {
		fields["group_description"] = *m.GroupDescription
	} else {
		fields["group_description"] = ""
	}
	return fields
}
