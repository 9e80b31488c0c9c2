package database

import (
	"gorm.io/gorm"

	auditModel "smartschool_backend/internals/features/audit/model"
	assessmentModel "smartschool_backend/internals/features/school/assessments/model"
	attendanceModel "smartschool_backend/internals/features/school/attendance/model"
	fileModel "smartschool_backend/internals/features/school/files/model"
	gradeModel "smartschool_backend/internals/features/school/grades/model"
	groupModel "smartschool_backend/internals/features/school/groups/model"
	studentModel "smartschool_backend/internals/features/school/students/model"
	userModel "smartschool_backend/internals/features/users/user/model"
)

// AutoMigrate creates or updates every table the application owns. Order
// follows the FK dependency chain.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel.UserModel{},
		&gradeModel.GradeModel{},
		&groupModel.GroupModel{},
		&studentModel.StudentModel{},
		&assessmentModel.AssessmentModel{},
		&attendanceModel.AttendanceModel{},
		&fileModel.FileModel{},
		&auditModel.AuditLogModel{},
	)
}
