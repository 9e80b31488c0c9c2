package service

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"smartschool_backend/internals/constants"
	database "smartschool_backend/internals/databases"
	auditModel "smartschool_backend/internals/features/audit/model"
	auditService "smartschool_backend/internals/features/audit/service"
	dto "smartschool_backend/internals/features/school/attendance/dto"
	gradeModel "smartschool_backend/internals/features/school/grades/model"
	groupModel "smartschool_backend/internals/features/school/groups/model"
	studentModel "smartschool_backend/internals/features/school/students/model"
)

type attendanceFixture struct {
	svc     *AttendanceService
	actorID uuid.UUID
	student studentModel.StudentModel
}

func newAttendanceFixture(t *testing.T) *attendanceFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	grade := gradeModel.GradeModel{GradeName: "7th"}
	require.NoError(t, db.Create(&grade).Error)
	group := groupModel.GroupModel{GroupName: "A", GroupGradeID: grade.GradeID}
	require.NoError(t, db.Create(&group).Error)

	fx := &attendanceFixture{actorID: uuid.New()}
	fx.student = studentModel.StudentModel{
		StudentFirstName: "Dana",
		StudentLastName:  "Cohen",
		StudentCode:      "st-1",
		StudentGradeID:   grade.GradeID,
		StudentGroupID:   group.GroupID,
		StudentStatus:    studentModel.StatusActive,
	}
	require.NoError(t, db.Create(&fx.student).Error)

	fx.svc = NewAttendanceService(db, auditService.NewRecorder(db))
	return fx
}

func (fx *attendanceFixture) create(t *testing.T, status, date string) uuid.UUID {
	t.Helper()
	m, err := fx.svc.Create(dto.CreateAttendanceRequest{
		AttendanceStudentID: fx.student.StudentID,
		AttendanceDate:      date,
		AttendanceStatus:    status,
	}, fx.actorID)
	require.NoError(t, err)
	return m.AttendanceID
}

func TestCreateRecordsAuditRow(t *testing.T) {
	fx := newAttendanceFixture(t)

	id := fx.create(t, "present", "2026-03-15")

	m, err := fx.svc.FindOne(id)
	require.NoError(t, err)
	assert.Equal(t, "present", m.AttendanceStatus)
	require.NotNil(t, m.Student)
	assert.Equal(t, "Dana Cohen", m.Student.FullName())

	rows, err := fx.svc.Audit.FindByEntity(constants.EntityAttendance, id)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, auditModel.FieldCreated, rows[0].AuditLogField)
}

func TestCreateRejectsMalformedDate(t *testing.T) {
	fx := newAttendanceFixture(t)

	_, err := fx.svc.Create(dto.CreateAttendanceRequest{
		AttendanceStudentID: fx.student.StudentID,
		AttendanceDate:      "15.03.2026",
		AttendanceStatus:    "present",
	}, fx.actorID)
	require.Error(t, err)
}

func TestUpdateAuditsOnlyTheChangedField(t *testing.T) {
	fx := newAttendanceFixture(t)
	id := fx.create(t, "present", "2026-03-15")

	status := "late"
	_, err := fx.svc.Update(id, dto.UpdateAttendanceRequest{AttendanceStatus: &status}, fx.actorID)
	require.NoError(t, err)

	rows, err := fx.svc.Audit.FindByEntity(constants.EntityAttendance, id)
	require.NoError(t, err)
	require.Len(t, rows, 2) // created + status

	var changeRow *auditModel.AuditLogModel
	for i := range rows {
		if rows[i].AuditLogField == "attendance_status" {
			changeRow = &rows[i]
		}
	}
	require.NotNil(t, changeRow)
	assert.Equal(t, "present", *changeRow.AuditLogOldValue)
	assert.Equal(t, "late", *changeRow.AuditLogNewValue)
}

func TestNoChangeUpdateWritesNoAuditRows(t *testing.T) {
	fx := newAttendanceFixture(t)
	id := fx.create(t, "absent", "2026-03-15")

	status := "absent"
	_, err := fx.svc.Update(id, dto.UpdateAttendanceRequest{AttendanceStatus: &status}, fx.actorID)
	require.NoError(t, err)

	rows, err := fx.svc.Audit.FindByEntity(constants.EntityAttendance, id)
	require.NoError(t, err)
	assert.Len(t, rows, 1) // only the created row
}

func TestFindByStudentFilters(t *testing.T) {
	fx := newAttendanceFixture(t)
	fx.create(t, "present", "2026-03-15")
	fx.create(t, "late", "2026-03-16")

	rows, err := fx.svc.FindByStudent(fx.student.StudentID)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	none, err := fx.svc.FindByStudent(uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRemoveAuditsPreImageAndDeletes(t *testing.T) {
	fx := newAttendanceFixture(t)
	id := fx.create(t, "present", "2026-03-15")

	require.NoError(t, fx.svc.Remove(id, fx.actorID))
	_, err := fx.svc.FindOne(id)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	rows, err := fx.svc.Audit.FindByEntity(constants.EntityAttendance, id)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	var deletedRow *auditModel.AuditLogModel
	for i := range rows {
		if rows[i].AuditLogField == auditModel.FieldDeleted {
			deletedRow = &rows[i]
		}
	}
	require.NotNil(t, deletedRow)
	require.NotNil(t, deletedRow.AuditLogOldValue)
	assert.Contains(t, *deletedRow.AuditLogOldValue, "present")
}

func TestRemoveUnknownIDIsNotFound(t *testing.T) {
	fx := newAttendanceFixture(t)
	err := fx.svc.Remove(uuid.New(), fx.actorID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
