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
	dto "smartschool_backend/internals/features/school/grades/dto"
	groupModel "smartschool_backend/internals/features/school/groups/model"
	studentModel "smartschool_backend/internals/features/school/students/model"
)

type fakeBroadcaster struct {
	gradeIDs []uuid.UUID
}

func (f *fakeBroadcaster) BroadcastGradeUpdate(gradeID uuid.UUID) {
	f.gradeIDs = append(f.gradeIDs, gradeID)
}

func newTestService(t *testing.T) (*GradeService, *fakeBroadcaster, uuid.UUID) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	fb := &fakeBroadcaster{}
	svc := NewGradeService(db, auditService.NewRecorder(db), fb)
	return svc, fb, uuid.New()
}

func TestCreateWritesAuditRowAndBroadcasts(t *testing.T) {
	svc, fb, actorID := newTestService(t)

	m, err := svc.Create(dto.CreateGradeRequest{GradeName: "  7th  "}, actorID)
	require.NoError(t, err)
	assert.Equal(t, "7th", m.GradeName)
	assert.NotEqual(t, uuid.Nil, m.GradeID)

	rows, err := svc.Audit.FindByEntity(constants.EntityGrade, m.GradeID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, auditModel.FieldCreated, rows[0].AuditLogField)
	assert.Equal(t, actorID, rows[0].AuditLogUserID)

	assert.Equal(t, []uuid.UUID{m.GradeID}, fb.gradeIDs)
}

func TestUpdateAuditsOnlyChangedFields(t *testing.T) {
	svc, _, actorID := newTestService(t)

	m, err := svc.Create(dto.CreateGradeRequest{GradeName: "8th"}, actorID)
	require.NoError(t, err)

	name := "9th"
	updated, err := svc.Update(m.GradeID, dto.UpdateGradeRequest{GradeName: &name}, actorID)
	require.NoError(t, err)
	assert.Equal(t, "9th", updated.GradeName)

	rows, err := svc.Audit.FindByEntity(constants.EntityGrade, m.GradeID)
	require.NoError(t, err)
	require.Len(t, rows, 2) // created + one field change

	var change *auditModel.AuditLogModel
	for i := range rows {
		if rows[i].AuditLogField == "grade_name" {
			change = &rows[i]
		}
	}
	require.NotNil(t, change)
	assert.Equal(t, "8th", *change.AuditLogOldValue)
	assert.Equal(t, "9th", *change.AuditLogNewValue)
}

func TestUpdateWithNoChangesWritesNoAuditRows(t *testing.T) {
	svc, _, actorID := newTestService(t)

	m, err := svc.Create(dto.CreateGradeRequest{GradeName: "10th"}, actorID)
	require.NoError(t, err)

	same := "10th"
	_, err = svc.Update(m.GradeID, dto.UpdateGradeRequest{GradeName: &same}, actorID)
	require.NoError(t, err)

	rows, err := svc.Audit.FindByEntity(constants.EntityGrade, m.GradeID)
	require.NoError(t, err)
	assert.Len(t, rows, 1) // only the creation event
}

func TestRemoveRecordsPreImage(t *testing.T) {
	svc, _, actorID := newTestService(t)

	m, err := svc.Create(dto.CreateGradeRequest{GradeName: "11th"}, actorID)
	require.NoError(t, err)
	require.NoError(t, svc.Remove(m.GradeID, actorID))

	_, err = svc.FindOne(m.GradeID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	rows, err := svc.Audit.FindByEntity(constants.EntityGrade, m.GradeID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	var deleted *auditModel.AuditLogModel
	for i := range rows {
		if rows[i].AuditLogField == auditModel.FieldDeleted {
			deleted = &rows[i]
		}
	}
	require.NotNil(t, deleted)
	require.NotNil(t, deleted.AuditLogOldValue)
	assert.Contains(t, *deleted.AuditLogOldValue, "11th")
	assert.Nil(t, deleted.AuditLogNewValue)
}

func TestRemoveUnknownGradeWritesNoAuditRow(t *testing.T) {
	svc, fb, actorID := newTestService(t)

	id := uuid.New()
	err := svc.Remove(id, actorID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	rows, err := svc.Audit.FindByEntity(constants.EntityGrade, id)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Empty(t, fb.gradeIDs)
}

func TestStudentCountDerivedFromRelation(t *testing.T) {
	svc, _, actorID := newTestService(t)

	m, err := svc.Create(dto.CreateGradeRequest{GradeName: "12th"}, actorID)
	require.NoError(t, err)

	group := groupModel.GroupModel{GroupName: "A", GroupGradeID: m.GradeID}
	require.NoError(t, svc.DB.Create(&group).Error)
	for _, code := range []string{"s1", "s2", "s3"} {
		require.NoError(t, svc.DB.Create(&studentModel.StudentModel{
			StudentFirstName: "First",
			StudentLastName:  "Last",
			StudentCode:      code,
			StudentGradeID:   m.GradeID,
			StudentGroupID:   group.GroupID,
			StudentStatus:    studentModel.StatusActive,
		}).Error)
	}

	loaded, err := svc.FindOne(m.GradeID)
	require.NoError(t, err)
	resp := dto.NewGradeResponse(loaded)
	assert.Equal(t, 3, resp.StudentCount)
	assert.Len(t, resp.Groups, 1)
}
