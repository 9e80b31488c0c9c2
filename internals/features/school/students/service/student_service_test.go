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
	auditService "smartschool_backend/internals/features/audit/service"
	gradeModel "smartschool_backend/internals/features/school/grades/model"
	groupModel "smartschool_backend/internals/features/school/groups/model"
	dto "smartschool_backend/internals/features/school/students/dto"
)

type broadcastCall struct {
	studentID uuid.UUID
	groupID   *uuid.UUID
	gradeID   *uuid.UUID
}

type fakeBroadcaster struct {
	calls []broadcastCall
}

func (f *fakeBroadcaster) BroadcastStudentUpdate(studentID uuid.UUID, groupID, gradeID *uuid.UUID) {
	f.calls = append(f.calls, broadcastCall{studentID: studentID, groupID: groupID, gradeID: gradeID})
}

type fixture struct {
	svc     *StudentService
	fb      *fakeBroadcaster
	actorID uuid.UUID
	grade   gradeModel.GradeModel
	groupA  groupModel.GroupModel
	groupB  groupModel.GroupModel
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	fx := &fixture{
		fb:      &fakeBroadcaster{},
		actorID: uuid.New(),
		grade:   gradeModel.GradeModel{GradeName: "7th"},
	}
	require.NoError(t, db.Create(&fx.grade).Error)
	fx.groupA = groupModel.GroupModel{GroupName: "A", GroupGradeID: fx.grade.GradeID}
	fx.groupB = groupModel.GroupModel{GroupName: "B", GroupGradeID: fx.grade.GradeID}
	require.NoError(t, db.Create(&fx.groupA).Error)
	require.NoError(t, db.Create(&fx.groupB).Error)

	fx.svc = NewStudentService(db, auditService.NewRecorder(db), fx.fb)
	return fx
}

func (fx *fixture) createStudent(t *testing.T, first, last, code string, groupID uuid.UUID) uuid.UUID {
	t.Helper()
	m, err := fx.svc.Create(dto.CreateStudentRequest{
		StudentFirstName: first,
		StudentLastName:  last,
		StudentCode:      code,
		StudentGradeID:   fx.grade.GradeID,
		StudentGroupID:   groupID,
	}, fx.actorID)
	require.NoError(t, err)
	return m.StudentID
}

func TestCreateDefaultsToActiveAndAudits(t *testing.T) {
	fx := newFixture(t)

	id := fx.createStudent(t, "Dana", "Levi", "st-1", fx.groupA.GroupID)

	m, err := fx.svc.FindOne(id)
	require.NoError(t, err)
	assert.Equal(t, "active", m.StudentStatus)
	require.NotNil(t, m.Grade)
	assert.Equal(t, "7th", m.Grade.GradeName)
	require.NotNil(t, m.Group)
	assert.Equal(t, "A", m.Group.GroupName)

	rows, err := fx.svc.Audit.FindByEntity(constants.EntityStudent, id)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestFindByGradeAndGroupFilters(t *testing.T) {
	fx := newFixture(t)

	fx.createStudent(t, "Dana", "Levi", "st-1", fx.groupA.GroupID)
	fx.createStudent(t, "Noam", "Cohen", "st-2", fx.groupB.GroupID)

	byGrade, err := fx.svc.FindByGrade(fx.grade.GradeID)
	require.NoError(t, err)
	assert.Len(t, byGrade, 2)

	byGroup, err := fx.svc.FindByGroup(fx.groupA.GroupID)
	require.NoError(t, err)
	require.Len(t, byGroup, 1)
	assert.Equal(t, "st-1", byGroup[0].StudentCode)

	// Sorted by last name, then first name.
	assert.Equal(t, "Cohen", byGrade[0].StudentLastName)
	assert.Equal(t, "Levi", byGrade[1].StudentLastName)
}

func TestDuplicateCodeRejected(t *testing.T) {
	fx := newFixture(t)

	fx.createStudent(t, "Dana", "Levi", "st-1", fx.groupA.GroupID)
	_, err := fx.svc.Create(dto.CreateStudentRequest{
		StudentFirstName: "Other",
		StudentLastName:  "Student",
		StudentCode:      "st-1",
		StudentGradeID:   fx.grade.GradeID,
		StudentGroupID:   fx.groupB.GroupID,
	}, fx.actorID)
	require.Error(t, err)
}

func TestMoveBetweenGroupsBroadcastsBothRooms(t *testing.T) {
	fx := newFixture(t)

	id := fx.createStudent(t, "Dana", "Levi", "st-1", fx.groupA.GroupID)
	fx.fb.calls = nil

	newGroup := fx.groupB.GroupID
	_, err := fx.svc.Update(id, dto.UpdateStudentRequest{StudentGroupID: &newGroup}, fx.actorID)
	require.NoError(t, err)

	require.Len(t, fx.fb.calls, 2)
	require.NotNil(t, fx.fb.calls[0].groupID)
	require.NotNil(t, fx.fb.calls[1].groupID)
	assert.Equal(t, fx.groupA.GroupID, *fx.fb.calls[0].groupID)
	assert.Equal(t, fx.groupB.GroupID, *fx.fb.calls[1].groupID)

	rows, err := fx.svc.Audit.FindByEntity(constants.EntityStudent, id)
	require.NoError(t, err)
	assert.Len(t, rows, 2) // created + group change
}

func TestConcurrentStyleUpdatesLastWriteWins(t *testing.T) {
	fx := newFixture(t)

	id := fx.createStudent(t, "Dana", "Levi", "st-1", fx.groupA.GroupID)

	first := "Dina"
	_, err := fx.svc.Update(id, dto.UpdateStudentRequest{StudentFirstName: &first}, fx.actorID)
	require.NoError(t, err)

	second := "Dafna"
	_, err = fx.svc.Update(id, dto.UpdateStudentRequest{StudentFirstName: &second}, fx.actorID)
	require.NoError(t, err)

	m, err := fx.svc.FindOne(id)
	require.NoError(t, err)
	assert.Equal(t, "Dafna", m.StudentFirstName)
	assert.Equal(t, "st-1", m.StudentCode) // untouched field survives both writes
}

func TestRemoveAuditsDeletion(t *testing.T) {
	fx := newFixture(t)

	id := fx.createStudent(t, "Dana", "Levi", "st-1", fx.groupA.GroupID)
	require.NoError(t, fx.svc.Remove(id, fx.actorID))

	_, err := fx.svc.FindOne(id)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	rows, err := fx.svc.Audit.FindByEntity(constants.EntityStudent, id)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
