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

	database "smartschool_backend/internals/databases"
	auditModel "smartschool_backend/internals/features/audit/model"
	userModel "smartschool_backend/internals/features/users/user/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{
		UserEmail:    "manager@test.local",
		UserPassword: "irrelevant",
		UserName:     "Test Manager",
		UserRole:     "manager",
		UserIsActive: true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestDiffFields(t *testing.T) {
	oldFields := map[string]string{"a": "1", "b": "2", "c": "3"}
	newFields := map[string]string{"a": "1", "b": "9", "c": "3"}
	assert.Equal(t, []string{"b"}, DiffFields(oldFields, newFields))

	// New fields absent from the old map count as changed.
	newFields["d"] = "4"
	assert.Equal(t, []string{"b", "d"}, DiffFields(oldFields, newFields))

	assert.Empty(t, DiffFields(oldFields, oldFields))
}

func TestRecordChangesWritesOneRowPerField(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	rec := NewRecorder(db)
	entityID := uuid.New()

	oldFields := map[string]string{"grade_name": "Alef", "other": "same"}
	newFields := map[string]string{"grade_name": "Bet", "other": "same"}

	var count int
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		count, err = rec.RecordChanges(tx, "Grade", entityID, oldFields, newFields, user.UserID)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	rows, err := rec.FindByEntity("Grade", entityID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "grade_name", rows[0].AuditLogField)
	require.NotNil(t, rows[0].AuditLogOldValue)
	require.NotNil(t, rows[0].AuditLogNewValue)
	assert.Equal(t, "Alef", *rows[0].AuditLogOldValue)
	assert.Equal(t, "Bet", *rows[0].AuditLogNewValue)
	assert.Equal(t, user.UserID, rows[0].AuditLogUserID)
}

func TestRecordCreatedAndDeletedCarryWholeEntity(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	rec := NewRecorder(db)
	entityID := uuid.New()

	payload := map[string]string{"grade_name": "Gimel"}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := rec.RecordCreated(tx, "Grade", entityID, payload, user.UserID); err != nil {
			return err
		}
		return rec.RecordDeleted(tx, "Grade", entityID, payload, user.UserID)
	})
	require.NoError(t, err)

	rows, err := rec.FindByEntity("Grade", entityID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byField := map[string]auditModel.AuditLogModel{}
	for _, row := range rows {
		byField[row.AuditLogField] = row
	}

	created := byField[auditModel.FieldCreated]
	assert.Nil(t, created.AuditLogOldValue)
	require.NotNil(t, created.AuditLogNewValue)
	assert.Contains(t, *created.AuditLogNewValue, "Gimel")

	deleted := byField[auditModel.FieldDeleted]
	assert.Nil(t, deleted.AuditLogNewValue)
	require.NotNil(t, deleted.AuditLogOldValue)
	assert.Contains(t, *deleted.AuditLogOldValue, "Gimel")
}

func TestRecordRollsBackWithTransaction(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	rec := NewRecorder(db)
	entityID := uuid.New()

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := rec.RecordCreated(tx, "Grade", entityID, map[string]string{"x": "y"}, user.UserID); err != nil {
			return err
		}
		return assert.AnError
	})
	require.Error(t, err)

	rows, err := rec.FindByEntity("Grade", entityID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFindAllPreloadsUser(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	rec := NewRecorder(db)

	err := db.Transaction(func(tx *gorm.DB) error {
		return rec.RecordCreated(tx, "Grade", uuid.New(), map[string]string{"n": "1"}, user.UserID)
	})
	require.NoError(t, err)

	rows, err := rec.FindAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].User)
	assert.Equal(t, "Test Manager", rows[0].User.UserName)
}

func TestFindByEntityOrderIsStableWithinOneUpdate(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	rec := NewRecorder(db)
	entityID := uuid.New()

	oldFields := map[string]string{"student_last_name": "Levi", "student_first_name": "Noa", "student_code": "st-1"}
	newFields := map[string]string{"student_last_name": "Cohen", "student_first_name": "Dana", "student_code": "st-2"}

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := rec.RecordChanges(tx, "Student", entityID, oldFields, newFields, user.UserID)
		return err
	})
	require.NoError(t, err)

	// All three rows share the transaction's timestamp; the field name
	// must break the tie the same way on every read.
	want := []string{"student_code", "student_first_name", "student_last_name"}
	for range [3]struct{}{} {
		rows, err := rec.FindByEntity("Student", entityID)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		got := make([]string, 0, len(rows))
		for _, row := range rows {
			got = append(got, row.AuditLogField)
		}
		assert.Equal(t, want, got)
	}
}
