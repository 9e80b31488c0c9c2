package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "smartschool_backend/internals/databases"
	assessmentModel "smartschool_backend/internals/features/school/assessments/model"
	attendanceModel "smartschool_backend/internals/features/school/attendance/model"
	gradeModel "smartschool_backend/internals/features/school/grades/model"
	groupModel "smartschool_backend/internals/features/school/groups/model"
	studentModel "smartschool_backend/internals/features/school/students/model"
)

type reportsFixture struct {
	svc      *ReportsService
	grade    gradeModel.GradeModel
	groupA   groupModel.GroupModel
	groupB   groupModel.GroupModel
	students []studentModel.StudentModel
}

func day(t *testing.T, s string) datatypes.Date {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return datatypes.Date(parsed)
}

func newReportsFixture(t *testing.T) *reportsFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	fx := &reportsFixture{svc: NewReportsService(db)}
	fx.grade = gradeModel.GradeModel{GradeName: "Seventh"}
	require.NoError(t, db.Create(&fx.grade).Error)
	fx.groupA = groupModel.GroupModel{GroupName: "Science", GroupGradeID: fx.grade.GradeID}
	require.NoError(t, db.Create(&fx.groupA).Error)
	fx.groupB = groupModel.GroupModel{GroupName: "Arts", GroupGradeID: fx.grade.GradeID}
	require.NoError(t, db.Create(&fx.groupB).Error)

	seed := []struct {
		first, last, code string
		group             uuid.UUID
	}{
		{"Dana", "Cohen", "st-1", fx.groupA.GroupID},
		{"Yossi", "Levi", "st-2", fx.groupA.GroupID},
		{"Noa", "Peretz", "st-3", fx.groupB.GroupID},
	}
	for _, s := range seed {
		m := studentModel.StudentModel{
			StudentFirstName: s.first,
			StudentLastName:  s.last,
			StudentCode:      s.code,
			StudentGradeID:   fx.grade.GradeID,
			StudentGroupID:   s.group,
			StudentStatus:    studentModel.StatusActive,
		}
		require.NoError(t, db.Create(&m).Error)
		fx.students = append(fx.students, m)
	}
	return fx
}

func (fx *reportsFixture) addAssessment(t *testing.T, studentIdx int, value float64, date string) {
	t.Helper()
	m := assessmentModel.AssessmentModel{
		AssessmentStudentID: fx.students[studentIdx].StudentID,
		AssessmentGroupID:   fx.students[studentIdx].StudentGroupID,
		AssessmentMetric:    1,
		AssessmentValue:     value,
		AssessmentDate:      day(t, date),
	}
	require.NoError(t, fx.svc.DB.Create(&m).Error)
}

func (fx *reportsFixture) addAttendance(t *testing.T, studentIdx int, status, date string) {
	t.Helper()
	m := attendanceModel.AttendanceModel{
		AttendanceStudentID: fx.students[studentIdx].StudentID,
		AttendanceDate:      day(t, date),
		AttendanceStatus:    status,
	}
	require.NoError(t, fx.svc.DB.Create(&m).Error)
}

func TestSchoolStatsCountsByGrade(t *testing.T) {
	fx := newReportsFixture(t)

	stats, err := fx.svc.SchoolStats()
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalStudents)
	assert.Equal(t, 1, stats.TotalGrades)
	require.Len(t, stats.StudentsByGrade, 1)
	assert.Equal(t, "Seventh", stats.StudentsByGrade[0].Name)
	assert.Equal(t, 3, stats.StudentsByGrade[0].Count)
	// Students were created after the first of the current month, so every
	// sampled point in the cumulative series is still zero.
	require.Len(t, stats.StudentCountOverTime, 12)
	assert.EqualValues(t, 0, stats.StudentCountOverTime[0].Count)
	assert.EqualValues(t, 0, stats.StudentCountOverTime[11].Count)
}

func TestGradeStatsAveragesAssessments(t *testing.T) {
	fx := newReportsFixture(t)
	fx.addAssessment(t, 0, 80, "2026-03-01")
	fx.addAssessment(t, 1, 90, "2026-03-01")
	fx.addAssessment(t, 2, 70, "2026-03-08")

	stats, err := fx.svc.GradeStats(fx.grade.GradeID)
	require.NoError(t, err)
	assert.Equal(t, "Seventh", stats.GradeName)
	assert.Equal(t, 3, stats.TotalStudents)
	assert.InDelta(t, 80.0, stats.AverageValue, 0.001)

	require.Len(t, stats.StudentsByGroup, 2)
	// Ordered by group name: Arts before Science.
	assert.Equal(t, "Arts", stats.StudentsByGroup[0].Name)
	assert.Equal(t, 1, stats.StudentsByGroup[0].Count)
	assert.Equal(t, "Science", stats.StudentsByGroup[1].Name)
	assert.Equal(t, 2, stats.StudentsByGroup[1].Count)

	require.Len(t, stats.ValuesOverTime, 2)
	assert.Equal(t, "2026-03-01", stats.ValuesOverTime[0].Date)
	assert.InDelta(t, 85.0, stats.ValuesOverTime[0].Average, 0.001)
	assert.Equal(t, "2026-03-08", stats.ValuesOverTime[1].Date)
	assert.InDelta(t, 70.0, stats.ValuesOverTime[1].Average, 0.001)
}

func TestGroupStatsAttendanceAndHistogram(t *testing.T) {
	fx := newReportsFixture(t)
	fx.addAttendance(t, 0, attendanceModel.StatusPresent, "2026-03-01")
	fx.addAttendance(t, 1, attendanceModel.StatusAbsent, "2026-03-01")
	fx.addAttendance(t, 0, attendanceModel.StatusLate, "2026-03-02")
	// groupB attendance must not leak into groupA stats
	fx.addAttendance(t, 2, attendanceModel.StatusPresent, "2026-03-01")

	fx.addAssessment(t, 0, 85.5, "2026-03-01")
	fx.addAssessment(t, 1, 85.2, "2026-03-01")
	fx.addAssessment(t, 1, 92, "2026-03-08")

	stats, err := fx.svc.GroupStats(fx.groupA.GroupID)
	require.NoError(t, err)
	assert.Equal(t, "Science", stats.GroupName)
	assert.Equal(t, 2, stats.TotalStudents)
	assert.Equal(t, AttendanceBreakdown{Present: 1, Absent: 1, Late: 1}, stats.Attendance)

	require.Len(t, stats.ValueHistogram, 2)
	assert.Equal(t, ValueBucket{Value: 85, Count: 2}, stats.ValueHistogram[0])
	assert.Equal(t, ValueBucket{Value: 92, Count: 1}, stats.ValueHistogram[1])
}

func TestStudentStatsTimeline(t *testing.T) {
	fx := newReportsFixture(t)
	fx.addAssessment(t, 0, 75, "2026-03-01")
	fx.addAssessment(t, 0, 88, "2026-03-08")
	fx.addAttendance(t, 0, attendanceModel.StatusPresent, "2026-03-01")
	fx.addAttendance(t, 0, attendanceModel.StatusLate, "2026-03-02")

	stats, err := fx.svc.StudentStats(fx.students[0].StudentID)
	require.NoError(t, err)
	assert.Equal(t, "Dana Cohen", stats.StudentName)
	assert.Equal(t, 2, stats.TotalAssessments)
	assert.Equal(t, 2, stats.TotalAttendance)

	require.Len(t, stats.ValuesOverTime, 2)
	assert.Equal(t, "2026-03-01", stats.ValuesOverTime[0].Date)
	assert.InDelta(t, 75.0, stats.ValuesOverTime[0].Value, 0.001)

	require.Len(t, stats.AttendanceByDay, 2)
	assert.InDelta(t, 1.0, stats.AttendanceByDay[0].Value, 0.001)
	assert.InDelta(t, 0.5, stats.AttendanceByDay[1].Value, 0.001)
}

func TestStatsForUnknownIDsReturnNotFound(t *testing.T) {
	fx := newReportsFixture(t)

	_, err := fx.svc.GradeStats(uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = fx.svc.GroupStats(uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = fx.svc.StudentStats(uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}