package service

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "smartschool_backend/internals/databases"
	gradeModel "smartschool_backend/internals/features/school/grades/model"
	groupModel "smartschool_backend/internals/features/school/groups/model"
	studentModel "smartschool_backend/internals/features/school/students/model"
)

func newSearchFixture(t *testing.T) *SearchService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	grade := gradeModel.GradeModel{GradeName: "Seventh"}
	require.NoError(t, db.Create(&grade).Error)
	group := groupModel.GroupModel{GroupName: "Science", GroupGradeID: grade.GradeID}
	require.NoError(t, db.Create(&group).Error)

	students := []studentModel.StudentModel{
		{StudentFirstName: "Dana", StudentLastName: "Cohen", StudentCode: "st-1",
			StudentGradeID: grade.GradeID, StudentGroupID: group.GroupID, StudentStatus: studentModel.StatusActive},
		{StudentFirstName: "Noam", StudentLastName: "Levi", StudentCode: "st-2",
			StudentGradeID: grade.GradeID, StudentGroupID: group.GroupID, StudentStatus: studentModel.StatusActive},
	}
	for i := range students {
		require.NoError(t, db.Create(&students[i]).Error)
	}

	return NewSearchService(db)
}

func TestSearchMatchesAcrossCollections(t *testing.T) {
	svc := newSearchFixture(t)

	res, err := svc.Search("cohen")
	require.NoError(t, err)
	require.Len(t, res.Students, 1)
	assert.Equal(t, "Cohen", res.Students[0].StudentLastName)
	assert.Empty(t, res.CorrectedQuery)

	res, err = svc.Search("seven")
	require.NoError(t, err)
	require.Len(t, res.Grades, 1)
	assert.Equal(t, "Seventh", res.Grades[0].GradeName)

	res, err = svc.Search("scien")
	require.NoError(t, err)
	require.Len(t, res.Groups, 1)
	assert.Equal(t, "Science", res.Groups[0].GroupName)
}

func TestSearchMatchesStudentCode(t *testing.T) {
	svc := newSearchFixture(t)

	res, err := svc.Search("st-2")
	require.NoError(t, err)
	require.Len(t, res.Students, 1)
	assert.Equal(t, "Levi", res.Students[0].StudentLastName)
}

func TestSearchCorrectsCloseTypo(t *testing.T) {
	svc := newSearchFixture(t)

	// "Kohen" is one edit from "Cohen": no direct hit, corrected retry.
	res, err := svc.Search("Kohen")
	require.NoError(t, err)
	assert.Equal(t, "Kohen", res.Query)
	assert.Equal(t, "Cohen", res.CorrectedQuery)
	require.Len(t, res.Students, 1)
	assert.Equal(t, "Cohen", res.Students[0].StudentLastName)
}

func TestSearchGivesUpOnDistantQuery(t *testing.T) {
	svc := newSearchFixture(t)

	res, err := svc.Search("zzzzzzzzzz")
	require.NoError(t, err)
	assert.Empty(t, res.CorrectedQuery)
	assert.Empty(t, res.Students)
	assert.Empty(t, res.Grades)
	assert.Empty(t, res.Groups)
}
