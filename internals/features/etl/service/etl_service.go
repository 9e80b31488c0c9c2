package service

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"smartschool_backend/internals/constants"
	auditService "smartschool_backend/internals/features/audit/service"
	gradeModel "smartschool_backend/internals/features/school/grades/model"
	groupModel "smartschool_backend/internals/features/school/groups/model"
	studentModel "smartschool_backend/internals/features/school/students/model"
)

// requiredHeaders must all be present on the first row of the first sheet,
// in any order.
var requiredHeaders = []string{"firstName", "lastName", "studentId", "gradeName", "groupName"}

var ErrNoDataRows = errors.New("spreadsheet has no data rows")

type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type ImportResult struct {
	TotalRows       int        `json:"total_rows"`
	StudentsCreated int        `json:"students_created"`
	StudentsUpdated int        `json:"students_updated"`
	GradesCreated   int        `json:"grades_created"`
	GroupsCreated   int        `json:"groups_created"`
	Errors          []RowError `json:"errors"`
}

type EtlService struct {
	DB    *gorm.DB
	Audit *auditService.Recorder
}

func NewEtlService(db *gorm.DB, audit *auditService.Recorder) *EtlService {
	return &EtlService{DB: db, Audit: audit}
}

type importRow struct {
	line      int
	firstName string
	lastName  string
	code      string
	gradeName string
	groupName string
}

// parse reads the first sheet and maps columns by header name.
func parse(r io.Reader) ([]importRow, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, ErrNoDataRows
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, ErrNoDataRows
	}

	colIdx := map[string]int{}
	for i, h := range rows[0] {
		colIdx[strings.TrimSpace(h)] = i
	}
	for _, h := range requiredHeaders {
		if _, ok := colIdx[h]; !ok {
			return nil, nil, fmt.Errorf("missing required column: %s", h)
		}
	}

	cell := func(row []string, header string) string {
		i := colIdx[header]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var parsed []importRow
	var rowErrs []RowError
	for i, row := range rows[1:] {
		line := i + 2 // 1-based, after the header
		r := importRow{
			line:      line,
			firstName: cell(row, "firstName"),
			lastName:  cell(row, "lastName"),
			code:      cell(row, "studentId"),
			gradeName: cell(row, "gradeName"),
			groupName: cell(row, "groupName"),
		}
		switch {
		case r.firstName == "":
			rowErrs = append(rowErrs, RowError{Row: line, Error: "firstName is empty"})
		case r.lastName == "":
			rowErrs = append(rowErrs, RowError{Row: line, Error: "lastName is empty"})
		case r.code == "":
			rowErrs = append(rowErrs, RowError{Row: line, Error: "studentId is empty"})
		case r.gradeName == "":
			rowErrs = append(rowErrs, RowError{Row: line, Error: "gradeName is empty"})
		case r.groupName == "":
			rowErrs = append(rowErrs, RowError{Row: line, Error: "groupName is empty"})
		default:
			parsed = append(parsed, r)
		}
	}
	return parsed, rowErrs, nil
}

// Validate parses the spreadsheet and reports per-row problems without
// touching the database.
func (s *EtlService) Validate(r io.Reader) (*ImportResult, error) {
	parsed, rowErrs, err := parse(r)
	if err != nil {
		return nil, err
	}
	return &ImportResult{
		TotalRows: len(parsed) + len(rowErrs),
		Errors:    rowErrs,
	}, nil
}

// Import loads students from a spreadsheet. Grades and groups named by a
// row are created on first sight; students are matched by code and updated
// in place. Each row commits on its own so one bad row does not sink the
// batch.
func (s *EtlService) Import(r io.Reader, actorID uuid.UUID) (*ImportResult, error) {
	parsed, rowErrs, err := parse(r)
	if err != nil {
		return nil, err
	}

	res := &ImportResult{
		TotalRows: len(parsed) + len(rowErrs),
		Errors:    rowErrs,
	}

	gradeCache := map[string]uuid.UUID{}
	groupCache := map[string]uuid.UUID{}

	for _, row := range parsed {
		var out rowOutcome
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			var err error
			out, err = s.importOne(tx, gradeCache, groupCache, row, actorID)
			return err
		})
		if err != nil {
			res.Errors = append(res.Errors, RowError{Row: row.line, Error: err.Error()})
			continue
		}

		// Caches and counters only reflect committed work: a rolled-back
		// row must not hand later rows the ID of a grade or group that
		// never made it into the database.
		gradeCache[row.gradeName] = out.gradeID
		groupCache[out.groupKey] = out.groupID
		if out.gradeCreated {
			res.GradesCreated++
		}
		if out.groupCreated {
			res.GroupsCreated++
		}
		if out.studentCreated {
			res.StudentsCreated++
		}
		if out.studentUpdated {
			res.StudentsUpdated++
		}
	}
	return res, nil
}

type rowOutcome struct {
	gradeID        uuid.UUID
	gradeCreated   bool
	groupID        uuid.UUID
	groupKey       string
	groupCreated   bool
	studentCreated bool
	studentUpdated bool
}

func (s *EtlService) importOne(tx *gorm.DB, gradeCache, groupCache map[string]uuid.UUID, row importRow, actorID uuid.UUID) (rowOutcome, error) {
	var out rowOutcome

	gradeID, created, err := s.ensureGrade(tx, gradeCache, row.gradeName, actorID)
	if err != nil {
		return out, err
	}
	out.gradeID, out.gradeCreated = gradeID, created

	groupID, created, err := s.ensureGroup(tx, groupCache, row.groupName, gradeID, actorID)
	if err != nil {
		return out, err
	}
	out.groupID, out.groupCreated = groupID, created
	out.groupKey = gradeID.String() + "/" + row.groupName

	out.studentCreated, out.studentUpdated, err = s.upsertStudent(tx, row, gradeID, groupID, actorID)
	if err != nil {
		return out, err
	}
	return out, nil
}

func (s *EtlService) ensureGrade(tx *gorm.DB, cache map[string]uuid.UUID, name string, actorID uuid.UUID) (uuid.UUID, bool, error) {
	if id, ok := cache[name]; ok {
		return id, false, nil
	}

	var grade gradeModel.GradeModel
	err := tx.Where("grade_name = ?", name).First(&grade).Error
	if err == nil {
		return grade.GradeID, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, false, err
	}

	grade = gradeModel.GradeModel{GradeName: name}
	if err := tx.Create(&grade).Error; err != nil {
		return uuid.Nil, false, err
	}
	if err := s.Audit.RecordCreated(tx, constants.EntityGrade, grade.GradeID, &grade, actorID); err != nil {
		return uuid.Nil, false, err
	}
	return grade.GradeID, true, nil
}

func (s *EtlService) ensureGroup(tx *gorm.DB, cache map[string]uuid.UUID, name string, gradeID uuid.UUID, actorID uuid.UUID) (uuid.UUID, bool, error) {
	key := gradeID.String() + "/" + name
	if id, ok := cache[key]; ok {
		return id, false, nil
	}

	var group groupModel.GroupModel
	err := tx.Where("group_name = ? AND group_grade_id = ?", name, gradeID).First(&group).Error
	if err == nil {
		return group.GroupID, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, false, err
	}

	group = groupModel.GroupModel{GroupName: name, GroupGradeID: gradeID}
	if err := tx.Create(&group).Error; err != nil {
		return uuid.Nil, false, err
	}
	if err := s.Audit.RecordCreated(tx, constants.EntityGroup, group.GroupID, &group, actorID); err != nil {
		return uuid.Nil, false, err
	}
	return group.GroupID, true, nil
}

func (s *EtlService) upsertStudent(tx *gorm.DB, row importRow, gradeID, groupID uuid.UUID, actorID uuid.UUID) (created, updated bool, _ error) {
	var existing studentModel.StudentModel
	err := tx.Where("student_code = ?", row.code).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		student := studentModel.StudentModel{
			StudentFirstName: row.firstName,
			StudentLastName:  row.lastName,
			StudentCode:      row.code,
			StudentGradeID:   gradeID,
			StudentGroupID:   groupID,
			StudentStatus:    studentModel.StatusActive,
		}
		if err := tx.Create(&student).Error; err != nil {
			return false, false, err
		}
		if err := s.Audit.RecordCreated(tx, constants.EntityStudent, student.StudentID, &student, actorID); err != nil {
			return false, false, err
		}
		return true, false, nil
	}
	if err != nil {
		return false, false, err
	}

	oldFields := existing.AuditFields()
	existing.StudentFirstName = row.firstName
	existing.StudentLastName = row.lastName
	existing.StudentGradeID = gradeID
	existing.StudentGroupID = groupID

	changed := auditService.DiffFields(oldFields, existing.AuditFields())
	if len(changed) == 0 {
		return false, false, nil
	}
	if err := tx.Save(&existing).Error; err != nil {
		return false, false, err
	}
	if _, err := s.Audit.RecordChanges(tx, constants.EntityStudent, existing.StudentID, oldFields, existing.AuditFields(), actorID); err != nil {
		return false, false, err
	}
	return false, true, nil
}
