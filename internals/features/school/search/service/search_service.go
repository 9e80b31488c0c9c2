package service

import (
	"strings"

	"gorm.io/gorm"

	gradeDto "smartschool_backend/internals/features/school/grades/dto"
	gradeModel "smartschool_backend/internals/features/school/grades/model"
	groupDto "smartschool_backend/internals/features/school/groups/dto"
	groupModel "smartschool_backend/internals/features/school/groups/model"
	studentDto "smartschool_backend/internals/features/school/students/dto"
	studentModel "smartschool_backend/internals/features/school/students/model"
)

const (
	maxStudentHits = 50
	maxGradeHits   = 20
	maxGroupHits   = 20
	maxTypoEdits   = 2
)

type SearchService struct {
	DB *gorm.DB
}

func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{DB: db}
}

type SearchResult struct {
	Query          string                        `json:"query"`
	CorrectedQuery string                        `json:"corrected_query,omitempty"`
	Students       []*studentDto.StudentResponse `json:"students"`
	Grades         []*gradeDto.GradeResponse     `json:"grades"`
	Groups         []*groupDto.GroupResponse     `json:"groups"`
}

// Search runs a case-insensitive substring match over student names and
// codes, grade names and group names. When nothing matches it retries once
// with the closest dictionary word within maxTypoEdits edits.
func (s *SearchService) Search(query string) (*SearchResult, error) {
	q := NormalizeQuery(query)
	res, err := s.run(q)
	if err != nil {
		return nil, err
	}
	res.Query = query

	if len(res.Students) == 0 && len(res.Grades) == 0 && len(res.Groups) == 0 {
		corrected, ok, derr := s.correctTypo(q)
		if derr != nil {
			return nil, derr
		}
		if ok {
			retried, rerr := s.run(corrected)
			if rerr != nil {
				return nil, rerr
			}
			retried.Query = query
			retried.CorrectedQuery = corrected
			return retried, nil
		}
	}
	return res, nil
}

func (s *SearchService) run(q string) (*SearchResult, error) {
	like := "%" + strings.ToLower(q) + "%"
	res := &SearchResult{}

	var students []studentModel.StudentModel
	if err := s.DB.Preload("Grade").Preload("Group").
		Where("LOWER(student_first_name) LIKE ? OR LOWER(student_last_name) LIKE ? OR LOWER(student_code) LIKE ?", like, like, like).
		Order("student_last_name ASC, student_first_name ASC").
		Limit(maxStudentHits).
		Find(&students).Error; err != nil {
		return nil, err
	}
	res.Students = studentDto.NewStudentResponses(students)

	var grades []gradeModel.GradeModel
	if err := s.DB.Preload("Groups").Preload("Students").
		Where("LOWER(grade_name) LIKE ?", like).
		Order("grade_name ASC").
		Limit(maxGradeHits).
		Find(&grades).Error; err != nil {
		return nil, err
	}
	res.Grades = gradeDto.NewGradeResponses(grades)

	var groups []groupModel.GroupModel
	if err := s.DB.Preload("Grade").Preload("Teacher").Preload("Students").
		Where("LOWER(group_name) LIKE ?", like).
		Order("group_name ASC").
		Limit(maxGroupHits).
		Find(&groups).Error; err != nil {
		return nil, err
	}
	res.Groups = groupDto.NewGroupResponses(groups)

	return res, nil
}

// correctTypo picks the dictionary word closest to q, if any is within
// maxTypoEdits. The dictionary is the set of searchable names currently in
// the database.
func (s *SearchService) correctTypo(q string) (string, bool, error) {
	words, err := s.dictionary()
	if err != nil {
		return "", false, err
	}

	best := ""
	bestDist := maxTypoEdits + 1
	for _, w := range words {
		d := Levenshtein(q, NormalizeQuery(w))
		if d > 0 && d < bestDist {
			best, bestDist = w, d
		}
	}
	return best, bestDist <= maxTypoEdits, nil
}

func (s *SearchService) dictionary() ([]string, error) {
	var words []string

	var names []string
	if err := s.DB.Model(&gradeModel.GradeModel{}).Pluck("grade_name", &names).Error; err != nil {
		return nil, err
	}
	words = append(words, names...)

	names = names[:0]
	if err := s.DB.Model(&groupModel.GroupModel{}).Pluck("group_name", &names).Error; err != nil {
		return nil, err
	}
	words = append(words, names...)

	names = names[:0]
	if err := s.DB.Model(&studentModel.StudentModel{}).Distinct().Pluck("student_first_name", &names).Error; err != nil {
		return nil, err
	}
	words = append(words, names...)

	names = names[:0]
	if err := s.DB.Model(&studentModel.StudentModel{}).Distinct().Pluck("student_last_name", &names).Error; err != nil {
		return nil, err
	}
	words = append(words, names...)

	return words, nil
}
