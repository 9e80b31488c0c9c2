// internals/features/reports/service/reports_service.go
package service

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	assessmentModel "smartschool_backend/internals/features/school/assessments/model"
	attendanceModel "smartschool_backend/internals/features/school/attendance/model"
	gradeModel "smartschool_backend/internals/features/school/grades/model"
	groupModel "smartschool_backend/internals/features/school/groups/model"
	studentModel "smartschool_backend/internals/features/school/students/model"
)

type ReportsService struct {
	DB *gorm.DB
}

func NewReportsService(db *gorm.DB) *ReportsService {
	return &ReportsService{DB: db}
}

/* ================= School level ================= */

type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type DateCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type SchoolStatsResponse struct {
	TotalStudents        int64       `json:"total_students"`
	TotalGrades          int         `json:"total_grades"`
	StudentsByGrade      []NameCount `json:"students_by_grade"`
	StudentCountOverTime []DateCount `json:"student_count_over_time"`
	PieChartData         []NameCount `json:"pie_chart_data"`
}

func (s *ReportsService) SchoolStats() (*SchoolStatsResponse, error) {
	var grades []gradeModel.GradeModel
	if err := s.DB.Preload("Students").Order("grade_name ASC").Find(&grades).Error; err != nil {
		return nil, err
	}

	byGrade := make([]NameCount, 0, len(grades))
	for i := range grades {
		byGrade = append(byGrade, NameCount{Name: grades[i].GradeName, Count: len(grades[i].Students)})
	}

	var totalStudents int64
	if err := s.DB.Model(&studentModel.StudentModel{}).Count(&totalStudents).Error; err != nil {
		return nil, err
	}

	overTime, err := s.studentCountOverTime(12)
	if err != nil {
		return nil, err
	}

	return &SchoolStatsResponse{
		TotalStudents:        totalStudents,
		TotalGrades:          len(grades),
		StudentsByGrade:      byGrade,
		StudentCountOverTime: overTime,
		PieChartData:         byGrade,
	}, nil
}

// studentCountOverTime reports the cumulative student count at the first of
// each of the last `months` months.
func (s *ReportsService) studentCountOverTime(months int) ([]DateCount, error) {
	now := time.Now()
	data := make([]DateCount, 0, months)
	for i := months - 1; i >= 0; i-- {
		date := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		var count int64
		if err := s.DB.Model(&studentModel.StudentModel{}).
			Where("student_created_at <= ?", date).
			Count(&count).Error; err != nil {
			return nil, err
		}
		data = append(data, DateCount{Date: date.Format("2006-01-02"), Count: count})
	}
	return data, nil
}

/* ================= Grade level ================= */

type DateAverage struct {
	Date    string  `json:"date"`
	Average float64 `json:"average"`
}

type GradeStatsResponse struct {
	GradeName       string        `json:"grade_name"`
	TotalStudents   int           `json:"total_students"`
	StudentsByGroup []NameCount   `json:"students_by_group"`
	AverageValue    float64       `json:"average_value"`
	ValuesOverTime  []DateAverage `json:"values_over_time"`
}

func (s *ReportsService) GradeStats(gradeID uuid.UUID) (*GradeStatsResponse, error) {
	var grade gradeModel.GradeModel
	if err := s.DB.Preload("Students").Where("grade_id = ?", gradeID).First(&grade).Error; err != nil {
		return nil, err
	}

	var groups []groupModel.GroupModel
	if err := s.DB.Preload("Students").
		Where("group_grade_id = ?", gradeID).
		Order("group_name ASC").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	byGroup := make([]NameCount, 0, len(groups))
	for i := range groups {
		byGroup = append(byGroup, NameCount{Name: groups[i].GroupName, Count: len(groups[i].Students)})
	}

	var assessments []assessmentModel.AssessmentModel
	if err := s.DB.
		Joins("JOIN students ON students.student_id = assessments.assessment_student_id").
		Where("students.student_grade_id = ?", gradeID).
		Order("assessment_date ASC").
		Find(&assessments).Error; err != nil {
		return nil, err
	}

	avg := 0.0
	if len(assessments) > 0 {
		sum := 0.0
		for i := range assessments {
			sum += assessments[i].AssessmentValue
		}
		avg = sum / float64(len(assessments))
	}

	return &GradeStatsResponse{
		GradeName:       grade.GradeName,
		TotalStudents:   len(grade.Students),
		StudentsByGroup: byGroup,
		AverageValue:    math.Round(avg*100) / 100,
		ValuesOverTime:  averagesByDate(assessments),
	}, nil
}

func averagesByDate(assessments []assessmentModel.AssessmentModel) []DateAverage {
	grouped := make(map[string][]float64)
	for i := range assessments {
		date := time.Time(assessments[i].AssessmentDate).Format("2006-01-02")
		grouped[date] = append(grouped[date], assessments[i].AssessmentValue)
	}

	out := make([]DateAverage, 0, len(grouped))
	for date, values := range grouped {
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		out = append(out, DateAverage{Date: date, Average: sum / float64(len(values))})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

/* ================= Group level ================= */

type AttendanceBreakdown struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
}

type ValueBucket struct {
	Value int `json:"value"`
	Count int `json:"count"`
}

type GroupStatsResponse struct {
	GroupName      string              `json:"group_name"`
	TotalStudents  int                 `json:"total_students"`
	Attendance     AttendanceBreakdown `json:"attendance"`
	ValueHistogram []ValueBucket       `json:"value_histogram"`
}

func (s *ReportsService) GroupStats(groupID uuid.UUID) (*GroupStatsResponse, error) {
	var group groupModel.GroupModel
	if err := s.DB.Preload("Students").Where("group_id = ?", groupID).First(&group).Error; err != nil {
		return nil, err
	}

	var attendance []attendanceModel.AttendanceModel
	if err := s.DB.
		Joins("JOIN students ON students.student_id = attendance.attendance_student_id").
		Where("students.student_group_id = ?", groupID).
		Find(&attendance).Error; err != nil {
		return nil, err
	}

	breakdown := AttendanceBreakdown{}
	for i := range attendance {
		switch attendance[i].AttendanceStatus {
		case attendanceModel.StatusPresent:
			breakdown.Present++
		case attendanceModel.StatusAbsent:
			breakdown.Absent++
		case attendanceModel.StatusLate:
			breakdown.Late++
		}
	}

	var assessments []assessmentModel.AssessmentModel
	if err := s.DB.Where("assessment_group_id = ?", groupID).Find(&assessments).Error; err != nil {
		return nil, err
	}

	return &GroupStatsResponse{
		GroupName:      group.GroupName,
		TotalStudents:  len(group.Students),
		Attendance:     breakdown,
		ValueHistogram: valueHistogram(assessments),
	}, nil
}

func valueHistogram(assessments []assessmentModel.AssessmentModel) []ValueBucket {
	counts := make(map[int]int)
	for i := range assessments {
		counts[int(math.Floor(assessments[i].AssessmentValue))]++
	}
	out := make([]ValueBucket, 0, len(counts))
	for value, count := range counts {
		out = append(out, ValueBucket{Value: value, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

/* ================= Student level ================= */

type DatedValue struct {
	Date   string  `json:"date"`
	Value  float64 `json:"value"`
	Metric int     `json:"metric,omitempty"`
}

type DatedStatus struct {
	Date   string  `json:"date"`
	Status string  `json:"status"`
	Value  float64 `json:"value"` // present=1, late=0.5, absent=0
}

type StudentStatsResponse struct {
	StudentName      string        `json:"student_name"`
	ValuesOverTime   []DatedValue  `json:"values_over_time"`
	AttendanceByDay  []DatedStatus `json:"attendance_by_day"`
	TotalAssessments int           `json:"total_assessments"`
	TotalAttendance  int           `json:"total_attendance"`
}

func (s *ReportsService) StudentStats(studentID uuid.UUID) (*StudentStatsResponse, error) {
	var student studentModel.StudentModel
	if err := s.DB.Where("student_id = ?", studentID).First(&student).Error; err != nil {
		return nil, err
	}

	var assessments []assessmentModel.AssessmentModel
	if err := s.DB.Where("assessment_student_id = ?", studentID).
		Order("assessment_date ASC").
		Find(&assessments).Error; err != nil {
		return nil, err
	}
	values := make([]DatedValue, 0, len(assessments))
	for i := range assessments {
		values = append(values, DatedValue{
			Date:   time.Time(assessments[i].AssessmentDate).Format("2006-01-02"),
			Value:  assessments[i].AssessmentValue,
			Metric: assessments[i].AssessmentMetric,
		})
	}

	var attendance []attendanceModel.AttendanceModel
	if err := s.DB.Where("attendance_student_id = ?", studentID).
		Order("attendance_date ASC").
		Find(&attendance).Error; err != nil {
		return nil, err
	}
	byDay := make([]DatedStatus, 0, len(attendance))
	for i := range attendance {
		value := 0.0
		switch attendance[i].AttendanceStatus {
		case attendanceModel.StatusPresent:
			value = 1
		case attendanceModel.StatusLate:
			value = 0.5
		}
		byDay = append(byDay, DatedStatus{
			Date:   time.Time(attendance[i].AttendanceDate).Format("2006-01-02"),
			Status: attendance[i].AttendanceStatus,
			Value:  value,
		})
	}

	return &StudentStatsResponse{
		StudentName:      student.FullName(),
		ValuesOverTime:   values,
		AttendanceByDay:  byDay,
		TotalAssessments: len(assessments),
		TotalAttendance:  len(attendance),
	}, nil
}
