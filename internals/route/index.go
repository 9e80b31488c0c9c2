// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditRoute "smartschool_backend/internals/features/audit/route"
	auditService "smartschool_backend/internals/features/audit/service"
	etlRoute "smartschool_backend/internals/features/etl/route"
	etlService "smartschool_backend/internals/features/etl/service"
	realtimeRoute "smartschool_backend/internals/features/realtime/route"
	realtime "smartschool_backend/internals/features/realtime/service"
	reportsRoute "smartschool_backend/internals/features/reports/route"
	reportsService "smartschool_backend/internals/features/reports/service"
	assessmentRoute "smartschool_backend/internals/features/school/assessments/route"
	assessmentService "smartschool_backend/internals/features/school/assessments/service"
	attendanceRoute "smartschool_backend/internals/features/school/attendance/route"
	attendanceService "smartschool_backend/internals/features/school/attendance/service"
	fileRoute "smartschool_backend/internals/features/school/files/route"
	fileService "smartschool_backend/internals/features/school/files/service"
	gradeRoute "smartschool_backend/internals/features/school/grades/route"
	gradeService "smartschool_backend/internals/features/school/grades/service"
	groupRoute "smartschool_backend/internals/features/school/groups/route"
	groupService "smartschool_backend/internals/features/school/groups/service"
	searchRoute "smartschool_backend/internals/features/school/search/route"
	searchService "smartschool_backend/internals/features/school/search/service"
	studentRoute "smartschool_backend/internals/features/school/students/route"
	studentService "smartschool_backend/internals/features/school/students/service"
	authRoute "smartschool_backend/internals/features/users/auth/route"
	userRoute "smartschool_backend/internals/features/users/user/route"
	userService "smartschool_backend/internals/features/users/user/service"
	authMiddleware "smartschool_backend/internals/middlewares/auth"
)

var startTime time.Time

// SetupRoutes builds the service graph and mounts everything under /api.
// The public group carries no session; api requires a valid JWT.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	recorder := auditService.NewRecorder(db)
	hub := realtime.NewHub(db)
	reports := reportsService.NewReportsService(db)

	users := userService.NewUserService(db, recorder)
	grades := gradeService.NewGradeService(db, recorder, hub)
	groups := groupService.NewGroupService(db, recorder, hub)
	students := studentService.NewStudentService(db, recorder, hub)
	assessments := assessmentService.NewAssessmentService(db, recorder)
	attendance := attendanceService.NewAttendanceService(db, recorder)
	files := fileService.NewFileService(db, recorder)
	search := searchService.NewSearchService(db)
	etl := etlService.NewEtlService(db, recorder)

	BaseRoutes(app, db)

	// Public routes must be mounted BEFORE the auth middleware group is
	// registered: Fiber applies group middleware to every /api route added
	// after it, so registration order is what keeps login and the signed
	// download session-free.
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api")

	log.Println("[INFO] Mounting Auth routes...")
	authRoute.AuthRoutes(public, users)

	log.Println("[INFO] Mounting public File routes...")
	fileRoute.FilePublicRoutes(public, files)

	log.Println("[INFO] Setting up PRIVATE group...")
	api := app.Group("/api", authMiddleware.AuthMiddleware(db))

	log.Println("[INFO] Mounting User routes...")
	userRoute.UserRoutes(api, users)

	log.Println("[INFO] Mounting School routes...")
	gradeRoute.GradeRoutes(api, grades)
	groupRoute.GroupRoutes(api, groups)
	studentRoute.StudentRoutes(api, students)
	assessmentRoute.AssessmentRoutes(api, assessments)
	attendanceRoute.AttendanceRoutes(api, attendance)
	fileRoute.FileRoutes(api, files)
	searchRoute.SearchRoutes(api, search)

	log.Println("[INFO] Mounting Reports routes...")
	reportsRoute.ReportsRoutes(api, reports)

	log.Println("[INFO] Mounting Audit routes...")
	auditRoute.AuditLogRoutes(api, recorder)

	log.Println("[INFO] Mounting ETL routes...")
	etlRoute.EtlRoutes(api, etl)

	log.Println("[INFO] Mounting Realtime routes...")
	realtimeRoute.RealtimeRoutes(api, hub, reports)
}
