package route

import (
	"github.com/gofiber/fiber/v2"

	controller "smartschool_backend/internals/features/reports/controller"
	service "smartschool_backend/internals/features/reports/service"
)

func ReportsRoutes(r fiber.Router, svc *service.ReportsService) {
	ctl := controller.NewReportsController(svc)

	reports := r.Group("/reports")
	reports.Get("/school", ctl.School)
	reports.Get("/grades/:id", ctl.Grade)
	reports.Get("/groups/:id", ctl.Group)
	reports.Get("/students/:id", ctl.Student)
}
