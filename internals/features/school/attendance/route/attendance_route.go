package route

import (
	"github.com/gofiber/fiber/v2"

	"smartschool_backend/internals/constants"
	controller "smartschool_backend/internals/features/school/attendance/controller"
	service "smartschool_backend/internals/features/school/attendance/service"
	authMiddleware "smartschool_backend/internals/middlewares/auth"
)

func AttendanceRoutes(r fiber.Router, svc *service.AttendanceService) {
	ctl := controller.NewAttendanceController(svc)

	attendance := r.Group("/attendance")
	attendance.Get("/", ctl.FindAll)
	attendance.Get("/:id", ctl.FindOne)
	attendance.Post("/", authMiddleware.RequireCapability(constants.EntityAttendance, constants.CapCreate), ctl.Create)
	attendance.Patch("/:id", authMiddleware.RequireCapability(constants.EntityAttendance, constants.CapUpdate), ctl.Update)
	attendance.Delete("/:id", authMiddleware.RequireCapability(constants.EntityAttendance, constants.CapDelete), ctl.Delete)
}
