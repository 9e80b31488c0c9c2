package route

import (
	"github.com/gofiber/fiber/v2"

	"smartschool_backend/internals/constants"
	controller "smartschool_backend/internals/features/school/students/controller"
	service "smartschool_backend/internals/features/school/students/service"
	authMiddleware "smartschool_backend/internals/middlewares/auth"
)

func StudentRoutes(r fiber.Router, svc *service.StudentService) {
	ctl := controller.NewStudentController(svc)

	students := r.Group("/students")
	students.Get("/", ctl.FindAll)
	students.Get("/:id", ctl.FindOne)
	students.Post("/", authMiddleware.RequireCapability(constants.EntityStudent, constants.CapCreate), ctl.Create)
	students.Patch("/:id", authMiddleware.RequireCapability(constants.EntityStudent, constants.CapUpdate), ctl.Update)
	students.Delete("/:id", authMiddleware.RequireCapability(constants.EntityStudent, constants.CapDelete), ctl.Delete)
}
