package route

import (
	"github.com/gofiber/fiber/v2"

	"smartschool_backend/internals/constants"
	controller "smartschool_backend/internals/features/school/grades/controller"
	service "smartschool_backend/internals/features/school/grades/service"
	authMiddleware "smartschool_backend/internals/middlewares/auth"
)

// GradeRoutes assumes r already carries the auth middleware; writes are
// additionally gated on the capability policy.
func GradeRoutes(r fiber.Router, svc *service.GradeService) {
	ctl := controller.NewGradeController(svc)

	grades := r.Group("/grades")
	grades.Get("/", ctl.FindAll)
	grades.Get("/:id", ctl.FindOne)
	grades.Post("/", authMiddleware.RequireCapability(constants.EntityGrade, constants.CapCreate), ctl.Create)
	grades.Patch("/:id", authMiddleware.RequireCapability(constants.EntityGrade, constants.CapUpdate), ctl.Update)
	grades.Delete("/:id", authMiddleware.RequireCapability(constants.EntityGrade, constants.CapDelete), ctl.Delete)
}
