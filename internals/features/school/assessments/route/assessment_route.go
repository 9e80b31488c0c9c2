package route

import (
	"github.com/gofiber/fiber/v2"

	"smartschool_backend/internals/constants"
	controller "smartschool_backend/internals/features/school/assessments/controller"
	service "smartschool_backend/internals/features/school/assessments/service"
	authMiddleware "smartschool_backend/internals/middlewares/auth"
)

func AssessmentRoutes(r fiber.Router, svc *service.AssessmentService) {
	ctl := controller.NewAssessmentController(svc)

	assessments := r.Group("/assessments")
	assessments.Get("/", ctl.FindAll)
	assessments.Get("/:id", ctl.FindOne)
	assessments.Post("/", authMiddleware.RequireCapability(constants.EntityAssessment, constants.CapCreate), ctl.Create)
	assessments.Patch("/:id", authMiddleware.RequireCapability(constants.EntityAssessment, constants.CapUpdate), ctl.Update)
	assessments.Delete("/:id", authMiddleware.RequireCapability(constants.EntityAssessment, constants.CapDelete), ctl.Delete)
}
