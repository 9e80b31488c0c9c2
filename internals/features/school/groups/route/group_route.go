package route

import (
	"github.com/gofiber/fiber/v2"

	"smartschool_backend/internals/constants"
	controller "smartschool_backend/internals/features/school/groups/controller"
	service "smartschool_backend/internals/features/school/groups/service"
	authMiddleware "smartschool_backend/internals/middlewares/auth"
)

func GroupRoutes(r fiber.Router, svc *service.GroupService) {
	ctl := controller.NewGroupController(svc)

	groups := r.Group("/groups")
	groups.Get("/", ctl.FindAll)
	groups.Get("/:id", ctl.FindOne)
	groups.Post("/", authMiddleware.RequireCapability(constants.EntityGroup, constants.CapCreate), ctl.Create)
	groups.Patch("/:id", authMiddleware.RequireCapability(constants.EntityGroup, constants.CapUpdate), ctl.Update)
	groups.Delete("/:id", authMiddleware.RequireCapability(constants.EntityGroup, constants.CapDelete), ctl.Delete)
}
