package route

import (
	"github.com/gofiber/fiber/v2"

	"smartschool_backend/internals/constants"
	controller "smartschool_backend/internals/features/users/user/controller"
	service "smartschool_backend/internals/features/users/user/service"
	authMiddleware "smartschool_backend/internals/middlewares/auth"
)

// UserRoutes mounts account administration. /me is open to any session,
// everything else is manager territory.
func UserRoutes(r fiber.Router, svc *service.UserService) {
	ctl := controller.NewUserController(svc)

	users := r.Group("/users")
	users.Get("/me", ctl.Me)

	managerOnly := authMiddleware.OnlyRoles("User administration is restricted to managers", constants.ManagerOnly...)
	users.Get("/", managerOnly, ctl.FindAll)
	users.Get("/:id", managerOnly, ctl.FindOne)
	users.Post("/", authMiddleware.RequireCapability(constants.EntityUser, constants.CapCreate), ctl.Create)
	users.Patch("/:id", authMiddleware.RequireCapability(constants.EntityUser, constants.CapUpdate), ctl.Update)
	users.Delete("/:id", authMiddleware.RequireCapability(constants.EntityUser, constants.CapDelete), ctl.Delete)
}
