package route

import (
	"github.com/gofiber/fiber/v2"

	controller "smartschool_backend/internals/features/users/auth/controller"
	userService "smartschool_backend/internals/features/users/user/service"
	"smartschool_backend/internals/middlewares"
)

// AuthRoutes mounts login/logout on the public router; login carries its
// own tighter rate limit.
func AuthRoutes(pub fiber.Router, users *userService.UserService) {
	ctl := controller.NewAuthController(users)

	auth := pub.Group("/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	auth.Post("/logout", ctl.Logout)
}
