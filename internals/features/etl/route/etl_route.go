package route

import (
	"github.com/gofiber/fiber/v2"

	"smartschool_backend/internals/constants"
	controller "smartschool_backend/internals/features/etl/controller"
	service "smartschool_backend/internals/features/etl/service"
	authMiddleware "smartschool_backend/internals/middlewares/auth"
)

// EtlRoutes mounts the bulk import endpoints. Importing creates students,
// so the whole group rides on the student create capability.
func EtlRoutes(r fiber.Router, svc *service.EtlService) {
	ctl := controller.NewEtlController(svc)

	etl := r.Group("/etl", authMiddleware.RequireCapability(constants.EntityStudent, constants.CapCreate))
	etl.Post("/validate", ctl.Validate)
	etl.Post("/import", ctl.Import)
}
