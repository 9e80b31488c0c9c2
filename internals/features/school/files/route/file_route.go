package route

import (
	"github.com/gofiber/fiber/v2"

	"smartschool_backend/internals/constants"
	controller "smartschool_backend/internals/features/school/files/controller"
	service "smartschool_backend/internals/features/school/files/service"
	authMiddleware "smartschool_backend/internals/middlewares/auth"
)

// FileRoutes mounts the session-gated endpoints on api (already behind the
// auth middleware).
func FileRoutes(api fiber.Router, svc *service.FileService) {
	ctl := controller.NewFileController(svc)

	files := api.Group("/files")
	files.Get("/", ctl.FindByStudent)
	files.Get("/:id/signed-url", ctl.SignedURL)
	files.Post("/", authMiddleware.RequireCapability(constants.EntityFile, constants.CapCreate), ctl.Upload)
	files.Delete("/:id", authMiddleware.RequireCapability(constants.EntityFile, constants.CapDelete), ctl.Delete)
}

// FilePublicRoutes mounts the signed download on the public router, where
// the URL signature is the only credential.
func FilePublicRoutes(pub fiber.Router, svc *service.FileService) {
	ctl := controller.NewFileController(svc)

	pub.Get("/files/:id/download", ctl.Download)
}
