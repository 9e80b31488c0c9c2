package route

import (
	"github.com/gofiber/fiber/v2"

	controller "smartschool_backend/internals/features/school/search/controller"
	service "smartschool_backend/internals/features/school/search/service"
)

func SearchRoutes(r fiber.Router, svc *service.SearchService) {
	ctl := controller.NewSearchController(svc)
	r.Get("/search", ctl.Search)
}
