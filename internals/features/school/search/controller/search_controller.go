package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	service "smartschool_backend/internals/features/school/search/service"
	helper "smartschool_backend/internals/helpers"
)

type SearchController struct {
	Service *service.SearchService
}

func NewSearchController(svc *service.SearchService) *SearchController {
	return &SearchController{Service: svc}
}

// GET /api/search?q=
func (h *SearchController) Search(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "q query parameter is required")
	}
	if len([]rune(q)) < 2 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Search query must be at least 2 characters")
	}

	res, err := h.Service.Search(q)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Search failed")
	}
	return helper.JsonOK(c, "OK", res)
}
