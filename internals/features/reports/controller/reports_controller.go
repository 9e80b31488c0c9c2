package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	service "smartschool_backend/internals/features/reports/service"
	helper "smartschool_backend/internals/helpers"
)

type ReportsController struct {
	Service *service.ReportsService
}

func NewReportsController(svc *service.ReportsService) *ReportsController {
	return &ReportsController{Service: svc}
}

// GET /api/reports/school
func (h *ReportsController) School(c *fiber.Ctx) error {
	stats, err := h.Service.SchoolStats()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build school report")
	}
	return helper.JsonOK(c, "OK", stats)
}

// GET /api/reports/grades/:id
func (h *ReportsController) Grade(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid grade id")
	}
	stats, err := h.Service.GradeStats(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Grade not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build grade report")
	}
	return helper.JsonOK(c, "OK", stats)
}

// GET /api/reports/groups/:id
func (h *ReportsController) Group(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid group id")
	}
	stats, err := h.Service.GroupStats(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Group not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build group report")
	}
	return helper.JsonOK(c, "OK", stats)
}

// GET /api/reports/students/:id
func (h *ReportsController) Student(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}
	stats, err := h.Service.StudentStats(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build student report")
	}
	return helper.JsonOK(c, "OK", stats)
}
