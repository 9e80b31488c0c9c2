// internals/features/school/grades/controller/grade_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "smartschool_backend/internals/features/school/grades/dto"
	service "smartschool_backend/internals/features/school/grades/service"
	helper "smartschool_backend/internals/helpers"
)

type GradeController struct {
	Service *service.GradeService
}

func NewGradeController(svc *service.GradeService) *GradeController {
	return &GradeController{Service: svc}
}

var validateGrade = validator.New()

// GET /api/grades
func (h *GradeController) FindAll(c *fiber.Ctx) error {
	rows, err := h.Service.FindAll()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch grades")
	}
	return helper.JsonOK(c, "OK", dto.NewGradeResponses(rows))
}

// GET /api/grades/:id
func (h *GradeController) FindOne(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid grade id")
	}

	m, err := h.Service.FindOne(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Grade not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch grade")
	}
	return helper.JsonOK(c, "OK", dto.NewGradeResponse(m))
}

// POST /api/grades
func (h *GradeController) Create(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.CreateGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateGrade.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := h.Service.Create(req, actorID)
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Grade name already in use")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create grade")
	}
	return helper.JsonCreated(c, "Grade created", dto.NewGradeResponse(m))
}

// PATCH /api/grades/:id
func (h *GradeController) Update(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid grade id")
	}

	var req dto.UpdateGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateGrade.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := h.Service.Update(id, req, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Grade not found")
		}
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Grade name already in use")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update grade")
	}
	return helper.JsonOK(c, "Grade updated", dto.NewGradeResponse(m))
}

// DELETE /api/grades/:id
func (h *GradeController) Delete(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid grade id")
	}

	if err := h.Service.Remove(id, actorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Grade not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete grade")
	}
	return helper.JsonOK(c, "Grade deleted", nil)
}
