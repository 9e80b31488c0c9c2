package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "smartschool_backend/internals/features/school/assessments/dto"
	service "smartschool_backend/internals/features/school/assessments/service"
	helper "smartschool_backend/internals/helpers"
)

type AssessmentController struct {
	Service *service.AssessmentService
}

func NewAssessmentController(svc *service.AssessmentService) *AssessmentController {
	return &AssessmentController{Service: svc}
}

var validateAssessment = validator.New()

// GET /api/assessments?studentId=&groupId=
func (h *AssessmentController) FindAll(c *fiber.Ctx) error {
	var (
		rows []*dto.AssessmentResponse
		err  error
	)
	switch {
	case strings.TrimSpace(c.Query("studentId")) != "":
		studentID, perr := uuid.Parse(strings.TrimSpace(c.Query("studentId")))
		if perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid studentId filter")
		}
		models, ferr := h.Service.FindByStudent(studentID)
		rows, err = dto.NewAssessmentResponses(models), ferr
	case strings.TrimSpace(c.Query("groupId")) != "":
		groupID, perr := uuid.Parse(strings.TrimSpace(c.Query("groupId")))
		if perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid groupId filter")
		}
		models, ferr := h.Service.FindByGroup(groupID)
		rows, err = dto.NewAssessmentResponses(models), ferr
	default:
		models, ferr := h.Service.FindAll()
		rows, err = dto.NewAssessmentResponses(models), ferr
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch assessments")
	}
	return helper.JsonOK(c, "OK", rows)
}

// GET /api/assessments/:id
func (h *AssessmentController) FindOne(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid assessment id")
	}

	m, err := h.Service.FindOne(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Assessment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch assessment")
	}
	return helper.JsonOK(c, "OK", dto.NewAssessmentResponse(m))
}

// POST /api/assessments
func (h *AssessmentController) Create(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.CreateAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAssessment.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := h.Service.Create(req, actorID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create assessment")
	}
	return helper.JsonCreated(c, "Assessment created", dto.NewAssessmentResponse(m))
}

// PATCH /api/assessments/:id
func (h *AssessmentController) Update(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid assessment id")
	}

	var req dto.UpdateAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAssessment.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := h.Service.Update(id, req, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Assessment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update assessment")
	}
	return helper.JsonOK(c, "Assessment updated", dto.NewAssessmentResponse(m))
}

// DELETE /api/assessments/:id
func (h *AssessmentController) Delete(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid assessment id")
	}

	if err := h.Service.Remove(id, actorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Assessment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete assessment")
	}
	return helper.JsonOK(c, "Assessment deleted", nil)
}
