// internals/features/school/groups/controller/group_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "smartschool_backend/internals/features/school/groups/dto"
	service "smartschool_backend/internals/features/school/groups/service"
	helper "smartschool_backend/internals/helpers"
)

type GroupController struct {
	Service *service.GroupService
}

func NewGroupController(svc *service.GroupService) *GroupController {
	return &GroupController{Service: svc}
}

var validateGroup = validator.New()

// GET /api/groups?gradeId=
func (h *GroupController) FindAll(c *fiber.Ctx) error {
	var (
		rows []*dto.GroupResponse
		err  error
	)
	if raw := strings.TrimSpace(c.Query("gradeId")); raw != "" {
		gradeID, perr := uuid.Parse(raw)
		if perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid gradeId filter")
		}
		models, ferr := h.Service.FindByGrade(gradeID)
		rows, err = dto.NewGroupResponses(models), ferr
	} else {
		models, ferr := h.Service.FindAll()
		rows, err = dto.NewGroupResponses(models), ferr
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch groups")
	}
	return helper.JsonOK(c, "OK", rows)
}

// GET /api/groups/:id
func (h *GroupController) FindOne(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid group id")
	}

	m, err := h.Service.FindOne(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Group not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch group")
	}
	return helper.JsonOK(c, "OK", dto.NewGroupResponse(m))
}

// POST /api/groups
func (h *GroupController) Create(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateGroup.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := h.Service.Create(req, actorID)
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Group name already in use")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create group")
	}
	return helper.JsonCreated(c, "Group created", dto.NewGroupResponse(m))
}

// PATCH /api/groups/:id
func (h *GroupController) Update(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid group id")
	}

	var req dto.UpdateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateGroup.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := h.Service.Update(id, req, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Group not found")
		}
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Group name already in use")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update group")
	}
	return helper.JsonOK(c, "Group updated", dto.NewGroupResponse(m))
}

// DELETE /api/groups/:id
func (h *GroupController) Delete(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid group id")
	}

	if err := h.Service.Remove(id, actorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Group not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete group")
	}
	return helper.JsonOK(c, "Group deleted", nil)
}
