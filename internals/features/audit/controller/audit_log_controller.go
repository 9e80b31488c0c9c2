package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	dto "smartschool_backend/internals/features/audit/dto"
	service "smartschool_backend/internals/features/audit/service"
	helper "smartschool_backend/internals/helpers"
)

type AuditLogController struct {
	Recorder *service.Recorder
}

func NewAuditLogController(rec *service.Recorder) *AuditLogController {
	return &AuditLogController{Recorder: rec}
}

// GET /api/audit-logs
func (h *AuditLogController) FindAll(c *fiber.Ctx) error {
	rows, err := h.Recorder.FindAll()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch audit logs")
	}
	return helper.JsonOK(c, "OK", dto.NewAuditLogResponses(rows))
}

// GET /api/audit-logs/:entity/:entityId
func (h *AuditLogController) FindByEntity(c *fiber.Ctx) error {
	entity := strings.TrimSpace(c.Params("entity"))
	if entity == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid entity")
	}
	entityID, err := uuid.Parse(strings.TrimSpace(c.Params("entityId")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid entity id")
	}

	rows, err := h.Recorder.FindByEntity(entity, entityID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch audit logs")
	}
	return helper.JsonOK(c, "OK", dto.NewAuditLogResponses(rows))
}
