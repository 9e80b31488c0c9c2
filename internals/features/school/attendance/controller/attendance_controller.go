package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "smartschool_backend/internals/features/school/attendance/dto"
	service "smartschool_backend/internals/features/school/attendance/service"
	helper "smartschool_backend/internals/helpers"
)

type AttendanceController struct {
	Service *service.AttendanceService
}

func NewAttendanceController(svc *service.AttendanceService) *AttendanceController {
	return &AttendanceController{Service: svc}
}

var validateAttendance = validator.New()

// GET /api/attendance?studentId=&date=2006-01-02
func (h *AttendanceController) FindAll(c *fiber.Ctx) error {
	var (
		rows []*dto.AttendanceResponse
		err  error
	)
	switch {
	case strings.TrimSpace(c.Query("studentId")) != "":
		studentID, perr := uuid.Parse(strings.TrimSpace(c.Query("studentId")))
		if perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid studentId filter")
		}
		models, ferr := h.Service.FindByStudent(studentID)
		rows, err = dto.NewAttendanceResponses(models), ferr
	case strings.TrimSpace(c.Query("date")) != "":
		day, perr := time.Parse("2006-01-02", strings.TrimSpace(c.Query("date")))
		if perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid date filter, expected YYYY-MM-DD")
		}
		models, ferr := h.Service.FindByDate(day)
		rows, err = dto.NewAttendanceResponses(models), ferr
	default:
		models, ferr := h.Service.FindAll()
		rows, err = dto.NewAttendanceResponses(models), ferr
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch attendance")
	}
	return helper.JsonOK(c, "OK", rows)
}

// GET /api/attendance/:id
func (h *AttendanceController) FindOne(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid attendance id")
	}

	m, err := h.Service.FindOne(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Attendance record not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch attendance record")
	}
	return helper.JsonOK(c, "OK", dto.NewAttendanceResponse(m))
}

// POST /api/attendance
func (h *AttendanceController) Create(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.CreateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAttendance.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := h.Service.Create(req, actorID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create attendance record")
	}
	return helper.JsonCreated(c, "Attendance recorded", dto.NewAttendanceResponse(m))
}

// PATCH /api/attendance/:id
func (h *AttendanceController) Update(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid attendance id")
	}

	var req dto.UpdateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAttendance.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := h.Service.Update(id, req, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Attendance record not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update attendance record")
	}
	return helper.JsonOK(c, "Attendance updated", dto.NewAttendanceResponse(m))
}

// DELETE /api/attendance/:id
func (h *AttendanceController) Delete(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid attendance id")
	}

	if err := h.Service.Remove(id, actorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Attendance record not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete attendance record")
	}
	return helper.JsonOK(c, "Attendance deleted", nil)
}
