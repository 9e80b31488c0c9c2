// internals/features/school/students/controller/student_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "smartschool_backend/internals/features/school/students/dto"
	service "smartschool_backend/internals/features/school/students/service"
	helper "smartschool_backend/internals/helpers"
)

type StudentController struct {
	Service *service.StudentService
}

func NewStudentController(svc *service.StudentService) *StudentController {
	return &StudentController{Service: svc}
}

var validateStudent = validator.New()

// GET /api/students?gradeId=&groupId=
//
// groupId wins over gradeId when both are present.
func (h *StudentController) FindAll(c *fiber.Ctx) error {
	var (
		rows []*dto.StudentResponse
		err  error
	)
	switch {
	case strings.TrimSpace(c.Query("groupId")) != "":
		groupID, perr := uuid.Parse(strings.TrimSpace(c.Query("groupId")))
		if perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid groupId filter")
		}
		models, ferr := h.Service.FindByGroup(groupID)
		rows, err = dto.NewStudentResponses(models), ferr
	case strings.TrimSpace(c.Query("gradeId")) != "":
		gradeID, perr := uuid.Parse(strings.TrimSpace(c.Query("gradeId")))
		if perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid gradeId filter")
		}
		models, ferr := h.Service.FindByGrade(gradeID)
		rows, err = dto.NewStudentResponses(models), ferr
	default:
		models, ferr := h.Service.FindAll()
		rows, err = dto.NewStudentResponses(models), ferr
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch students")
	}
	return helper.JsonOK(c, "OK", rows)
}

// GET /api/students/:id
func (h *StudentController) FindOne(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	m, err := h.Service.FindOne(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}
	return helper.JsonOK(c, "OK", dto.NewStudentResponse(m))
}

// POST /api/students
func (h *StudentController) Create(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateStudent.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := h.Service.Create(req, actorID)
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Student code already in use")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create student")
	}
	return helper.JsonCreated(c, "Student created", dto.NewStudentResponse(m))
}

// PATCH /api/students/:id
func (h *StudentController) Update(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateStudent.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := h.Service.Update(id, req, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Student code already in use")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update student")
	}
	return helper.JsonOK(c, "Student updated", dto.NewStudentResponse(m))
}

// DELETE /api/students/:id
func (h *StudentController) Delete(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	if err := h.Service.Remove(id, actorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete student")
	}
	return helper.JsonOK(c, "Student deleted", nil)
}
