package controller

import (
	"errors"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "smartschool_backend/internals/features/school/files/dto"
	service "smartschool_backend/internals/features/school/files/service"
	helper "smartschool_backend/internals/helpers"
)

const maxUploadBytes = 10 << 20 // 10 MiB

type FileController struct {
	Service *service.FileService
}

func NewFileController(svc *service.FileService) *FileController {
	return &FileController{Service: svc}
}

var validateFile = validator.New()

// GET /api/files?studentId=
func (h *FileController) FindByStudent(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Query("studentId"))
	if raw == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "studentId query parameter is required")
	}
	studentID, err := uuid.Parse(raw)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid studentId filter")
	}

	rows, err := h.Service.FindByStudent(studentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch files")
	}
	return helper.JsonOK(c, "OK", dto.NewFileResponses(rows))
}

// POST /api/files (multipart: file + file_student_id + file_type)
func (h *FileController) Upload(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.UploadFileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateFile.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing file part")
	}
	if fh.Size > maxUploadBytes {
		return helper.JsonError(c, fiber.StatusRequestEntityTooLarge, "File exceeds the 10MB limit")
	}

	src, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to read upload")
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to read upload")
	}

	mimeType := fh.Header.Get("Content-Type")
	m, err := h.Service.Store(req.FileStudentID, req.FileType, fh.Filename, mimeType, data, actorID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store file")
	}
	return helper.JsonCreated(c, "File uploaded", dto.NewFileResponse(m))
}

// GET /api/files/:id/signed-url
func (h *FileController) SignedURL(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid file id")
	}
	if _, err := h.Service.FindOne(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "File not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch file")
	}

	url, expiresAt := service.SignDownloadURL(id, service.DefaultSignedURLTTL)
	return helper.JsonOK(c, "OK", dto.SignedURLResponse{URL: url, ExpiresAt: expiresAt})
}

// Download serves the bytes for a valid signed URL. It is mounted OUTSIDE
// the auth middleware: the signature is the credential.
//
// GET /api/files/:id/download?expires=&sig=
func (h *FileController) Download(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid file id")
	}

	if err := service.VerifyDownloadSignature(id, c.Query("expires"), c.Query("sig")); err != nil {
		if errors.Is(err, service.ErrSignatureExpired) {
			return helper.JsonError(c, fiber.StatusForbidden, "Download link has expired")
		}
		return helper.JsonError(c, fiber.StatusForbidden, "Invalid download link")
	}

	m, err := h.Service.FindOne(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "File not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch file")
	}

	c.Set(fiber.HeaderContentType, m.FileMimeType)
	return c.Download(h.Service.DiskPath(m), m.FileName)
}

// DELETE /api/files/:id
func (h *FileController) Delete(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid file id")
	}

	if err := h.Service.Remove(id, actorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "File not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete file")
	}
	return helper.JsonOK(c, "File deleted", nil)
}
