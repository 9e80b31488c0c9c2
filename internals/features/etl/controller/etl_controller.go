package controller

import (
	"io"

	"github.com/gofiber/fiber/v2"

	service "smartschool_backend/internals/features/etl/service"
	helper "smartschool_backend/internals/helpers"
)

const maxSpreadsheetBytes = 20 << 20 // 20 MiB

type EtlController struct {
	Service *service.EtlService
}

func NewEtlController(svc *service.EtlService) *EtlController {
	return &EtlController{Service: svc}
}

func openUpload(c *fiber.Ctx) (io.ReadCloser, *fiber.Error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Missing file part")
	}
	if fh.Size > maxSpreadsheetBytes {
		return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge, "Spreadsheet exceeds the 20MB limit")
	}
	src, err := fh.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to read upload")
	}
	return src, nil
}

// POST /api/etl/validate (multipart: file)
func (h *EtlController) Validate(c *fiber.Ctx) error {
	src, ferr := openUpload(c)
	if ferr != nil {
		return helper.JsonError(c, ferr.Code, ferr.Message)
	}
	defer src.Close()

	res, err := h.Service.Validate(src)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	return helper.JsonOK(c, "Validation complete", res)
}

// POST /api/etl/import (multipart: file)
func (h *EtlController) Import(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	src, ferr := openUpload(c)
	if ferr != nil {
		return helper.JsonError(c, ferr.Code, ferr.Message)
	}
	defer src.Close()

	res, err := h.Service.Import(src, actorID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	return helper.JsonOK(c, "Import complete", res)
}
