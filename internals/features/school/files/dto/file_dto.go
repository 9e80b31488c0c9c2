package dto

import (
	"time"

	"github.com/google/uuid"

	model "smartschool_backend/internals/features/school/files/model"
)

// UploadFileRequest carries the multipart form fields that ride along with
// the file part.
type UploadFileRequest struct {
	FileStudentID uuid.UUID `form:"file_student_id" validate:"required"`
	FileType      string    `form:"file_type" validate:"required,oneof=photo document report other"`
}

type FileResponse struct {
	FileID         uuid.UUID `json:"file_id"`
	FileStudentID  uuid.UUID `json:"file_student_id"`
	FileType       string    `json:"file_type"`
	FileURL        string    `json:"file_url"`
	FileName       string    `json:"file_name"`
	FileSize       int64     `json:"file_size"`
	FileMimeType   string    `json:"file_mime_type"`
	FileUploadedAt time.Time `json:"file_uploaded_at"`
}

func NewFileResponse(m *model.FileModel) *FileResponse {
	return &FileResponse{
		FileID:         m.FileID,
		FileStudentID:  m.FileStudentID,
		FileType:       m.FileType,
		FileURL:        m.FileURL,
		FileName:       m.FileName,
		FileSize:       m.FileSize,
		FileMimeType:   m.FileMimeType,
		FileUploadedAt: m.FileUploadedAt,
	}
}

func NewFileResponses(rows []model.FileModel) []*FileResponse {
	resp := make([]*FileResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, NewFileResponse(&rows[i]))
	}
	return resp
}

// SignedURLResponse is returned when a client asks for a temporary download
// link.
type SignedURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
