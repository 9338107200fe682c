package dto

import (
	"io"
	"time"

	"workspace-be/internal/entity"

	"github.com/google/uuid"
)

type UploadFileRequest struct {
	WorkspaceId uuid.UUID
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type UploadFileResponse struct {
	Id       uuid.UUID `json:"id"`
	Filename string    `json:"filename"`
}

type FileResponse struct {
	Id            uuid.UUID `json:"id"`
	WorkspaceId   uuid.UUID `json:"workspaceId"`
	WorkspaceName string    `json:"workspaceName,omitempty"`
	Filename      string    `json:"filename"`
	ContentType   string    `json:"contentType"`
	SizeBytes     int64     `json:"sizeBytes"`
	CreatedAt     time.Time `json:"createdAt"`
}

type ListFilesResponse struct {
	Files []FileResponse `json:"files"`
}

// FileDownload streams a blob; the caller closes Body.
type FileDownload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.ReadCloser
}

func NewFileResponse(f *entity.File) FileResponse {
	return FileResponse{
		Id:            f.Id,
		WorkspaceId:   f.WorkspaceId,
		WorkspaceName: f.WorkspaceName,
		Filename:      f.Filename,
		ContentType:   f.ContentType,
		SizeBytes:     f.SizeBytes,
		CreatedAt:     f.CreatedAt,
	}
}
