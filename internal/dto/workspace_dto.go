package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateWorkspaceRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type UpdateWorkspaceRequest struct {
	Id   uuid.UUID `json:"-"`
	Name *string   `json:"name" validate:"omitempty,max=255"`
}

type WorkspaceResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type ListWorkspacesResponse struct {
	Workspaces []WorkspaceResponse `json:"workspaces"`
}
