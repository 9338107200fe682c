package entity

import (
	"time"

	"github.com/google/uuid"
)

type File struct {
	Id            uuid.UUID
	WorkspaceId   uuid.UUID
	WorkspaceName string // populated by listings only
	Filename      string
	ContentType   string
	SizeBytes     int64
	StoragePath   string
	CreatedAt     time.Time
}
