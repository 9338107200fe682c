package entity

import (
	"time"

	"github.com/google/uuid"
)

type PageHit struct {
	Id          uuid.UUID
	Title       string
	WorkspaceId uuid.UUID
	CreatedAt   time.Time
}

type BlockHit struct {
	Id          uuid.UUID
	PageId      uuid.UUID
	PageTitle   string
	WorkspaceId uuid.UUID
	Snippet     string
}

type TableHit struct {
	Id          uuid.UUID
	Name        string
	WorkspaceId uuid.UUID
	CreatedAt   time.Time
}

type EventHit struct {
	Id          uuid.UUID
	Title       string
	StartTs     time.Time
	EndTs       time.Time
	WorkspaceId uuid.UUID
}

type FileHit struct {
	Id          uuid.UUID
	Filename    string
	WorkspaceId uuid.UUID
	ContentType string
	SizeBytes   int64
	CreatedAt   time.Time
}
