package dto

import (
	"time"

	"github.com/google/uuid"
)

type SearchRequest struct {
	Query       string
	WorkspaceId *uuid.UUID
}

type PageHit struct {
	Id          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	WorkspaceId uuid.UUID `json:"workspaceId"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"createdAt"`
}

type BlockHit struct {
	Id          uuid.UUID `json:"id"`
	PageId      uuid.UUID `json:"pageId"`
	PageTitle   string    `json:"pageTitle"`
	WorkspaceId uuid.UUID `json:"workspaceId"`
	Type        string    `json:"type"`
	Snippet     string    `json:"snippet"`
}

type TableHit struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	WorkspaceId uuid.UUID `json:"workspaceId"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"createdAt"`
}

type EventHit struct {
	Id          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	StartTs     time.Time `json:"startTs"`
	EndTs       time.Time `json:"endTs"`
	WorkspaceId uuid.UUID `json:"workspaceId"`
	Type        string    `json:"type"`
}

type FileHit struct {
	Id          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	WorkspaceId uuid.UUID `json:"workspaceId"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SearchResults struct {
	Pages  []PageHit  `json:"pages"`
	Blocks []BlockHit `json:"blocks"`
	Tables []TableHit `json:"tables"`
	Events []EventHit `json:"events"`
	Files  []FileHit  `json:"files"`
}

type SearchResponse struct {
	Query   string        `json:"query"`
	Results SearchResults `json:"results"`
	Total   int           `json:"total"`
}
