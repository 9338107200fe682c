package dto

import (
	"encoding/json"
	"time"

	"workspace-be/internal/entity"

	"github.com/google/uuid"
)

type CreatePageRequest struct {
	WorkspaceId uuid.UUID `json:"workspaceId" validate:"required"`
	Title       string    `json:"title" validate:"max=500"`
}

type UpdatePageRequest struct {
	Id    uuid.UUID `json:"-"`
	Title *string   `json:"title" validate:"omitempty,max=500"`
}

type PageResponse struct {
	Id          uuid.UUID  `json:"id"`
	WorkspaceId uuid.UUID  `json:"workspaceId"`
	Title       string     `json:"title"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`
}

type ListPagesResponse struct {
	Pages []PageResponse `json:"pages"`
}

type AddBlockRequest struct {
	PageId     uuid.UUID       `json:"-"`
	Type       string          `json:"type" validate:"required,max=50"`
	Data       json.RawMessage `json:"data"`
	OrderIndex *int            `json:"orderIndex"`
}

type UpdateBlockRequest struct {
	PageId     uuid.UUID       `json:"-"`
	BlockId    uuid.UUID       `json:"-"`
	Type       *string         `json:"type" validate:"omitempty,max=50"`
	Data       json.RawMessage `json:"data"`
	OrderIndex *int            `json:"orderIndex"`
}

type BlockResponse struct {
	Id         uuid.UUID       `json:"id"`
	PageId     uuid.UUID       `json:"pageId"`
	Type       string          `json:"type"`
	Data       json.RawMessage `json:"data"`
	OrderIndex int             `json:"orderIndex"`
}

type PageViewResponse struct {
	Page   PageResponse    `json:"page"`
	Blocks []BlockResponse `json:"blocks"`
}

func NewPageResponse(p *entity.Page) PageResponse {
	return PageResponse{Id: p.Id, WorkspaceId: p.WorkspaceId, Title: p.Title, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt}
}

func NewBlockResponse(b *entity.Block) BlockResponse {
	res := BlockResponse{Id: b.Id, PageId: b.PageId, Type: string(b.Kind), OrderIndex: b.OrderIndex}
	if b.Data != nil {
		res.Data = b.Data.Raw()
	}
	return res
}

func NewPageViewResponse(v *entity.PageView) *PageViewResponse {
	blocks := make([]BlockResponse, len(v.Blocks))
	for i := range v.Blocks {
		blocks[i] = NewBlockResponse(&v.Blocks[i])
	}
	return &PageViewResponse{Page: NewPageResponse(&v.Page), Blocks: blocks}
}
