package entity

import (
	"time"

	"github.com/google/uuid"
)

type Page struct {
	Id          uuid.UUID
	WorkspaceId uuid.UUID
	Title       string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// LastTouched is the page's recency key: UpdatedAt when the page or one of its
// blocks was ever mutated, CreatedAt otherwise.
func (p *Page) LastTouched() time.Time {
	if p.UpdatedAt != nil {
		return *p.UpdatedAt
	}
	return p.CreatedAt
}

type Block struct {
	Id         uuid.UUID
	PageId     uuid.UUID
	Kind       BlockKind
	Data       BlockData
	OrderIndex int
	CreatedAt  time.Time
}

type PageView struct {
	Page   Page
	Blocks []Block
}
