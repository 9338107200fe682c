package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DocsPage struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	WorkspaceId uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title       string     `gorm:"type:varchar(500);not null"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false"` // null until first mutation
	Workspace   *Workspace `gorm:"foreignKey:WorkspaceId;constraint:OnDelete:CASCADE"`
}

func (DocsPage) TableName() string {
	return "docs_pages"
}

func (p *DocsPage) BeforeCreate(tx *gorm.DB) error {
	if p.Id == uuid.Nil {
		p.Id = uuid.New()
	}
	return nil
}

type DocsBlock struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	PageId     uuid.UUID      `gorm:"type:uuid;not null;index:idx_docs_blocks_page_order,priority:1"`
	Kind       string         `gorm:"type:varchar(50);not null"`
	Data       datatypes.JSON `gorm:"not null"`
	OrderIndex int            `gorm:"not null;default:0;index:idx_docs_blocks_page_order,priority:2"`
	SearchText string         `gorm:"type:text;not null;default:''"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	Page       *DocsPage      `gorm:"foreignKey:PageId;constraint:OnDelete:CASCADE"`
}

func (DocsBlock) TableName() string {
	return "docs_blocks"
}

func (b *DocsBlock) BeforeCreate(tx *gorm.DB) error {
	if b.Id == uuid.Nil {
		b.Id = uuid.New()
	}
	return nil
}
