package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByPageID struct {
	PageID uuid.UUID
}

func (s ByPageID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("page_id = ?", s.PageID)
}

type BlocksOfWorkspace struct {
	WorkspaceID uuid.UUID
}

func (s BlocksOfWorkspace) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("page_id IN (?)",
		db.Session(&gorm.Session{NewDB: true}).Table("docs_pages").Select("id").Where("workspace_id = ?", s.WorkspaceID))
}

// PageRecency orders pages by last touch, falling back to creation time for
// pages never touched, newest first.
type PageRecency struct{}

func (s PageRecency) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("COALESCE(updated_at, created_at) DESC").Order("created_at DESC")
}
