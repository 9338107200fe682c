package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type File struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	WorkspaceId uuid.UUID  `gorm:"type:uuid;not null;index"`
	Filename    string     `gorm:"type:varchar(500);not null"`
	ContentType string     `gorm:"type:varchar(255);not null;default:'application/octet-stream'"`
	SizeBytes   int64      `gorm:"not null;default:0"`
	StoragePath string     `gorm:"type:text;not null"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	Workspace   *Workspace `gorm:"foreignKey:WorkspaceId;constraint:OnDelete:CASCADE"`
}

func (File) TableName() string {
	return "files"
}

func (f *File) BeforeCreate(tx *gorm.DB) error {
	if f.Id == uuid.Nil {
		f.Id = uuid.New()
	}
	return nil
}
