package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Table struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	WorkspaceId uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name        string     `gorm:"type:varchar(255);not null"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	Workspace   *Workspace `gorm:"foreignKey:WorkspaceId;constraint:OnDelete:CASCADE"`
}

func (Table) TableName() string {
	return "tables"
}

func (t *Table) BeforeCreate(tx *gorm.DB) error {
	if t.Id == uuid.Nil {
		t.Id = uuid.New()
	}
	return nil
}

type TableColumn struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TableId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Type       string    `gorm:"type:varchar(50);not null;default:'text'"`
	OrderIndex int       `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	Table      *Table    `gorm:"foreignKey:TableId;constraint:OnDelete:CASCADE"`
}

func (TableColumn) TableName() string {
	return "table_columns"
}

func (c *TableColumn) BeforeCreate(tx *gorm.DB) error {
	if c.Id == uuid.Nil {
		c.Id = uuid.New()
	}
	return nil
}

type TableRow struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TableId   uuid.UUID `gorm:"type:uuid;not null;index:idx_table_rows_table_created,priority:1"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_table_rows_table_created,priority:2"`
	Table     *Table    `gorm:"foreignKey:TableId;constraint:OnDelete:CASCADE"`
}

func (TableRow) TableName() string {
	return "table_rows"
}

func (r *TableRow) BeforeCreate(tx *gorm.DB) error {
	if r.Id == uuid.Nil {
		r.Id = uuid.New()
	}
	return nil
}

// TableCell is unique per (row, column); writes go through an upsert on that key.
type TableCell struct {
	RowId     uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ColumnId  uuid.UUID      `gorm:"type:uuid;primaryKey;index"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
	Row       *TableRow    `gorm:"foreignKey:RowId;constraint:OnDelete:CASCADE"`
	Column    *TableColumn `gorm:"foreignKey:ColumnId;constraint:OnDelete:CASCADE"`
}

func (TableCell) TableName() string {
	return "table_cells"
}
