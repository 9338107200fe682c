package entity

import (
	"time"

	"github.com/google/uuid"
)

type Workspace struct {
	Id        uuid.UUID
	Name      string
	CreatedAt time.Time
}
