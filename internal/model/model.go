package model

import (
	"time"
)

// Model is the shared identity of every stored entity: a monotonically
// assigned integer id plus an immutable creation timestamp. Records are
// hard-deleted, so there is no soft-delete column.
type Model struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}
