package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document holds one rich-text document. Content is the serialized editor
// state JSON, stored already normalized through the engine.
type Document struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string
	Namespace string
	Content   string
	Seq       int
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

// Revision is an immutable snapshot appended on every successful update.
// Seq starts at 1 and increases by one per update.
type Revision struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocumentId uuid.UUID `gorm:"type:uuid;index"`
	Seq        int
	Content    string
	CreatedAt  time.Time
}
