package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostStatus is the lifecycle state of a post. The only transition is
// draft -> published; there is no way back to draft.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

// Post represents a blog post. Content holds the rich-text editor state as an
// uninterpreted JSON tree. UserID never changes after creation.
type Post struct {
	ID        uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID  `json:"user_id" gorm:"type:char(36);not null;index"`
	Title     string     `json:"title" gorm:"size:255;not null"`
	Content   Document   `json:"content_json" gorm:"type:json"`
	Status    PostStatus `json:"status" gorm:"size:16;not null;index"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
