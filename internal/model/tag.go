package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is a shared label attachable to many requests. Names form a global
// vocabulary keyed by an exact, case-sensitive unique index.
type Tag struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_tags_name" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Tag) TableName() string { return "tags" }

func (t *Tag) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TagOnRequest links a request to a tag. The storage layer has no cascade:
// links are deleted explicitly before their parent request row.
type TagOnRequest struct {
	RequestID string `gorm:"primaryKey;type:varchar(36)" json:"requestId"`
	TagID     string `gorm:"primaryKey;type:varchar(36)" json:"tagId"`
	Position  int    `gorm:"not null;default:0" json:"-"`
}

func (TagOnRequest) TableName() string { return "tag_on_requests" }
