package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is the lifecycle state of a peer help request.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusClosed     Status = "CLOSED"
)

// Valid reports whether s is one of the four lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusCompleted, StatusClosed:
		return true
	}
	return false
}

// statusTokens maps the UI-facing filter tokens to stored enum values.
var statusTokens = map[string]Status{
	"open":        StatusOpen,
	"in-progress": StatusInProgress,
	"completed":   StatusCompleted,
	"closed":      StatusClosed,
}

// ParseStatusToken maps a UI filter token to its enum value.
// Unrecognized tokens fall back to OPEN, matching the frontend contract.
func ParseStatusToken(token string) Status {
	if s, ok := statusTokens[token]; ok {
		return s
	}
	return StatusOpen
}

type PeerRequest struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title     string    `gorm:"type:varchar(256);not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Course    *string   `gorm:"type:varchar(128)" json:"course"`
	IsUrgent  bool      `gorm:"not null;default:false" json:"isUrgent"`
	Anonymous bool      `gorm:"not null;default:false" json:"anonymous"`
	Status    Status    `gorm:"type:varchar(20);default:OPEN;index:idx_requests_status" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Tags []Tag `gorm:"many2many:tag_on_requests;joinForeignKey:RequestID;joinReferences:TagID" json:"tags,omitempty"`
}

func (PeerRequest) TableName() string { return "peer_requests" }

func (r *PeerRequest) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// TagNames returns the linked tag names in insertion order.
func (r *PeerRequest) TagNames() []string {
	names := make([]string, 0, len(r.Tags))
	for _, t := range r.Tags {
		names = append(names, t.Name)
	}
	return names
}
