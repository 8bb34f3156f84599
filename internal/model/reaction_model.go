package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReactionModel attaches to either a post or a comment, never both.
// Partial unique indexes (see migrations) enforce at most one reaction
// per user per target.
type ReactionModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	User      UserModel `gorm:"foreignKey:UserID" json:"-"`
	PostID    *string   `gorm:"type:uuid;index" json:"post_id,omitempty"`
	CommentID *string   `gorm:"type:uuid;index" json:"comment_id,omitempty"`
	Kind      string    `gorm:"type:varchar(10);not null" json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

func (ReactionModel) TableName() string {
	return "reactions"
}

func (r *ReactionModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
