package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentModel struct {
	ID          string          `gorm:"type:uuid;primary_key" json:"id"`
	PostID      string          `gorm:"type:uuid;not null;index" json:"post_id"`
	CommenterID string          `gorm:"type:uuid;not null;index" json:"commenter_id"`
	Commenter   UserModel       `gorm:"foreignKey:CommenterID" json:"-"`
	Content     string          `gorm:"type:varchar(150);not null" json:"content"`
	Reacts      []ReactionModel `gorm:"foreignKey:CommentID" json:"reacts,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (CommentModel) TableName() string {
	return "comments"
}

func (c *CommentModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
