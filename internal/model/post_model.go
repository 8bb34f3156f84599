package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostModel struct {
	ID          string          `gorm:"type:uuid;primary_key" json:"id"`
	PublisherID string          `gorm:"type:uuid;not null;index" json:"publisher_id"`
	Publisher   UserModel       `gorm:"foreignKey:PublisherID" json:"-"`
	Content     string          `gorm:"type:varchar(500);not null" json:"content"`
	Comments    []CommentModel  `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	Reacts      []ReactionModel `gorm:"foreignKey:PostID" json:"reacts,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
