package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID                   string     `gorm:"type:uuid;primary_key" json:"id"`
	Name                 string     `gorm:"type:varchar(20);uniqueIndex;not null" json:"name"`
	Email                string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Age                  int        `json:"age"`
	Photo                string     `gorm:"type:varchar(500)" json:"photo"`
	Password             string     `gorm:"type:varchar(255);not null" json:"-"`
	Role                 string     `gorm:"type:varchar(20);default:'user';not null" json:"role"`
	WrongPassword        int        `gorm:"default:0;not null" json:"-"`
	Blocked              bool       `gorm:"default:false;not null" json:"-"`
	BlockedUntil         *time.Time `json:"-"`
	PasswordChangedAt    *time.Time `json:"-"`
	PasswordResetToken   string     `gorm:"type:varchar(64);index" json:"-"`
	PasswordResetExpires *time.Time `json:"-"`
	IsActive             bool       `gorm:"default:true;not null" json:"is_active"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
