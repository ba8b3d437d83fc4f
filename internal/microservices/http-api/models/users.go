package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          string     `gorm:"primaryKey;type:uuid" json:"id"`
	Username    string     `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email       string     `gorm:"size:254;uniqueIndex;not null" json:"email"`
	FirstName   string     `gorm:"size:150;not null;default:''" json:"first_name"`
	LastName    string     `gorm:"size:150;not null;default:''" json:"last_name"`
	Bio         string     `gorm:"type:text;not null;default:''" json:"bio"`
	Role        Role       `gorm:"size:50;default:'user';not null" json:"role"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"` // nil until the first token exchange
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BeforeCreate hook to set UUID and default role before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = RoleUser
	}
	return
}

func (User) TableName() string {
	return "users"
}

func (user *User) IsAdmin() bool {
	return user != nil && user.Role.IsAdmin()
}

func (user *User) IsModerator() bool {
	return user != nil && user.Role.IsModerator()
}

// Verified reports whether the user has exchanged a confirmation code at least once.
func (user *User) Verified() bool {
	return user != nil && user.ConfirmedAt != nil
}
