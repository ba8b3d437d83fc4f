package models

import "time"

// PendingAuth holds the latest confirmation code issued to a user.
// A new signup replaces the row instead of adding one.
type PendingAuth struct {
	UserID    string    `gorm:"primaryKey;type:uuid" json:"user_id"`
	CodeHash  string    `gorm:"not null" json:"-"`
	IssuedAt  time.Time `gorm:"not null" json:"issued_at"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (PendingAuth) TableName() string {
	return "pending_auths"
}

func (p *PendingAuth) Expired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}
