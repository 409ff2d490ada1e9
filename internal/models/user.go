package models

import "time"

// User represents a client account of the store. Admin users manage the catalog.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	FullName  string    `json:"full_name" gorm:"type:varchar(255);not null"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized
	IsAdmin   bool      `json:"isAdmin" gorm:"not null;default:false"`
	Email     *string   `json:"email" gorm:"type:varchar(255)"`
	Addresses []Address `json:"addresses,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RefreshToken is an opaque, single-use credential exchanged for a new access token.
type RefreshToken struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ExpiresIn int64  `json:"expiresIn" gorm:"not null"` // unix seconds
	UserID    string `json:"user_id" gorm:"type:varchar(36);index;not null"`
}

// Expired reports whether the token is past its expiry at the given time.
func (t RefreshToken) Expired(now time.Time) bool {
	return now.Unix() > t.ExpiresIn
}
