package domain

import "time"

const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// User is the account record. Password is nil for OAuth-only accounts;
// GoogleID is nil until a Google identity is linked.
type User struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	Email      string     `json:"email" gorm:"uniqueIndex;not null"`
	Username   *string    `json:"username,omitempty" gorm:"uniqueIndex"`
	FullName   string     `json:"full_name,omitempty"`
	Password   *string    `json:"-" gorm:"column:hashed_password;size:256"`
	IsActive   bool       `json:"is_active" gorm:"default:true"`
	IsVerified bool       `json:"is_verified" gorm:"default:false"`
	GoogleID   *string    `json:"-" gorm:"uniqueIndex"`
	Provider   string     `json:"provider" gorm:"default:local"`
	AvatarURL  string     `json:"avatar_url,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
}
