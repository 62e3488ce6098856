// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a user account. The username is the public handle used for
// profile lookups and never changes its role as the identity key.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"unique;not null" json:"username"`
	FullName     string         `json:"fullname"`
	Email        string         `gorm:"unique;not null" json:"email"`
	Password     string         `gorm:"not null" json:"-"`
	Bio          string         `json:"bio"`
	Link         string         `json:"link"`
	ProfileImage string         `json:"profile_image"`
	CoverImage   string         `json:"cover_image"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// FollowerIDs and FollowingIDs are not persisted on the user row; they are
	// views over the follows table populated at query time.
	FollowerIDs  []uint `gorm:"-" json:"followers"`
	FollowingIDs []uint `gorm:"-" json:"following"`
	// LikedPostIDs mirrors the likes table for this user.
	LikedPostIDs []uint `gorm:"-" json:"liked_posts"`

	Posts []Post `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// PublicSummary returns the fields of a user that are safe to embed in
// another user's payload (notification senders, comment authors).
func (u *User) PublicSummary() User {
	return User{
		ID:           u.ID,
		Username:     u.Username,
		FullName:     u.FullName,
		ProfileImage: u.ProfileImage,
	}
}
