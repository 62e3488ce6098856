package models

import (
	"time"
)

// NotificationType enumerates the actions that produce a notification.
// Unfollows and comments produce none; this asymmetry is inherited product
// behavior, not an oversight.
type NotificationType string

const (
	// NotificationTypeFollow is emitted when a user gains a new follower.
	NotificationTypeFollow NotificationType = "follow"
	// NotificationTypeLike is emitted when a user's post is liked.
	NotificationTypeLike NotificationType = "like"
)

// Notification is a record addressed to a recipient about an action taken by
// another user. It is owned by the recipient for read/delete purposes.
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	FromID    uint             `gorm:"not null" json:"from_id"`
	From      User             `gorm:"foreignKey:FromID" json:"from"`
	ToID      uint             `gorm:"not null;index" json:"to_id"`
	Type      NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Read      bool             `gorm:"default:false" json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
