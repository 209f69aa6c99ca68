package models

import (
	"time"
)

// Poke is a "listen to this" nudge from one user to another, carrying a song.
// A sender can have at most one outstanding poke per recipient, enforced by
// the composite unique index.
type Poke struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SenderID    uint      `gorm:"not null;uniqueIndex:idx_poke_pair" json:"sender_id"`
	RecipientID uint      `gorm:"not null;uniqueIndex:idx_poke_pair;index" json:"recipient_id"`
	Song        Track     `gorm:"type:json" json:"song"`
	CreatedAt   time.Time `json:"created_at"`

	Sender    *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Recipient *User `gorm:"foreignKey:RecipientID" json:"-"`
}

// PokeReply records that a poked user wrote back. Creating one consumes the
// originating poke.
type PokeReply struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RecipientID uint      `gorm:"not null;index" json:"recipient_id"`
	SenderID    uint      `gorm:"not null" json:"sender_id"`
	Text        string    `gorm:"not null" json:"text"`
	CreatedAt   time.Time `json:"created_at"`

	Sender    *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Recipient *User `gorm:"foreignKey:RecipientID" json:"-"`
}

// PokeNotification is the enriched view returned by the notifications
// endpoint. HasMessaged reports whether the two users have any direct
// message history in either direction.
type PokeNotification struct {
	ID          uint        `json:"id"`
	Song        Track       `json:"song"`
	CreatedAt   time.Time   `json:"created_at"`
	Sender      UserSummary `json:"sender"`
	HasMessaged bool        `json:"has_messaged"`
}
