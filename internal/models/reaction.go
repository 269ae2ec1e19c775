package models

import "time"

// Reaction is a user's one-time approval mark on a freet. The composite
// unique index makes duplicate (freet, user) pairs a storage-level conflict,
// not just a handler precondition.
type Reaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FreetID   string    `json:"freet_id" gorm:"index;uniqueIndex:idx_reaction_freet_user"` // Mongo ObjectID as hex string
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_reaction_freet_user"`
	CreatedAt time.Time `json:"created_at"`
}
