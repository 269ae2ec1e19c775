package models

import "time"

// Expansion is the optional long-form elaboration of a freet. At most one
// per freet (unique index on freet_id). Visibility is per viewer: an
// ExpansionView row means that viewer has opted in to seeing the expansion.
type Expansion struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FreetID   string    `json:"freet_id" gorm:"uniqueIndex"`
	AuthorID  uint      `json:"author_id" gorm:"index"`
	Body      string    `json:"body" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Viewers holds the user IDs currently opted in. Populated from
	// ExpansionView rows, not a column.
	Viewers []uint `json:"viewers" gorm:"-"`
}

// VisibleTo reports whether userID has toggled the expansion on.
func (e *Expansion) VisibleTo(userID uint) bool {
	for _, id := range e.Viewers {
		if id == userID {
			return true
		}
	}
	return false
}

// ExpansionView is one element of an expansion's visibility set.
type ExpansionView struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ExpansionID uint      `json:"expansion_id" gorm:"index;uniqueIndex:idx_expansion_viewer"`
	UserID      uint      `json:"user_id" gorm:"index;uniqueIndex:idx_expansion_viewer"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateExpansionRequest defines the request body for expanding a freet
type CreateExpansionRequest struct {
	Body string `json:"body" validate:"required,min=1"`
}
