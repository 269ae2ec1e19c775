package models

import "time"

// TagLabel is the closed set of category labels a freet can carry.
type TagLabel string

const (
	LabelPolitics    TagLabel = "Politics"
	LabelComedy      TagLabel = "Comedy"
	LabelSports      TagLabel = "Sports"
	LabelEngineering TagLabel = "Engineering"
	LabelHappy       TagLabel = "Happy"
	LabelSad         TagLabel = "Sad"
	// LabelNews is accepted when tagging but has no matching preference
	// flag, so it never surfaces through curation.
	LabelNews TagLabel = "News"
)

// AllTagLabels lists every accepted label, in display order.
var AllTagLabels = []TagLabel{
	LabelPolitics,
	LabelComedy,
	LabelSports,
	LabelEngineering,
	LabelHappy,
	LabelSad,
	LabelNews,
}

// Valid reports whether l is one of the accepted labels (case-sensitive).
func (l TagLabel) Valid() bool {
	for _, label := range AllTagLabels {
		if l == label {
			return true
		}
	}
	return false
}

// Tag assigns a freet its single category label. The unique index on
// freet_id enforces the one-tag-per-freet rule.
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FreetID   string    `json:"freet_id" gorm:"uniqueIndex"`
	Label     TagLabel  `json:"label" gorm:"index"`
	AuthorID  uint      `json:"author_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTagRequest defines the request body for tagging a freet
type CreateTagRequest struct {
	Label string `json:"label" validate:"required,oneof=Politics Comedy Sports Engineering Happy Sad News"`
}
