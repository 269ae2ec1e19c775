package models

import "time"

// Preference holds a user's per-category feed settings. One row per user.
// Absence of a row means the user has not initialized their feed yet.
type Preference struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"uniqueIndex"`
	Politics    bool      `json:"politics"`
	Comedy      bool      `json:"comedy"`
	Sports      bool      `json:"sports"`
	Engineering bool      `json:"engineering"`
	Happy       bool      `json:"happy"`
	Sad         bool      `json:"sad"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ActiveLabels returns the tag labels whose preference flag is on. "News"
// has no flag and is never returned here.
func (p *Preference) ActiveLabels() []TagLabel {
	var labels []TagLabel
	if p.Politics {
		labels = append(labels, LabelPolitics)
	}
	if p.Comedy {
		labels = append(labels, LabelComedy)
	}
	if p.Sports {
		labels = append(labels, LabelSports)
	}
	if p.Engineering {
		labels = append(labels, LabelEngineering)
	}
	if p.Happy {
		labels = append(labels, LabelHappy)
	}
	if p.Sad {
		labels = append(labels, LabelSad)
	}
	return labels
}

// PreferenceFlags is the normalized boolean form of the six settings.
type PreferenceFlags struct {
	Politics    bool
	Comedy      bool
	Sports      bool
	Engineering bool
	Happy       bool
	Sad         bool
}

// PreferenceRequest carries the wire encoding of the six flags. Clients
// send "Yes"/"No" strings; anything else is rejected by validation.
type PreferenceRequest struct {
	Politics    string `json:"politics" validate:"required,oneof=Yes No"`
	Comedy      string `json:"comedy" validate:"required,oneof=Yes No"`
	Sports      string `json:"sports" validate:"required,oneof=Yes No"`
	Engineering string `json:"engineering" validate:"required,oneof=Yes No"`
	Happy       string `json:"happy" validate:"required,oneof=Yes No"`
	Sad         string `json:"sad" validate:"required,oneof=Yes No"`
}

// Flags normalizes the Yes/No encoding to booleans.
func (r *PreferenceRequest) Flags() PreferenceFlags {
	return PreferenceFlags{
		Politics:    r.Politics == "Yes",
		Comedy:      r.Comedy == "Yes",
		Sports:      r.Sports == "Yes",
		Engineering: r.Engineering == "Yes",
		Happy:       r.Happy == "Yes",
		Sad:         r.Sad == "Yes",
	}
}
