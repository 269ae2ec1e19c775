package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Freet represents a short post stored in MongoDB
type Freet struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID  uint               `json:"author_id" bson:"author_id"`
	Content   string             `json:"content" bson:"content"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreateFreetRequest defines the request body for publishing a new freet
type CreateFreetRequest struct {
	Content string `json:"content" validate:"required,min=1,max=280"`
}

// UpdateFreetRequest defines the request body for editing an existing freet
type UpdateFreetRequest struct {
	Content string `json:"content" validate:"required,min=1,max=280"`
}
