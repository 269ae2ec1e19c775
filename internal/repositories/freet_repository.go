package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/freetly/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FreetRepository defines the interface for freet data operations
type FreetRepository interface {
	CreateFreet(ctx context.Context, freet *models.Freet) error
	GetFreetByID(ctx context.Context, id string) (*models.Freet, error)
	GetFreetsByAuthor(ctx context.Context, authorID uint) ([]models.Freet, error)
	GetFreetsByIDs(ctx context.Context, ids []string) (map[string]models.Freet, error)
	GetAllFreets(ctx context.Context) ([]models.Freet, error)
	UpdateFreet(ctx context.Context, id string, content string) (*models.Freet, error)
	DeleteFreet(ctx context.Context, id string) error
	DeleteByAuthor(ctx context.Context, authorID uint) error
}

// MongoFreetRepository implements FreetRepository for MongoDB
type MongoFreetRepository struct {
	collection *mongo.Collection
}

// NewMongoFreetRepository creates a new MongoFreetRepository
func NewMongoFreetRepository(db *mongo.Database) *MongoFreetRepository {
	return &MongoFreetRepository{collection: db.Collection("freets")}
}

// CreateFreet creates a new freet in MongoDB
func (r *MongoFreetRepository) CreateFreet(ctx context.Context, freet *models.Freet) error {
	freet.ID = primitive.NewObjectID()
	freet.CreatedAt = time.Now()
	freet.UpdatedAt = freet.CreatedAt
	_, err := r.collection.InsertOne(ctx, freet)
	return err
}

// GetFreetByID retrieves a freet by ID from MongoDB
func (r *MongoFreetRepository) GetFreetByID(ctx context.Context, id string) (*models.Freet, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid freet ID format: %w", err)
	}

	var freet models.Freet
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&freet)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("freet not found")
		}
		return nil, err
	}
	return &freet, nil
}

// GetFreetsByAuthor retrieves every freet published by the author, newest first
func (r *MongoFreetRepository) GetFreetsByAuthor(ctx context.Context, authorID uint) ([]models.Freet, error) {
	var freets []models.Freet
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"author_id": authorID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &freets); err != nil {
		return nil, err
	}
	return freets, nil
}

// GetFreetsByIDs retrieves the freets with the given hex IDs, keyed by hex
// ID so callers can project an externally ordered ID list onto freets.
// IDs with no matching freet are simply absent from the map.
func (r *MongoFreetRepository) GetFreetsByIDs(ctx context.Context, ids []string) (map[string]models.Freet, error) {
	byID := make(map[string]models.Freet, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, fmt.Errorf("invalid freet ID format: %w", err)
		}
		objIDs = append(objIDs, objID)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": objIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var freets []models.Freet
	if err = cursor.All(ctx, &freets); err != nil {
		return nil, err
	}
	for _, f := range freets {
		byID[f.ID.Hex()] = f
	}
	return byID, nil
}

// GetAllFreets retrieves all freets from MongoDB, newest first
func (r *MongoFreetRepository) GetAllFreets(ctx context.Context) ([]models.Freet, error) {
	var freets []models.Freet
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &freets); err != nil {
		return nil, err
	}
	return freets, nil
}

// UpdateFreet replaces a freet's content and returns the updated record
func (r *MongoFreetRepository) UpdateFreet(ctx context.Context, id string, content string) (*models.Freet, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid freet ID format: %w", err)
	}

	update := bson.M{
		"$set": bson.M{
			"content":    content,
			"updated_at": time.Now(),
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, fmt.Errorf("freet not found")
	}
	return r.GetFreetByID(ctx, id)
}

// DeleteFreet deletes a freet from MongoDB
func (r *MongoFreetRepository) DeleteFreet(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid freet ID format: %w", err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("freet not found")
	}
	return nil
}

// DeleteByAuthor removes every freet the author published. No-op when the
// author never freeted.
func (r *MongoFreetRepository) DeleteByAuthor(ctx context.Context, authorID uint) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"author_id": authorID})
	return err
}
