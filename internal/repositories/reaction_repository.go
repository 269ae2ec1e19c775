package repositories

import (
	"errors"

	"github.com/freetly/backend/internal/models"
	"gorm.io/gorm"
)

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	CreateReaction(reaction *models.Reaction) error
	GetReaction(freetID string, userID uint) (*models.Reaction, error)
	GetReactionsByFreet(freetID string) ([]models.Reaction, error)
	GetAllReactions() ([]models.Reaction, error)
	GetReactionsCountByFreet(freetID string) (int64, error)
	HasUserReacted(freetID string, userID uint) (bool, error)
	DeleteReaction(freetID string, userID uint) error
	DeleteByAuthor(userID uint) error
	DeleteByFreet(freetID string) error
	DeleteByFreets(freetIDs []string) error
}

// PostgresReactionRepository implements ReactionRepository for PostgreSQL
type PostgresReactionRepository struct {
	db *gorm.DB
}

// NewPostgresReactionRepository creates a new PostgresReactionRepository
func NewPostgresReactionRepository(db *gorm.DB) *PostgresReactionRepository {
	return &PostgresReactionRepository{db: db}
}

// CreateReaction creates a new reaction. A second reaction for the same
// (freet, user) pair fails with ErrReactionExists.
func (r *PostgresReactionRepository) CreateReaction(reaction *models.Reaction) error {
	err := r.db.Create(reaction).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrReactionExists
	}
	return err
}

// GetReaction retrieves a specific reaction by freetID and userID
func (r *PostgresReactionRepository) GetReaction(freetID string, userID uint) (*models.Reaction, error) {
	var reaction models.Reaction
	if err := r.db.Where("freet_id = ? AND user_id = ?", freetID, userID).First(&reaction).Error; err != nil {
		return nil, err
	}
	return &reaction, nil
}

// GetReactionsByFreet retrieves all reactions for a specific freet
func (r *PostgresReactionRepository) GetReactionsByFreet(freetID string) ([]models.Reaction, error) {
	var reactions []models.Reaction
	if err := r.db.Where("freet_id = ?", freetID).Order("created_at DESC").Find(&reactions).Error; err != nil {
		return nil, err
	}
	return reactions, nil
}

// GetAllReactions retrieves every reaction, grouped by freet
func (r *PostgresReactionRepository) GetAllReactions() ([]models.Reaction, error) {
	var reactions []models.Reaction
	if err := r.db.Order("freet_id").Find(&reactions).Error; err != nil {
		return nil, err
	}
	return reactions, nil
}

// GetReactionsCountByFreet retrieves the number of reactions on a freet
func (r *PostgresReactionRepository) GetReactionsCountByFreet(freetID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Reaction{}).Where("freet_id = ?", freetID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// HasUserReacted checks if a user has already reacted to a freet
func (r *PostgresReactionRepository) HasUserReacted(freetID string, userID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Reaction{}).Where("freet_id = ? AND user_id = ?", freetID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteReaction deletes the reaction for the (freet, user) pair. Both keys
// are required; deleting by freet alone is not part of this contract.
func (r *PostgresReactionRepository) DeleteReaction(freetID string, userID uint) error {
	res := r.db.Where("freet_id = ? AND user_id = ?", freetID, userID).Delete(&models.Reaction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByAuthor removes every reaction placed by the user. No-op when the
// user never reacted to anything.
func (r *PostgresReactionRepository) DeleteByAuthor(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Reaction{}).Error
}

// DeleteByFreet removes every reaction on the freet. No-op when none exist.
func (r *PostgresReactionRepository) DeleteByFreet(freetID string) error {
	return r.db.Where("freet_id = ?", freetID).Delete(&models.Reaction{}).Error
}

// DeleteByFreets removes every reaction on any of the given freets. Backs
// the account-deletion sweep of reactions other users left on the deleted
// account's freets.
func (r *PostgresReactionRepository) DeleteByFreets(freetIDs []string) error {
	if len(freetIDs) == 0 {
		return nil
	}
	return r.db.Where("freet_id IN ?", freetIDs).Delete(&models.Reaction{}).Error
}
