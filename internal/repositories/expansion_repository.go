package repositories

import (
	"errors"

	"github.com/freetly/backend/internal/models"
	"gorm.io/gorm"
)

// ExpansionRepository defines the interface for full-story data operations
type ExpansionRepository interface {
	CreateExpansion(expansion *models.Expansion) error
	GetExpansionByID(id uint) (*models.Expansion, error)
	GetExpansionByFreet(freetID string) (*models.Expansion, error)
	GetAllExpansions() ([]models.Expansion, error)
	ToggleView(expansionID uint, userID uint) (*models.Expansion, error)
	DeleteExpansion(id uint) error
	DeleteByAuthor(userID uint) error
	DeleteByFreet(freetID string) error
}

// PostgresExpansionRepository implements ExpansionRepository for PostgreSQL
type PostgresExpansionRepository struct {
	db *gorm.DB
}

// NewPostgresExpansionRepository creates a new PostgresExpansionRepository
func NewPostgresExpansionRepository(db *gorm.DB) *PostgresExpansionRepository {
	return &PostgresExpansionRepository{db: db}
}

// CreateExpansion creates the expansion for a freet with an empty visibility
// set. A second create for the same freet fails with ErrExpansionExists.
func (r *PostgresExpansionRepository) CreateExpansion(expansion *models.Expansion) error {
	err := r.db.Create(expansion).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrExpansionExists
	}
	if err != nil {
		return err
	}
	expansion.Viewers = []uint{}
	return nil
}

// GetExpansionByID retrieves an expansion and its viewer set by ID
func (r *PostgresExpansionRepository) GetExpansionByID(id uint) (*models.Expansion, error) {
	var expansion models.Expansion
	if err := r.db.First(&expansion, id).Error; err != nil {
		return nil, err
	}
	if err := r.loadViewers(&expansion); err != nil {
		return nil, err
	}
	return &expansion, nil
}

// GetExpansionByFreet retrieves the expansion attached to a freet, if any
func (r *PostgresExpansionRepository) GetExpansionByFreet(freetID string) (*models.Expansion, error) {
	var expansion models.Expansion
	if err := r.db.Where("freet_id = ?", freetID).First(&expansion).Error; err != nil {
		return nil, err
	}
	if err := r.loadViewers(&expansion); err != nil {
		return nil, err
	}
	return &expansion, nil
}

// GetAllExpansions retrieves every expansion with its viewer set
func (r *PostgresExpansionRepository) GetAllExpansions() ([]models.Expansion, error) {
	var expansions []models.Expansion
	if err := r.db.Order("created_at DESC").Find(&expansions).Error; err != nil {
		return nil, err
	}
	for i := range expansions {
		if err := r.loadViewers(&expansions[i]); err != nil {
			return nil, err
		}
	}
	return expansions, nil
}

// ToggleView flips userID's membership in the expansion's visibility set and
// returns the updated expansion. Adding and removing happen in one
// transaction so a toggle never half-applies.
func (r *PostgresExpansionRepository) ToggleView(expansionID uint, userID uint) (*models.Expansion, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var expansion models.Expansion
		if err := tx.First(&expansion, expansionID).Error; err != nil {
			return err
		}
		res := tx.Where("expansion_id = ? AND user_id = ?", expansionID, userID).Delete(&models.ExpansionView{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return tx.Create(&models.ExpansionView{ExpansionID: expansionID, UserID: userID}).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetExpansionByID(expansionID)
}

// DeleteExpansion deletes an expansion and its viewer set by ID
func (r *PostgresExpansionRepository) DeleteExpansion(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("expansion_id = ?", id).Delete(&models.ExpansionView{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Expansion{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// DeleteByAuthor removes every expansion the user wrote, viewer sets
// included. No-op when none exist.
func (r *PostgresExpansionRepository) DeleteByAuthor(userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&models.Expansion{}).Where("author_id = ?", userID).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("expansion_id IN ?", ids).Delete(&models.ExpansionView{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&models.Expansion{}).Error
	})
}

// DeleteByFreet removes the expansion on the freet, viewer set included.
// No-op when the freet was never expanded.
func (r *PostgresExpansionRepository) DeleteByFreet(freetID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&models.Expansion{}).Where("freet_id = ?", freetID).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("expansion_id IN ?", ids).Delete(&models.ExpansionView{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&models.Expansion{}).Error
	})
}

func (r *PostgresExpansionRepository) loadViewers(expansion *models.Expansion) error {
	viewers := []uint{}
	err := r.db.Model(&models.ExpansionView{}).
		Where("expansion_id = ?", expansion.ID).
		Order("created_at ASC").
		Pluck("user_id", &viewers).Error
	if err != nil {
		return err
	}
	expansion.Viewers = viewers
	return nil
}
