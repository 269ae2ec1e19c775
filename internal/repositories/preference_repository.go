package repositories

import (
	"errors"

	"github.com/freetly/backend/internal/models"
	"gorm.io/gorm"
)

// PreferenceRepository defines the interface for feed preference operations
type PreferenceRepository interface {
	GetByUser(userID uint) (*models.Preference, error)
	CreatePreference(preference *models.Preference) error
	UpdatePreference(userID uint, flags models.PreferenceFlags) (*models.Preference, error)
	DeleteByUser(userID uint) error
}

// PostgresPreferenceRepository implements PreferenceRepository for PostgreSQL
type PostgresPreferenceRepository struct {
	db *gorm.DB
}

// NewPostgresPreferenceRepository creates a new PostgresPreferenceRepository
func NewPostgresPreferenceRepository(db *gorm.DB) *PostgresPreferenceRepository {
	return &PostgresPreferenceRepository{db: db}
}

// GetByUser retrieves the user's preference record. Returns
// gorm.ErrRecordNotFound when the user has not initialized their feed,
// which callers use as the first-initialization guard.
func (r *PostgresPreferenceRepository) GetByUser(userID uint) (*models.Preference, error) {
	var preference models.Preference
	if err := r.db.Where("user_id = ?", userID).First(&preference).Error; err != nil {
		return nil, err
	}
	return &preference, nil
}

// CreatePreference creates the user's preference record. A second create for
// the same user fails with ErrPreferenceExists.
func (r *PostgresPreferenceRepository) CreatePreference(preference *models.Preference) error {
	err := r.db.Create(preference).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrPreferenceExists
	}
	return err
}

// UpdatePreference overwrites all six flags unconditionally and returns the
// updated record. Fails with gorm.ErrRecordNotFound when the user has no
// preference record yet.
func (r *PostgresPreferenceRepository) UpdatePreference(userID uint, flags models.PreferenceFlags) (*models.Preference, error) {
	res := r.db.Model(&models.Preference{}).Where("user_id = ?", userID).Updates(map[string]interface{}{
		"politics":    flags.Politics,
		"comedy":      flags.Comedy,
		"sports":      flags.Sports,
		"engineering": flags.Engineering,
		"happy":       flags.Happy,
		"sad":         flags.Sad,
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByUser(userID)
}

// DeleteByUser removes the user's preference record during account deletion.
// No-op when the user never initialized a feed.
func (r *PostgresPreferenceRepository) DeleteByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Preference{}).Error
}
