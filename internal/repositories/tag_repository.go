package repositories

import (
	"errors"

	"github.com/freetly/backend/internal/models"
	"gorm.io/gorm"
)

// TagRepository defines the interface for category tag data operations
type TagRepository interface {
	CreateTag(tag *models.Tag) error
	GetTagByID(id uint) (*models.Tag, error)
	GetTagByFreet(freetID string) (*models.Tag, error)
	GetTagsByLabel(label models.TagLabel) ([]models.Tag, error)
	GetAllTags() ([]models.Tag, error)
	GetCuratedTags(labels []models.TagLabel, excludeAuthor uint) ([]models.Tag, error)
	DeleteTag(id uint) error
	DeleteByAuthor(userID uint) error
	DeleteByFreet(freetID string) error
}

// PostgresTagRepository implements TagRepository for PostgreSQL
type PostgresTagRepository struct {
	db *gorm.DB
}

// NewPostgresTagRepository creates a new PostgresTagRepository
func NewPostgresTagRepository(db *gorm.DB) *PostgresTagRepository {
	return &PostgresTagRepository{db: db}
}

// CreateTag creates the tag for a freet. A freet carries at most one tag;
// a second create for the same freet fails with ErrTagExists.
func (r *PostgresTagRepository) CreateTag(tag *models.Tag) error {
	err := r.db.Create(tag).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrTagExists
	}
	return err
}

// GetTagByID retrieves a tag by its ID
func (r *PostgresTagRepository) GetTagByID(id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.First(&tag, id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetTagByFreet retrieves the tag assigned to a freet, if any
func (r *PostgresTagRepository) GetTagByFreet(freetID string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.Where("freet_id = ?", freetID).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetTagsByLabel retrieves all tags carrying the given label, newest first
func (r *PostgresTagRepository) GetTagsByLabel(label models.TagLabel) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.Where("label = ?", string(label)).Order("created_at DESC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// GetAllTags retrieves every tag, sorted alphabetically by label
func (r *PostgresTagRepository) GetAllTags() ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.Order("label ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// GetCuratedTags retrieves tags matching any of the given labels, excluding
// those authored by excludeAuthor, newest first. This is the feed curation
// query.
func (r *PostgresTagRepository) GetCuratedTags(labels []models.TagLabel, excludeAuthor uint) ([]models.Tag, error) {
	tags := []models.Tag{}
	if len(labels) == 0 {
		return tags, nil
	}
	labelStrs := make([]string, len(labels))
	for i, l := range labels {
		labelStrs[i] = string(l)
	}
	err := r.db.
		Where("label IN ? AND author_id <> ?", labelStrs, excludeAuthor).
		Order("created_at DESC").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// DeleteTag deletes a tag by its ID
func (r *PostgresTagRepository) DeleteTag(id uint) error {
	res := r.db.Delete(&models.Tag{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByAuthor removes every tag the user created. No-op when none exist.
func (r *PostgresTagRepository) DeleteByAuthor(userID uint) error {
	return r.db.Where("author_id = ?", userID).Delete(&models.Tag{}).Error
}

// DeleteByFreet removes the tag on the freet. No-op when the freet was
// never tagged.
func (r *PostgresTagRepository) DeleteByFreet(freetID string) error {
	return r.db.Where("freet_id = ?", freetID).Delete(&models.Tag{}).Error
}
