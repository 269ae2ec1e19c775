package repositories

import (
	"testing"
	"time"

	"github.com/freetly/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTagRepository_CreateAndLookups(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresTagRepository(db)
	user := createTestUser(t, db)
	freetID := newFreetID()

	tag := &models.Tag{FreetID: freetID, Label: models.LabelSports, AuthorID: user.ID}
	require.NoError(t, repo.CreateTag(tag))
	assert.False(t, tag.CreatedAt.IsZero())

	byFreet, err := repo.GetTagByFreet(freetID)
	require.NoError(t, err)
	assert.Equal(t, models.LabelSports, byFreet.Label)

	byID, err := repo.GetTagByID(tag.ID)
	require.NoError(t, err)
	assert.Equal(t, freetID, byID.FreetID)

	byLabel, err := repo.GetTagsByLabel(models.LabelSports)
	require.NoError(t, err)
	assert.Len(t, byLabel, 1)

	_, err = repo.GetTagByFreet(newFreetID())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTagRepository_OneTagPerFreet(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresTagRepository(db)
	user := createTestUser(t, db)
	freetID := newFreetID()

	require.NoError(t, repo.CreateTag(&models.Tag{FreetID: freetID, Label: models.LabelComedy, AuthorID: user.ID}))

	// A second tag for the same freet conflicts even with a different label.
	err := repo.CreateTag(&models.Tag{FreetID: freetID, Label: models.LabelSad, AuthorID: user.ID})
	assert.ErrorIs(t, err, ErrTagExists)
}

func TestTagRepository_GetAllTagsSortedByLabel(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresTagRepository(db)
	user := createTestUser(t, db)

	for _, label := range []models.TagLabel{models.LabelSports, models.LabelComedy, models.LabelPolitics} {
		require.NoError(t, repo.CreateTag(&models.Tag{FreetID: newFreetID(), Label: label, AuthorID: user.ID}))
	}

	tags, err := repo.GetAllTags()
	require.NoError(t, err)
	require.Len(t, tags, 3)
	assert.Equal(t, models.LabelComedy, tags[0].Label)
	assert.Equal(t, models.LabelPolitics, tags[1].Label)
	assert.Equal(t, models.LabelSports, tags[2].Label)
}

func TestTagRepository_GetCuratedTags(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresTagRepository(db)
	reader := createTestUser(t, db)
	author := createTestUser(t, db)
	base := time.Now().Add(-time.Hour)

	older := &models.Tag{FreetID: newFreetID(), Label: models.LabelSports, AuthorID: author.ID, CreatedAt: base.Add(10 * time.Minute)}
	newer := &models.Tag{FreetID: newFreetID(), Label: models.LabelSports, AuthorID: author.ID, CreatedAt: base.Add(20 * time.Minute)}
	own := &models.Tag{FreetID: newFreetID(), Label: models.LabelSports, AuthorID: reader.ID, CreatedAt: base.Add(30 * time.Minute)}
	offLabel := &models.Tag{FreetID: newFreetID(), Label: models.LabelPolitics, AuthorID: author.ID, CreatedAt: base.Add(40 * time.Minute)}
	for _, tag := range []*models.Tag{older, newer, own, offLabel} {
		require.NoError(t, repo.CreateTag(tag))
	}

	tags, err := repo.GetCuratedTags([]models.TagLabel{models.LabelSports}, reader.ID)
	require.NoError(t, err)

	// The reader's own tag and the off-label tag are filtered out; the rest
	// arrive newest first.
	require.Len(t, tags, 2)
	assert.Equal(t, newer.FreetID, tags[0].FreetID)
	assert.Equal(t, older.FreetID, tags[1].FreetID)

	// Empty label set means an empty result, not an error.
	tags, err = repo.GetCuratedTags(nil, reader.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestTagRepository_DeleteAndCascades(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresTagRepository(db)
	user := createTestUser(t, db)
	other := createTestUser(t, db)
	freetID := newFreetID()

	tag := &models.Tag{FreetID: freetID, Label: models.LabelHappy, AuthorID: user.ID}
	require.NoError(t, repo.CreateTag(tag))
	require.NoError(t, repo.CreateTag(&models.Tag{FreetID: newFreetID(), Label: models.LabelHappy, AuthorID: other.ID}))

	require.NoError(t, repo.DeleteTag(tag.ID))
	_, err := repo.GetTagByFreet(freetID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.DeleteTag(tag.ID), gorm.ErrRecordNotFound)

	require.NoError(t, repo.DeleteByAuthor(other.ID))
	tags, err := repo.GetAllTags()
	require.NoError(t, err)
	assert.Empty(t, tags)

	// Cascade deletes are no-ops with nothing to delete.
	assert.NoError(t, repo.DeleteByFreet(freetID))
	assert.NoError(t, repo.DeleteByAuthor(user.ID))
}
