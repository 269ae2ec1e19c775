package repositories

import (
	"testing"

	"github.com/freetly/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPreferenceRepository_AbsenceMeansUninitialized(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresPreferenceRepository(db)
	user := createTestUser(t, db)

	_, err := repo.GetByUser(user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPreferenceRepository_CreateOncePerUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresPreferenceRepository(db)
	user := createTestUser(t, db)

	require.NoError(t, repo.CreatePreference(&models.Preference{UserID: user.ID, Sports: true}))

	err := repo.CreatePreference(&models.Preference{UserID: user.ID, Comedy: true})
	assert.ErrorIs(t, err, ErrPreferenceExists)

	preference, err := repo.GetByUser(user.ID)
	require.NoError(t, err)
	assert.True(t, preference.Sports)
	assert.False(t, preference.Comedy)
}

func TestPreferenceRepository_UpdateOverwritesAllFlags(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresPreferenceRepository(db)
	user := createTestUser(t, db)

	require.NoError(t, repo.CreatePreference(&models.Preference{
		UserID:   user.ID,
		Politics: true,
		Comedy:   true,
		Sports:   true,
	}))

	updated, err := repo.UpdatePreference(user.ID, models.PreferenceFlags{Happy: true})
	require.NoError(t, err)

	// Flags not set in the update are overwritten to false, not kept.
	assert.False(t, updated.Politics)
	assert.False(t, updated.Comedy)
	assert.False(t, updated.Sports)
	assert.True(t, updated.Happy)
	assert.False(t, updated.Sad)
	assert.False(t, updated.Engineering)
}

func TestPreferenceRepository_UpdateRequiresExistingRecord(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresPreferenceRepository(db)
	user := createTestUser(t, db)

	_, err := repo.UpdatePreference(user.ID, models.PreferenceFlags{Sad: true})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPreferenceRepository_DeleteByUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresPreferenceRepository(db)
	user := createTestUser(t, db)

	require.NoError(t, repo.CreatePreference(&models.Preference{UserID: user.ID}))
	require.NoError(t, repo.DeleteByUser(user.ID))

	_, err := repo.GetByUser(user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Deleting with no record is a no-op, as the account-deletion path
	// invokes it unconditionally.
	assert.NoError(t, repo.DeleteByUser(user.ID))
}
