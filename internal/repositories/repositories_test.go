package repositories

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/freetly/backend/internal/models"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a throwaway sqlite database with the same error
// translation the production Postgres connection uses, so unique-index
// violations surface as gorm.ErrDuplicatedKey here too.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "freetly_test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Reaction{},
		&models.Tag{},
		&models.Expansion{},
		&models.ExpansionView{},
		&models.Preference{},
	))
	return db
}

// newFreetID returns a fresh Mongo-style hex ID for relational rows to
// reference; the freet itself is irrelevant at this layer.
func newFreetID() string {
	return primitive.NewObjectID().Hex()
}

func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	// Suffix keeps generated names unique under the username/email indexes.
	suffix := time.Now().UnixNano()
	user := &models.User{
		Username: fmt.Sprintf("%s_%d", gofakeit.Username(), suffix),
		Email:    fmt.Sprintf("%d_%s", suffix, gofakeit.Email()),
		Password: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
