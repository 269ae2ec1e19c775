package handlers

import (
	"context"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/freetly/backend/internal/models"
	"github.com/freetly/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	suffix := time.Now().UnixNano()
	user := &models.User{
		Username: fmt.Sprintf("user_%d", suffix),
		Email:    fmt.Sprintf("user_%d@example.com", suffix),
		Password: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// newAuthedContext builds an echo context carrying the JWT claims the auth
// middleware would have set, bypassing token parsing in tests.
func newAuthedContext(method, target, body string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validators.NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", &models.JwtCustomClaims{UserID: userID})
	return c, rec
}

// httpStatus extracts the status a handler error would produce.
func httpStatus(t *testing.T, err error) int {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %v", err)
	return httpErr.Code
}

// fakeFreetRepository is an in-memory stand-in for the Mongo freet store.
type fakeFreetRepository struct {
	mu     sync.Mutex
	freets map[string]models.Freet
}

func newFakeFreetRepository() *fakeFreetRepository {
	return &fakeFreetRepository{freets: make(map[string]models.Freet)}
}

func (f *fakeFreetRepository) CreateFreet(ctx context.Context, freet *models.Freet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	freet.ID = primitive.NewObjectID()
	if freet.CreatedAt.IsZero() {
		freet.CreatedAt = time.Now()
	}
	freet.UpdatedAt = freet.CreatedAt
	f.freets[freet.ID.Hex()] = *freet
	return nil
}

func (f *fakeFreetRepository) GetFreetByID(ctx context.Context, id string) (*models.Freet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	freet, ok := f.freets[id]
	if !ok {
		return nil, fmt.Errorf("freet not found")
	}
	return &freet, nil
}

func (f *fakeFreetRepository) GetFreetsByAuthor(ctx context.Context, authorID uint) ([]models.Freet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var freets []models.Freet
	for _, freet := range f.freets {
		if freet.AuthorID == authorID {
			freets = append(freets, freet)
		}
	}
	sort.Slice(freets, func(i, j int) bool { return freets[i].CreatedAt.After(freets[j].CreatedAt) })
	return freets, nil
}

func (f *fakeFreetRepository) GetFreetsByIDs(ctx context.Context, ids []string) (map[string]models.Freet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	byID := make(map[string]models.Freet, len(ids))
	for _, id := range ids {
		if freet, ok := f.freets[id]; ok {
			byID[id] = freet
		}
	}
	return byID, nil
}

func (f *fakeFreetRepository) GetAllFreets(ctx context.Context) ([]models.Freet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var freets []models.Freet
	for _, freet := range f.freets {
		freets = append(freets, freet)
	}
	sort.Slice(freets, func(i, j int) bool { return freets[i].CreatedAt.After(freets[j].CreatedAt) })
	return freets, nil
}

func (f *fakeFreetRepository) UpdateFreet(ctx context.Context, id string, content string) (*models.Freet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	freet, ok := f.freets[id]
	if !ok {
		return nil, fmt.Errorf("freet not found")
	}
	freet.Content = content
	freet.UpdatedAt = time.Now()
	f.freets[id] = freet
	return &freet, nil
}

func (f *fakeFreetRepository) DeleteFreet(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.freets[id]; !ok {
		return fmt.Errorf("freet not found")
	}
	delete(f.freets, id)
	return nil
}

func (f *fakeFreetRepository) DeleteByAuthor(ctx context.Context, authorID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, freet := range f.freets {
		if freet.AuthorID == authorID {
			delete(f.freets, id)
		}
	}
	return nil
}
