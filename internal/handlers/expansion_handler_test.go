package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/freetly/backend/internal/models"
	"github.com/freetly/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExpansionHandlerFixture(t *testing.T) (*ExpansionHandler, *fakeFreetRepository, *models.User) {
	t.Helper()
	db := newTestDB(t)
	freets := newFakeFreetRepository()
	h := NewExpansionHandler(
		repositories.NewPostgresExpansionRepository(db),
		freets,
		repositories.NewPostgresUserRepository(db),
	)
	return h, freets, createTestUser(t, db)
}

func TestExpandFreet_RejectsBlankBody(t *testing.T) {
	h, freets, author := newExpansionHandlerFixture(t)
	freet := &models.Freet{AuthorID: author.ID, Content: "hello"}
	require.NoError(t, freets.CreateFreet(context.Background(), freet))

	// A stream of whitespace passes the required check but is not content.
	c, _ := newAuthedContext(http.MethodPost, "/freets/"+freet.ID.Hex()+"/expansion", `{"body":"   "}`, author.ID)
	c.SetParamNames("freet_id")
	c.SetParamValues(freet.ID.Hex())
	err := h.ExpandFreet(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

func TestExpandFreet_RejectsBodyOverWordLimit(t *testing.T) {
	h, freets, author := newExpansionHandlerFixture(t)
	freet := &models.Freet{AuthorID: author.ID, Content: "hello"}
	require.NoError(t, freets.CreateFreet(context.Background(), freet))

	over := strings.TrimSpace(strings.Repeat("word ", maxExpansionWords+1))
	c, _ := newAuthedContext(http.MethodPost, "/freets/"+freet.ID.Hex()+"/expansion", `{"body":"`+over+`"}`, author.ID)
	c.SetParamNames("freet_id")
	c.SetParamValues(freet.ID.Hex())
	err := h.ExpandFreet(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, httpStatus(t, err))
}

func TestExpandFreet_AcceptsBodyAtWordLimit(t *testing.T) {
	h, freets, author := newExpansionHandlerFixture(t)
	freet := &models.Freet{AuthorID: author.ID, Content: "hello"}
	require.NoError(t, freets.CreateFreet(context.Background(), freet))

	atLimit := strings.TrimSpace(strings.Repeat("word ", maxExpansionWords))
	c, rec := newAuthedContext(http.MethodPost, "/freets/"+freet.ID.Hex()+"/expansion", `{"body":"`+atLimit+`"}`, author.ID)
	c.SetParamNames("freet_id")
	c.SetParamValues(freet.ID.Hex())
	require.NoError(t, h.ExpandFreet(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
}
