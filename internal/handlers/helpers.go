package handlers

import (
	"strconv"

	"github.com/freetly/backend/internal/models"
	"github.com/freetly/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// parseUserID parses a user ID path parameter.
func parseUserID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// currentUserID extracts the authenticated user's ID set by the JWT middleware.
func currentUserID(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return 0
	}
	return claims.UserID
}

// compactAuthors resolves the given user IDs to their display form in one
// query. Unknown IDs map to a zero UserCompact rather than failing the
// response.
func compactAuthors(userRepo repositories.UserRepository, ids []uint) (map[uint]models.UserCompact, error) {
	seen := make(map[uint]bool, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	users, err := userRepo.GetUsersByIDs(unique)
	if err != nil {
		return nil, err
	}
	compact := make(map[uint]models.UserCompact, len(users))
	for id, u := range users {
		compact[id] = u.ToCompact()
	}
	return compact, nil
}
