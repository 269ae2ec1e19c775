package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/freetly/backend/internal/repositories"
	"gorm.io/gorm"
)

// CascadeService owns the cross-store cleanup sequences that keep reaction,
// tag and expansion records from dangling after a freet or an account is
// deleted. Callers invoke one method instead of remembering every bulk
// delete themselves.
type CascadeService struct {
	reactions   repositories.ReactionRepository
	tags        repositories.TagRepository
	expansions  repositories.ExpansionRepository
	preferences repositories.PreferenceRepository
	freets      repositories.FreetRepository
	users       repositories.UserRepository
}

// NewCascadeService creates a new CascadeService
func NewCascadeService(
	reactionRepo repositories.ReactionRepository,
	tagRepo repositories.TagRepository,
	expansionRepo repositories.ExpansionRepository,
	preferenceRepo repositories.PreferenceRepository,
	freetRepo repositories.FreetRepository,
	userRepo repositories.UserRepository,
) *CascadeService {
	return &CascadeService{
		reactions:   reactionRepo,
		tags:        tagRepo,
		expansions:  expansionRepo,
		preferences: preferenceRepo,
		freets:      freetRepo,
		users:       userRepo,
	}
}

// OnFreetDeleted removes every record referencing the deleted freet. Each
// step is a no-op when the freet had no such records.
func (s *CascadeService) OnFreetDeleted(ctx context.Context, freetID string) error {
	if err := s.reactions.DeleteByFreet(freetID); err != nil {
		return fmt.Errorf("reaction cascade for freet %s: %w", freetID, err)
	}
	if err := s.tags.DeleteByFreet(freetID); err != nil {
		return fmt.Errorf("tag cascade for freet %s: %w", freetID, err)
	}
	if err := s.expansions.DeleteByFreet(freetID); err != nil {
		return fmt.Errorf("expansion cascade for freet %s: %w", freetID, err)
	}
	return nil
}

// OnUserDeleted removes the account and everything reachable from it: the
// user's freets, the reactions other users left on those freets, the
// reactions/tags/expansions the user authored, and the feed preferences.
// The reaction sweep over the user's freets runs first because it needs the
// freet IDs before the freets themselves are deleted.
func (s *CascadeService) OnUserDeleted(ctx context.Context, userID uint) error {
	freets, err := s.freets.GetFreetsByAuthor(ctx, userID)
	if err != nil {
		return fmt.Errorf("list freets for user %d: %w", userID, err)
	}
	freetIDs := make([]string, len(freets))
	for i, freet := range freets {
		freetIDs[i] = freet.ID.Hex()
	}

	if err := s.reactions.DeleteByFreets(freetIDs); err != nil {
		return fmt.Errorf("reaction cascade on authored freets: %w", err)
	}
	if err := s.reactions.DeleteByAuthor(userID); err != nil {
		return fmt.Errorf("reaction cascade by author: %w", err)
	}
	if err := s.tags.DeleteByAuthor(userID); err != nil {
		return fmt.Errorf("tag cascade by author: %w", err)
	}
	if err := s.expansions.DeleteByAuthor(userID); err != nil {
		return fmt.Errorf("expansion cascade by author: %w", err)
	}
	if err := s.freets.DeleteByAuthor(ctx, userID); err != nil {
		return fmt.Errorf("freet cascade by author: %w", err)
	}
	if err := s.preferences.DeleteByUser(userID); err != nil {
		return fmt.Errorf("preference cascade: %w", err)
	}
	if err := s.users.DeleteUser(userID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("delete user %d: %w", userID, err)
	}
	return nil
}
