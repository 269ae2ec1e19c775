package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/freetly/backend/internal/models"
	"github.com/freetly/backend/internal/repositories"
	"gorm.io/gorm"
)

// ErrFeedNotInitialized is returned when curation is requested before the
// user has created feed preferences.
var ErrFeedNotInitialized = errors.New("feed preferences not initialized")

// FeedCurator builds a user's personalized feed by joining their category
// preferences against the tag store and projecting the surviving tags onto
// freets. It is a pure read: no writes, safe to recompute on every request.
type FeedCurator struct {
	preferences repositories.PreferenceRepository
	tags        repositories.TagRepository
	freets      repositories.FreetRepository
}

// NewFeedCurator creates a new FeedCurator
func NewFeedCurator(
	preferenceRepo repositories.PreferenceRepository,
	tagRepo repositories.TagRepository,
	freetRepo repositories.FreetRepository,
) *FeedCurator {
	return &FeedCurator{
		preferences: preferenceRepo,
		tags:        tagRepo,
		freets:      freetRepo,
	}
}

// Curate returns the freets matching the user's active category preferences,
// excluding the user's own freets, ordered by tag creation time descending.
// An empty feed is a valid result.
func (s *FeedCurator) Curate(ctx context.Context, userID uint) ([]models.Freet, error) {
	preference, err := s.preferences.GetByUser(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFeedNotInitialized
	}
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}

	labels := preference.ActiveLabels()
	if len(labels) == 0 {
		return []models.Freet{}, nil
	}

	// Self-authored tags are excluded in the query itself, so own freets
	// never surface regardless of which flags are on.
	tags, err := s.tags.GetCuratedTags(labels, userID)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}

	freetIDs := make([]string, len(tags))
	for i, tag := range tags {
		freetIDs[i] = tag.FreetID
	}
	freetsByID, err := s.freets.GetFreetsByIDs(ctx, freetIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve freets: %w", err)
	}

	// Project tags onto freets, keeping the tags' newest-first order.
	// Tags whose freet is gone are skipped rather than failing the feed.
	feed := make([]models.Freet, 0, len(tags))
	for _, tag := range tags {
		if freet, ok := freetsByID[tag.FreetID]; ok {
			feed = append(feed, freet)
		}
	}
	return feed, nil
}
