package repositories

import "errors"

// Duplicate-creation sentinels. Each corresponds to a unique index, so the
// conflict is detected even when two requests race past the handler-level
// existence check.
var (
	ErrReactionExists   = errors.New("reaction already exists")
	ErrTagExists        = errors.New("freet is already tagged")
	ErrExpansionExists  = errors.New("freet already has an expansion")
	ErrPreferenceExists = errors.New("feed preferences already exist")
)
