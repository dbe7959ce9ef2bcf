package services

import (
	"context"
	"errors"
	"fmt"

	"socialwall/internal/domain"
)

// findEvent resolves an event reference that may be an opaque id or a slug.
// Slugs are URL-safe and immutable, so the public display path uses them;
// internal callers pass ids.
func findEvent(ctx context.Context, repo domain.EventRepository, ref string) (*domain.Event, error) {
	event, err := repo.GetByID(ctx, ref)
	if err == nil {
		return event, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get event: %w", err)
	}
	event, err = repo.GetBySlug(ctx, ref)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}
