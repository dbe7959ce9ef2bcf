package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"socialwall/internal/domain"
)

// Feed window bounds. Snapshot defaults to the most recent 50 approved
// photos; refreshes are bounded by the maximum so a single poll can never
// pull an unbounded backlog.
const (
	DefaultFeedLimit = 50
	MaxFeedLimit     = 100
)

type feedService struct {
	eventRepo      domain.EventRepository
	photoRepo      domain.PhotoRepository
	contextTimeout time.Duration
}

// NewFeedService returns the approved-media feed for display clients. It
// holds no connection; every call is one bounded query and the client owns
// the polling cadence.
func NewFeedService(eventRepo domain.EventRepository, photoRepo domain.PhotoRepository, timeout time.Duration) domain.FeedService {
	return &feedService{
		eventRepo:      eventRepo,
		photoRepo:      photoRepo,
		contextTimeout: timeout,
	}
}

func (s *feedService) Snapshot(ctx context.Context, eventID string, limit int) (*domain.FeedWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}
	if err := s.eventExists(ctx, eventID); err != nil {
		return nil, err
	}
	photos, err := s.photoRepo.ListApproved(ctx, eventID, nil, limit)
	if err != nil {
		return nil, fmt.Errorf("list approved photos: %w", err)
	}
	return window(photos, nil), nil
}

func (s *feedService) Refresh(ctx context.Context, eventID string, after time.Time) (*domain.FeedWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventExists(ctx, eventID); err != nil {
		return nil, err
	}
	// The repository returns the delta oldest approval first, so when a bulk
	// approval overflows the limit the window is a prefix of the backlog and
	// the new watermark stays behind the cut; the rest arrives next poll.
	photos, err := s.photoRepo.ListApproved(ctx, eventID, &after, MaxFeedLimit)
	if err != nil {
		return nil, fmt.Errorf("list approved photos: %w", err)
	}
	return window(photos, &after), nil
}

func (s *feedService) eventExists(ctx context.Context, eventID string) error {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	return nil
}

// window builds a FeedWindow whose watermark is the newest approval time
// seen, never moving backwards from the caller's previous watermark. An
// empty refresh keeps the watermark the caller already holds.
func window(photos []*domain.Photo, prev *time.Time) *domain.FeedWindow {
	if photos == nil {
		photos = []*domain.Photo{}
	}
	mark := prev
	for _, p := range photos {
		if p.ApprovedAt == nil {
			continue
		}
		if mark == nil || p.ApprovedAt.After(*mark) {
			t := *p.ApprovedAt
			mark = &t
		}
	}
	return &domain.FeedWindow{Photos: photos, Watermark: mark}
}
