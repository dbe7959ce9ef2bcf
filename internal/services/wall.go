package services

import (
	"context"
	"fmt"
	"time"

	"socialwall/internal/domain"
)

type wallService struct {
	eventRepo      domain.EventRepository
	stage          domain.StageService
	feed           domain.FeedService
	viewer         domain.ViewerResolver
	renderer       domain.Renderer
	now            func() time.Time
	contextTimeout time.Duration
}

// NewWallService wires the read path of the live wall: event resolution,
// viewer resolution, stage config, photo window and rendering, in that
// order. Everything is re-fetched per request; freshness comes from the
// display's polling, not from any held connection.
func NewWallService(eventRepo domain.EventRepository,
	stage domain.StageService,
	feed domain.FeedService,
	viewer domain.ViewerResolver,
	renderer domain.Renderer,
	timeout time.Duration,
) domain.WallService {
	return &wallService{
		eventRepo:      eventRepo,
		stage:          stage,
		feed:           feed,
		viewer:         viewer,
		renderer:       renderer,
		now:            time.Now,
		contextTimeout: timeout,
	}
}

func (s *wallService) RenderWall(ctx context.Context, eventRef string, req domain.ViewerRequest) (*domain.RenderModel, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := findEvent(ctx, s.eventRepo, eventRef)
	if err != nil {
		return nil, err
	}
	viewer := s.viewer.Resolve(ctx, req, event)

	cfg, err := s.stage.Read(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("read stage config: %w", err)
	}

	// The photo window is only fetched for the live wall; while the stage
	// is active the grid is not shown, so the query is skipped.
	var feed *domain.FeedWindow
	if !cfg.Active() {
		feed, err = s.feed.Snapshot(ctx, event.ID, DefaultFeedLimit)
		if err != nil {
			return nil, fmt.Errorf("feed snapshot: %w", err)
		}
	}

	return s.renderer.Render(ctx, event, cfg, feed, viewer, s.now())
}

func (s *wallService) Updates(ctx context.Context, eventRef string, after time.Time) (*domain.WallUpdates, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := findEvent(ctx, s.eventRepo, eventRef)
	if err != nil {
		return nil, err
	}
	win, err := s.feed.Refresh(ctx, event.ID, after)
	if err != nil {
		return nil, fmt.Errorf("feed refresh: %w", err)
	}
	cfg, err := s.stage.Read(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("read stage config: %w", err)
	}

	updates := &domain.WallUpdates{
		Photos:      []domain.WallPhoto{},
		Watermark:   win.Watermark,
		StageActive: cfg.Active(),
		Mode:        cfg.ResolvedMode(),
	}
	for _, p := range win.Photos {
		updates.Photos = append(updates.Photos, domain.WallPhoto{
			ID:        p.ID,
			URL:       p.URL,
			MediaType: p.MediaType,
			MissionID: p.MissionID,
			CreatedAt: p.CreatedAt,
		})
	}
	return updates, nil
}
