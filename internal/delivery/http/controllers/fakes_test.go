package controllers

import (
	"context"
	"io"
	"log/slog"
	"time"

	"socialwall/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

type fakeWallService struct {
	model      *domain.RenderModel
	updates    *domain.WallUpdates
	renderErr  error
	updatesErr error

	lastRef     string
	lastReq     domain.ViewerRequest
	lastAfter   time.Time
	renderCalls int
}

func (s *fakeWallService) RenderWall(_ context.Context, eventRef string, req domain.ViewerRequest) (*domain.RenderModel, error) {
	s.lastRef = eventRef
	s.lastReq = req
	s.renderCalls++
	if s.renderErr != nil {
		return nil, s.renderErr
	}
	return s.model, nil
}

func (s *fakeWallService) Updates(_ context.Context, eventRef string, after time.Time) (*domain.WallUpdates, error) {
	s.lastRef = eventRef
	s.lastAfter = after
	if s.updatesErr != nil {
		return nil, s.updatesErr
	}
	return s.updates, nil
}

type fakeStageService struct {
	cfg domain.StageConfig
	err error

	lastRef   string
	lastActor string
	lastPatch domain.StageConfig
}

func (s *fakeStageService) Read(_ context.Context, event *domain.Event) (domain.StageConfig, error) {
	s.lastRef = event.ID
	return s.cfg, s.err
}

func (s *fakeStageService) MergePatch(_ context.Context, eventRef, actorID string, patch domain.StageConfig) (domain.StageConfig, error) {
	s.lastRef = eventRef
	s.lastActor = actorID
	s.lastPatch = patch
	if s.err != nil {
		return domain.StageConfig{}, s.err
	}
	return domain.Merge(s.cfg, patch), nil
}

func (s *fakeStageService) SetActive(ctx context.Context, eventRef, actorID string, isActive bool) (domain.StageConfig, error) {
	return s.MergePatch(ctx, eventRef, actorID, domain.StageConfig{IsActive: &isActive})
}

// fakeRenderCache is an in-memory RenderCache keyed by slug.
type fakeRenderCache struct {
	entries map[string][]byte
	gets    int
	sets    int
}

func newFakeRenderCache() *fakeRenderCache {
	return &fakeRenderCache{entries: map[string][]byte{}}
}

func (c *fakeRenderCache) Get(_ context.Context, eventSlug string) ([]byte, bool) {
	c.gets++
	payload, ok := c.entries[eventSlug]
	return payload, ok
}

func (c *fakeRenderCache) Set(_ context.Context, eventSlug string, payload []byte) {
	c.sets++
	c.entries[eventSlug] = payload
}

func guestModel() *domain.RenderModel {
	return &domain.RenderModel{
		Event:       domain.EventSummary{Slug: "hanna-and-tom", Name: "Hanna & Tom"},
		Viewer:      domain.ViewerContext{Role: domain.RoleGuest, DisplayMode: domain.DisplayProjector},
		View:        domain.ViewWall,
		Wall:        &domain.WallView{Photos: []domain.WallPhoto{}},
		PollSeconds: 10,
	}
}
