package services

import (
	"context"
	"log/slog"

	"socialwall/internal/domain"
)

type viewerService struct {
	verifier domain.TokenVerifier
	logger   *slog.Logger
}

// NewViewerService resolves who is looking at a wall. Resolution is total
// and per request: nothing here is cached, and organizer status for one
// event implies nothing about any other event.
func NewViewerService(verifier domain.TokenVerifier, logger *slog.Logger) domain.ViewerResolver {
	return &viewerService{verifier: verifier, logger: logger}
}

func (s *viewerService) Resolve(ctx context.Context, req domain.ViewerRequest, event *domain.Event) domain.ViewerContext {
	// Projector mode is checked before anything else and skips token
	// verification entirely. A shared screen must never leak an organizer
	// session, even when a valid token rides along on the request.
	if req.Projector {
		return domain.ViewerContext{Role: domain.RoleGuest, DisplayMode: domain.DisplayProjector}
	}
	if req.BearerToken == "" {
		return domain.ViewerContext{Role: domain.RoleGuest, DisplayMode: domain.DisplayInteractive}
	}
	userID, err := s.verifier.Verify(req.BearerToken)
	if err != nil {
		// An expired or garbage token downgrades to guest; the wall read
		// path is public either way.
		s.logger.DebugContext(ctx, "token verification failed, treating as guest", "err", err)
		return domain.ViewerContext{Role: domain.RoleGuest, DisplayMode: domain.DisplayInteractive}
	}
	if event != nil && userID == event.OrganizerID {
		return domain.ViewerContext{Role: domain.RoleOrganizer, DisplayMode: domain.DisplayInteractive}
	}
	return domain.ViewerContext{Role: domain.RoleGuest, DisplayMode: domain.DisplayInteractive}
}
