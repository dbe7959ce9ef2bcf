package domain

import "context"

// Role is what the viewer may do with an event's wall.
type Role string

const (
	RoleOrganizer Role = "organizer"
	RoleGuest     Role = "guest"
)

// DisplayMode is how the wall is being rendered.
type DisplayMode string

const (
	// DisplayInteractive is a phone or laptop with a signed-in (or anonymous)
	// person behind it.
	DisplayInteractive DisplayMode = "interactive"
	// DisplayProjector is an unauthenticated shared screen. Projector mode
	// always forces the guest role, even when a valid organizer token rides
	// along on the same request.
	DisplayProjector DisplayMode = "projector"
)

// ViewerContext is the resolved identity of one request. It is ephemeral:
// resolved per request, never persisted or cached across requests or events.
type ViewerContext struct {
	Role        Role        `json:"role"`
	DisplayMode DisplayMode `json:"display_mode"`
}

// ViewerRequest carries the raw inputs viewer resolution needs. Projector is
// an explicit unauthenticated flag from the query string; it must not be
// inferrable from session state.
type ViewerRequest struct {
	Projector   bool
	BearerToken string
}

// TokenVerifier validates a bearer token and returns the subject user ID.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// ViewerResolver turns a request into a ViewerContext. The projector branch
// is checked first and skips token verification entirely, so a public kiosk
// can never leak an organizer session.
type ViewerResolver interface {
	Resolve(ctx context.Context, req ViewerRequest, event *Event) ViewerContext
}
