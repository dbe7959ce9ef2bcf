package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"socialwall/internal/delivery/http/helpers"
	"socialwall/internal/delivery/http/middleware"
	"socialwall/internal/domain"
)

// projectorQueryValue is the explicit, unauthenticated display-mode flag.
// Its presence always short-circuits identity checks (see ViewerResolver).
const projectorQueryValue = "projector"

// WallController serves the read surface the display layer polls. Cache is
// optional; when present it holds serialized projector responses, which are
// safe to share because the projector shape never carries organizer fields.
type WallController struct {
	Logger *slog.Logger
	Wall   domain.WallService
	Cache  domain.RenderCache
}

func NewWallController(logger *slog.Logger, wall domain.WallService, cache domain.RenderCache) *WallController {
	return &WallController{
		Logger: logger,
		Wall:   wall,
		Cache:  cache,
	}
}

// GetWall godoc
// @Summary Render the live wall or ambient stage for an event
// @Description Returns the render model for the event identified by slug. With display=projector the request is treated as an anonymous public screen: identity is ignored and the model contains no organizer controls. With a Bearer token belonging to the event's organizer, the model includes control affordances.
// @Tags wall
// @Produce json
// @Param eventSlug path string true "Event slug"
// @Param display query string false "Set to 'projector' for the public screen shape"
// @Success 200 {object} helpers.APIResponse "data contains the render model"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (interactive mode only)"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable (projector mode, any failure)"
// @Router /events/{eventSlug}/wall [get]
func (c *WallController) GetWall(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("eventSlug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing event slug")
		return
	}
	projector := r.URL.Query().Get("display") == projectorQueryValue

	if projector && c.Cache != nil {
		if payload, ok := c.Cache.Get(r.Context(), slug); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(payload)
			return
		}
	}

	model, err := c.Wall.RenderWall(r.Context(), slug, domain.ViewerRequest{
		Projector:   projector,
		BearerToken: middleware.BearerToken(r),
	})
	if err != nil {
		c.writeWallError(w, r, projector, err)
		return
	}

	payload, err := json.Marshal(helpers.APIResponse{Data: model})
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		c.writeWallError(w, r, projector, err)
		return
	}
	if projector && c.Cache != nil {
		c.Cache.Set(r.Context(), slug, payload)
	}
	w.Header().Set("Content-Type", "application/json")
	if projector {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

// GetUpdates godoc
// @Summary Poll for photos approved since a watermark
// @Description Returns approved photos with approval time strictly after the given watermark, oldest approval first, plus the new watermark and a stage activation hint. An empty photo list means nothing new. With display=projector, failures are reported as a neutral 503, same as the full render endpoint.
// @Tags wall
// @Produce json
// @Param eventSlug path string true "Event slug"
// @Param after query string true "Watermark, RFC3339"
// @Param display query string false "Set to 'projector' for neutral error handling"
// @Success 200 {object} helpers.APIResponse "data contains photos, watermark and stage hint"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (interactive mode only)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (interactive mode only)"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable (projector mode, any failure)"
// @Router /events/{eventSlug}/wall/updates [get]
func (c *WallController) GetUpdates(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("eventSlug")
	projector := r.URL.Query().Get("display") == projectorQueryValue
	if slug == "" {
		c.writePollError(w, projector, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing event slug")
		return
	}
	after, ok, err := helpers.ParseAfter(r)
	if err != nil {
		c.writePollError(w, projector, http.StatusBadRequest, helpers.ErrCodeBadRequest, "after must be RFC3339")
		return
	}
	if !ok {
		c.writePollError(w, projector, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing after watermark")
		return
	}

	updates, err := c.Wall.Updates(r.Context(), slug, after)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.writePollError(w, projector, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		c.writePollError(w, projector, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to load updates")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updates)
}

// writePollError reports a failure on the updates endpoint. Projectors poll
// this route too, so they get the same neutral retry-shortly state as the
// full render; precise codes are for the interactive surface.
func (c *WallController) writePollError(w http.ResponseWriter, projector bool, status int, code, message string) {
	if projector {
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeUnavailable, "content unavailable, retry shortly")
		return
	}
	helpers.WriteJSONError(w, status, code, message)
}

// writeWallError keeps error detail away from the public screen: a projector
// shows a neutral retry-shortly state no matter what went wrong, while the
// interactive surface gets precise codes.
func (c *WallController) writeWallError(w http.ResponseWriter, r *http.Request, projector bool, err error) {
	if projector {
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeUnavailable, "content unavailable, retry shortly")
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to render wall")
}
