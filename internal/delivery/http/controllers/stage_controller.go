package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"socialwall/internal/delivery/http/helpers"
	"socialwall/internal/delivery/http/middleware"
	"socialwall/internal/domain"
)

// StageController handles the organizer-only stage mutation surface.
type StageController struct {
	Logger *slog.Logger
	Stage  domain.StageService
}

func NewStageController(logger *slog.Logger, stage domain.StageService) *StageController {
	return &StageController{
		Logger: logger,
		Stage:  stage,
	}
}

// UpdateStageRequest is the merge patch accepted by PATCH /stage. Every field
// is optional; only present fields are applied. activated_at is deliberately
// absent from this DTO, so a client attempt to set it is rejected by the
// unknown-field check in the decoder.
// swagger:model UpdateStageRequest
type UpdateStageRequest struct {
	IsActive         *bool             `json:"is_active,omitempty"`
	Mode             *domain.StageMode `json:"mode,omitempty"`
	Title            *string           `json:"title,omitempty"`
	Message          *string           `json:"message,omitempty"`
	ShowClock        *bool             `json:"show_clock,omitempty"`
	ShowQR           *bool             `json:"show_qr,omitempty"`
	MusicEnabled     *bool             `json:"music_enabled,omitempty"`
	MusicType        *domain.MusicType `json:"music_type,omitempty"`
	SpotifyURL       *string           `json:"spotify_url,omitempty"`
	CountdownMinutes *int              `json:"countdown_minutes,omitempty"`
	CountdownTarget  *time.Time        `json:"countdown_target,omitempty"`
	VideoURL         *string           `json:"video_url,omitempty"`
}

func (req *UpdateStageRequest) Validate() []string {
	var problems []string
	if req.Mode != nil && !req.Mode.Valid() {
		problems = append(problems, fmt.Sprintf("mode must be one of lounge, hype, cinema (got %q)", *req.Mode))
	}
	if req.MusicType != nil && !req.MusicType.Valid() {
		problems = append(problems, fmt.Sprintf("music_type must be one of ambient, playlist, custom (got %q)", *req.MusicType))
	}
	if req.CountdownMinutes != nil && *req.CountdownMinutes < 0 {
		problems = append(problems, "countdown_minutes must not be negative")
	}
	return problems
}

func (req *UpdateStageRequest) toPatch() domain.StageConfig {
	return domain.StageConfig{
		IsActive:         req.IsActive,
		Mode:             req.Mode,
		Title:            req.Title,
		Message:          req.Message,
		ShowClock:        req.ShowClock,
		ShowQR:           req.ShowQR,
		MusicEnabled:     req.MusicEnabled,
		MusicType:        req.MusicType,
		SpotifyURL:       req.SpotifyURL,
		CountdownMinutes: req.CountdownMinutes,
		CountdownTarget:  req.CountdownTarget,
		VideoURL:         req.VideoURL,
	}
}

// SetActiveRequest is the body for PUT /stage/active.
// swagger:model SetActiveRequest
type SetActiveRequest struct {
	IsActive *bool `json:"is_active"`
}

func (req *SetActiveRequest) Validate() []string {
	if req.IsActive == nil {
		return []string{"is_active is required"}
	}
	return nil
}

// UpdateStage godoc
// @Summary Apply a merge patch to the event's stage configuration
// @Description Overlays the provided fields onto the stored stage document and returns the merged result. Fields absent from the body are left untouched. Only the event's organizer may call this.
// @Tags stage
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventSlug path string true "Event slug or id"
// @Param request body UpdateStageRequest true "Merge patch"
// @Success 200 {object} helpers.APIResponse "data contains the merged stage configuration"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventSlug}/stage [patch]
func (c *StageController) UpdateStage(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("eventSlug")
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "authentication required")
		return
	}

	var req UpdateStageRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	merged, err := c.Stage.MergePatch(r.Context(), slug, userID, req.toPatch())
	if err != nil {
		c.writeStageError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, merged)
}

// SetActive godoc
// @Summary Turn the stage on or off
// @Description Flips only the is_active flag, preserving every other stage field. Only the event's organizer may call this.
// @Tags stage
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventSlug path string true "Event slug or id"
// @Param request body SetActiveRequest true "Activation flag"
// @Success 200 {object} helpers.APIResponse "data contains the updated stage configuration"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventSlug}/stage/active [put]
func (c *StageController) SetActive(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("eventSlug")
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "authentication required")
		return
	}

	var req SetActiveRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	cfg, err := c.Stage.SetActive(r.Context(), slug, userID, *req.IsActive)
	if err != nil {
		c.writeStageError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, cfg)
}

func (c *StageController) writeStageError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only the event organizer may change the stage")
	case errors.Is(err, domain.ErrInvalidState):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid stage configuration")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to update stage")
	}
}
