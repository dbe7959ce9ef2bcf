package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"socialwall/internal/delivery/http/controllers"
	"socialwall/internal/delivery/http/middleware"
	"socialwall/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// The wall read routes are public: viewer resolution happens inside the
// service so projector mode can bypass token verification. Stage mutation
// routes require a valid Bearer token up front.
func NewRouter(
	wallController *controllers.WallController,
	stageController *controllers.StageController,
	verifier domain.TokenVerifier,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier, logger)

	// Public display surface
	mux.HandleFunc("GET /events/{eventSlug}/wall", wallController.GetWall)
	mux.HandleFunc("GET /events/{eventSlug}/wall/updates", wallController.GetUpdates)

	// Organizer controls
	mux.HandleFunc("PATCH /events/{eventSlug}/stage", requireAuth(stageController.UpdateStage))
	mux.HandleFunc("PUT /events/{eventSlug}/stage/active", requireAuth(stageController.SetActive))

	// Health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
