package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"studyaid-backend/internal/handlers"
	"studyaid-backend/internal/middleware"
	"studyaid-backend/internal/websocket"
)

func New(
	generationHandler *handlers.GenerationHandler,
	capabilityHandler *handlers.CapabilityHandler,
	runHandler *handlers.RunHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── AI Routes ────
		r.Route("/ai", func(r chi.Router) {
			r.With(middleware.RequireContentType("application/json")).Post("/generate", generationHandler.Generate)
			r.With(middleware.RequireContentType("multipart/form-data")).Post("/generate/upload", generationHandler.Upload)
			r.Get("/capabilities", capabilityHandler.Get)
			r.Get("/runs", runHandler.List)
		})

		// ──── Content Routes ────
		r.Route("/content", func(r chi.Router) {
			r.Get("/supported-formats", handlers.SupportedFormats)
		})

		// ──── Quiz Routes ────
		r.Route("/quizzes", func(r chi.Router) {
			r.Post("/grade", handlers.GradeQuiz)
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
