package web

import (
	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/companion-backend/internal/database"
	"github.com/kozaktomas/companion-backend/internal/intent"
	"github.com/kozaktomas/companion-backend/internal/web/handlers"
)

func (s *Server) setupRoutes(store database.Store, matcher *intent.Matcher) {
	// Create handlers
	imagesHandler := handlers.NewImagesHandler(store, s.config.Responses)
	tasksHandler := handlers.NewTasksHandler(store, s.config.Responses)
	processHandler := handlers.NewProcessHandler(store, matcher, s.config.Responses)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.HealthCheck)

		r.Post("/store-image", imagesHandler.Store)
		r.Post("/match-image", imagesHandler.Match)
		r.Post("/process-input", processHandler.Input)
		r.Post("/store-task", tasksHandler.Store)
	})
}
