package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes mounts the public portfolio API, the admin-only writes and the
// operational endpoints. Trailing slashes are stripped before routing.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware, logRequests bool) {
	r.Get("/healthz", handlers.healthHandler.getHealth())
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if logRequests {
			r.Use(ColoredHTTPLoggingMiddleware)
		}
		r.Use(metricsMiddleware)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", handlers.projectHandler.getAllProjects())
			r.Post("/sync-github", handlers.projectHandler.syncGitHub())
			r.Get("/{projectID}", handlers.projectHandler.getProject())

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.authenticate)
				r.Post("/", handlers.projectHandler.createProject())
				r.Put("/{projectID}", handlers.projectHandler.updateProject())
				r.Delete("/{projectID}", handlers.projectHandler.deleteProject())
			})
		})

		r.Post("/contact", handlers.contactHandler.createSubmission())
		r.With(authMiddleware.authenticate).Get("/contact", handlers.contactHandler.getAllSubmissions())

		r.Post("/hire", handlers.hireHandler.createHireRequest())
		r.Get("/quicklinks", handlers.quickLinkHandler.getAllQuickLinks())
		r.Get("/profile/picture", handlers.profileHandler.getPicture())
		r.Get("/profile/cv", handlers.profileHandler.getCV())
		r.Get("/public", handlers.profileHandler.getPublic())
	})
}
