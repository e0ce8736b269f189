package rest

import (
	"net/http"

	"github.com/dmitrijs2005/photojournal/internal/common"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Handler builds the routing tree.
func (s *HTTPServer) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(s.accessLog)
	r.Use(s.recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", common.AuthorizationHeaderName, "Content-Type"},
		ExposedHeaders:   []string{common.RequestIDHeaderName},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, common.ErrorNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, common.ErrorMethodNotAllowed)
	})

	r.Get("/health", s.health)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if s.authLimiter != nil {
				r.Use(s.rateLimit(s.authLimiter))
			}
			r.Post("/auth/sign-up", s.signUp)
			r.Post("/auth/sign-in", s.signIn)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Get("/entries", s.listEntries)
			r.Post("/entries", s.createEntry)
			r.Get("/entries/{entryId}", s.getEntry)
			r.Put("/entries/{entryId}", s.updateEntry)
			r.Delete("/entries/{entryId}", s.deleteEntry)

			if s.photos != nil {
				r.Post("/photos/upload-url", s.newUploadURL)
			}
		})
	})

	return r
}
