package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/create", h.create)
		r.Get("/api/auth/verify", h.verify)
		r.Post("/api/2fa/setup", h.twoFactorSetup)
		r.Post("/api/2fa/verify", h.twoFactorVerify)
	})

	// routes behind the session guard, full authentication required
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.requireFullAuth)
		r.Get("/api/me", h.me)
	})

	return router
}
