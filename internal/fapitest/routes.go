// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fapitest

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router of the fake.
func (s *Server) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(s.withClientAuthorization)

	// inline middlewares run after routing, so the route pattern is known
	router.Group(func(r chi.Router) {
		r.Use(s.withRecording, s.withFaults)

		r.Get("/v1/environment", s.getEnvironment)

		r.Get("/v1/client", s.getClient)
		r.Post("/v1/client", s.createClient)
		r.Delete("/v1/client", s.deleteClient)

		r.Delete("/v1/client/sessions", s.removeClientSessions)
		r.Get("/v1/client/sessions/{session_id}", s.getSession)
		r.Post("/v1/client/sessions/{session_id}/touch", s.touchSession)
		r.Post("/v1/client/sessions/{session_id}/end", s.endSession)
		r.Post("/v1/client/sessions/{session_id}/remove", s.removeSession)
		r.Post("/v1/client/sessions/{session_id}/tokens", s.createSessionToken)
		r.Post("/v1/client/sessions/{session_id}/tokens/{template}", s.createSessionToken)

		r.Post("/v1/client/sign_ins", s.createSignIn)
		r.Post("/v1/client/sign_ins/{sign_in_id}/prepare_first_factor", s.prepareFirstFactor)
		r.Post("/v1/client/sign_ins/{sign_in_id}/attempt_first_factor", s.attemptFirstFactor)
		r.Post("/v1/client/sign_ups", s.createSignUp)

		r.Get("/v1/me", s.getMe)
		r.Patch("/v1/me", s.updateMe)
		r.Get("/v1/me/organization_memberships", s.getOrganizationMemberships)
	})

	return router
}
