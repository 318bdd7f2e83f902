package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/auth"
	"github.com/xavierca1/ligue-leads/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
)

type routes struct {
	Lead       *handlers.LeadHandler
	Conversion *handlers.ConversionHandler
	AdminAuth  *handlers.AdminAuthHandler
	AdminLeads *handlers.AdminLeadHandler
	Messages   *handlers.MessageHandler
	Health     *handlers.HealthHandler

	Sessions       middleware.SessionAuthorizer
	BasicUser      string
	BasicPassword  string
	FrontendOrigin string
	Log            *zap.Logger
}

func newRouter(rt routes) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(rt.Log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{rt.FrontendOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Get("/health", rt.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/api/leads", rt.Lead.CaptureLead)
	r.Post("/api/conversions", rt.Conversion.Track)

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.BasicAuth("admin", rt.BasicUser, rt.BasicPassword))

		r.Post("/login", rt.AdminAuth.Login)
		r.Post("/logout", rt.AdminAuth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(rt.Sessions))
			r.Get("/leads", rt.AdminLeads.List)
			r.Get("/leads/{id}", rt.AdminLeads.Get)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(rt.Sessions, auth.RoleManagement))
			r.Patch("/leads/{id}", rt.AdminLeads.Patch)
			r.Get("/messages", rt.Messages.List)
		})
	})

	return r
}
