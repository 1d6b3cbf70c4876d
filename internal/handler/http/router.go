package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/guardtrack/patrol-backend-go/internal/handler/http/middleware"
	"github.com/guardtrack/patrol-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	AppName        string
	AppVersion     string
	AppEnv         string
	AllowedOrigins []string
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	authHandler AuthHandler,
	masterHandler MasterHandler,
	assignmentHandler AssignmentHandler,
	visitHandler VisitHandler,
	recordHandler PatrolRecordHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.AppName),
		slog.String("version", cfg.AppVersion),
		slog.String("env", cfg.AppEnv),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// The biometric terminal authenticates with the biometric id itself,
		// not a JWT; the endpoint stays outside the verifier group.
		r.Post("/punch", recordHandler.Punch)

		// SSE stream authenticates via short-lived query token.
		r.Get("/notifications/stream", notificationHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/branches", func(r chi.Router) {
				r.Get("/", masterHandler.ListBranches)
				r.Get("/{id}", masterHandler.GetBranch)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", masterHandler.CreateBranch)
				})
			})

			r.Route("/checkpoints", func(r chi.Router) {
				r.Get("/", masterHandler.ListCheckpoints)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", masterHandler.CreateCheckpoint)
					r.Delete("/{id}", masterHandler.DeleteCheckpoint)
				})
			})

			r.Route("/patrols", func(r chi.Router) {
				r.Get("/", masterHandler.ListPatrols)
				r.Get("/{id}", masterHandler.GetPatrol)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", masterHandler.CreatePatrol)
					r.Put("/{id}/route", masterHandler.UpdateRoute)
					r.Delete("/{id}", masterHandler.DeletePatrol)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", masterHandler.ListShifts)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", masterHandler.CreateShift)
				})
			})

			r.Route("/guards", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/", masterHandler.CreateGuard)
				r.Get("/", masterHandler.ListGuards)
				r.Put("/{id}/branches", masterHandler.SetGuardBranches)
			})

			r.Route("/assignments", func(r chi.Router) {
				r.Get("/", assignmentHandler.List)
				r.Get("/{id}", assignmentHandler.Get)
				r.Get("/{id}/visits", visitHandler.ListByAssignment)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", assignmentHandler.Create)
					r.Patch("/{id}", assignmentHandler.Update)
					r.Delete("/{id}", assignmentHandler.Delete)
				})
			})

			r.Route("/visits", func(r chi.Router) {
				r.Post("/scan", visitHandler.Scan)
				r.Get("/", visitHandler.List)
			})

			r.Route("/patrol-records", func(r chi.Router) {
				r.Get("/current", recordHandler.GetCurrent)
				r.Get("/", recordHandler.ListByStatus)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Get("/unread-count", notificationHandler.UnreadCount)
				r.Post("/mark-read", notificationHandler.MarkAsRead)
				r.Post("/mark-all-read", notificationHandler.MarkAllAsRead)
				r.Post("/sse-token", notificationHandler.SSEToken)
			})
		})
	})

	return r
}
