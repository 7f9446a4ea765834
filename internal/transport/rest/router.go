package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/attendance-management/internal/attendance"
	"github.com/frahmantamala/attendance-management/internal/auth"
	"github.com/frahmantamala/attendance-management/internal/leave"
	"github.com/frahmantamala/attendance-management/internal/session"
	"github.com/frahmantamala/attendance-management/internal/transport/middleware"
	"github.com/frahmantamala/attendance-management/internal/transport/swagger"
	"github.com/frahmantamala/attendance-management/internal/user"
	"github.com/frahmantamala/attendance-management/internal/worktype"
	"github.com/go-chi/chi"
	goredis "github.com/redis/go-redis/v9"
)

type Handlers struct {
	Auth       *auth.Handler
	Sessions   *session.Manager
	Keepalive  *session.KeepaliveHandler
	Attendance *attendance.Handler
	Leave      *leave.Handler
	WorkType   *worktype.Handler
	User       *user.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, rdb *goredis.Client, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db, rdb)

	// Apply global middleware
	router.Use(middleware.CORSWithOrigins(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// The session pipeline wraps everything: attach first so downstream
	// middleware can see the session, enforce the inactivity timeout, then
	// record activity for requests that survive it.
	if h.Sessions != nil {
		router.Use(h.Sessions.Attach)
		router.Use(h.Sessions.Enforce)
		router.Use(h.Sessions.Record)
	}

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check routes
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if h.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/register", h.Auth.Register)
				sr.Post("/login", h.Auth.Login)
				sr.Post("/logout", h.Auth.Logout)
				sr.Get("/verify-email/{uid}/{token}", h.Auth.VerifyEmail)
			})
		}

		// Public work type catalog (no auth required)
		if h.WorkType != nil {
			r.Get("/worktypes", h.WorkType.GetWorkTypes)
		}

		if h.Auth != nil {
			// Protected routes that require authentication
			r.Group(func(pr chi.Router) {
				pr.Use(h.Auth.AuthMiddleware)

				if h.Keepalive != nil {
					pr.Get("/session/keepalive", h.Keepalive.Keepalive)
				}

				pr.Post("/auth/change-password", h.Auth.ChangePassword)

				// Current user
				if h.User != nil {
					pr.Get("/users/me", h.User.Me)
				}

				// Attendance routes
				if h.Attendance != nil {
					pr.Route("/attendance", func(ar chi.Router) {
						ar.Post("/", h.Attendance.CreateRecord)
						ar.Get("/", h.Attendance.GetRecords)
						ar.Delete("/{id}", h.Attendance.DeleteRecord)
					})
				}

				// Leave routes
				if h.Leave != nil {
					pr.Route("/leave-requests", func(lr chi.Router) {
						lr.Post("/", h.Leave.CreateRequest)
						lr.Get("/", h.Leave.GetRequests)

						// Manager routes
						lr.Group(func(mr chi.Router) {
							mr.Use(auth.RequireManager)
							mr.Get("/pending", h.Leave.GetPendingRequests)
							mr.Patch("/{id}/approve", h.Leave.ApproveRequest)
							mr.Patch("/{id}/reject", h.Leave.RejectRequest)
						})
					})
				}

				// Tenant administration routes
				if h.User != nil {
					pr.Route("/tenant", func(tr chi.Router) {
						tr.Use(auth.RequireTenantAdmin)
						tr.Get("/users", h.User.ListTenantUsers)
						tr.Patch("/users/{id}/manager", h.User.AssignManager)
					})
				}
			})
		}
	})
}
