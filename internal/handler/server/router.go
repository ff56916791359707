package server

import (
	"net/http"
	"time"

	"github.com/bagdasarian/crm-service/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func SetupRoutes(h *handler.Handler, corsOrigins []string, logger *zap.Logger) http.Handler {
	sm := h.Sessions()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: !allowsAnyOrigin(corsOrigins),
		MaxAge:           300,
	}))
	r.Use(sm.LoadSession)

	r.Get("/health", h.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)

		r.Group(func(pr chi.Router) {
			pr.Use(sm.RequireSignedIn)
			pr.Post("/logout", h.Logout)
			pr.Get("/me", h.Me)
			pr.Get("/presence", h.GetPresence)
			pr.Post("/presence/refresh", h.RefreshPresence)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(sm.RequireAdmin)
			pr.Post("/register", h.Register)
			pr.Get("/users", h.ListUsers)
			pr.Delete("/users/{id}", h.DeleteUser)
		})
	})

	r.Route("/clients", func(r chi.Router) {
		r.Use(sm.RequireSignedIn)
		r.Get("/", h.ListClients)
		r.Post("/", h.CreateClient)
		r.Get("/search", h.SearchClients)
		r.Get("/{id}", h.GetClient)
		r.Put("/{id}", h.UpdateClient)
		r.Delete("/{id}", h.DeleteClient)
	})

	r.Route("/teams", func(r chi.Router) {
		r.Group(func(pr chi.Router) {
			pr.Use(sm.RequireSignedIn)
			pr.Get("/", h.ListTeams)
			pr.Get("/{id}", h.GetTeam)
			pr.Get("/{id}/members", h.GetTeamMembers)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(sm.RequireAdmin)
			pr.Post("/", h.CreateTeam)
			pr.Put("/{id}", h.UpdateTeam)
			pr.Delete("/{id}", h.DeleteTeam)
			pr.Post("/{id}/members", h.AddTeamMember)
			pr.Delete("/{id}/members/{employeeID}", h.RemoveTeamMember)
			pr.Post("/{id}/dissolve", h.DissolveTeam)
			pr.Post("/{id}/move", h.MoveTeamMembers)
		})
	})

	r.With(sm.RequireAdmin).Put("/employees/{id}/team", h.AssignEmployeeTeam)

	r.Route("/tasks", func(r chi.Router) {
		r.Group(func(pr chi.Router) {
			pr.Use(sm.RequireSignedIn)
			pr.Get("/", h.ListTasks)
			pr.Get("/{id}", h.GetTask)
			pr.Post("/{id}/complete", h.CompleteTask)
			pr.Post("/{id}/observation", h.AddTaskObservation)
			pr.Post("/{id}/reschedule", h.RescheduleTask)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(sm.RequireAdmin)
			pr.Post("/", h.CreateTask)
			pr.Post("/{id}/reassign", h.ReassignTask)
			pr.Delete("/{id}", h.DeleteTask)
		})
	})

	r.Route("/me", func(r chi.Router) {
		r.Use(sm.RequireSignedIn)
		r.Get("/tasks", h.MyTasks)
		r.Get("/team", h.MyTeam)
	})

	r.Route("/commissions", func(r chi.Router) {
		r.With(sm.RequireAdmin).Get("/", h.ListCommissions)
		r.With(sm.RequireSignedIn).Get("/{employeeID}", h.GetCommission)
	})

	return r
}

// allowsAnyOrigin: cookie сессии не отправляются кросс-доменно при "*"
func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("http request",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
