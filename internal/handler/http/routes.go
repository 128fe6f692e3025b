package http

import (
	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		h.withTraceID,
		h.withLogging,
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins:   h.origins(),
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Content-Encoding", traceIDHeader, utils.HashHeader},
			ExposedHeaders:   []string{"Authorization", traceIDHeader},
			AllowCredentials: false,
			MaxAge:           300,
		}),
		withGZip,
		h.withHashing,
	)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/", h.getServerStatus)
		r.Post("/register", h.register)
		r.Post("/login", h.login)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/users/me", h.me)

		r.Post("/tasks/add", h.addTask)
		r.Get("/tasks", h.listTasks)
		r.Get("/tasks/{id}", h.getTask)
		r.Put("/tasks/update/{id}", h.updateTask)
		r.Delete("/tasks/delete/{id}", h.deleteTask)
	})

	router.NotFound(routeNotFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func (h *Handler) origins() []string {
	if len(h.allowedOrigins) == 0 {
		return []string{"*"}
	}
	return h.allowedOrigins
}
