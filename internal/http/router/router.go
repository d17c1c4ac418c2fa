// Package router assembles the chi mux: middleware, CORS, the student
// route table, the health probe, and optional static frontend serving.
package router

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/aanand-mishra/student-management/internal/config"
	"github.com/aanand-mishra/student-management/internal/http/handlers/student"
	"github.com/aanand-mishra/student-management/internal/storage"
	"github.com/aanand-mishra/student-management/internal/utils/response"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// New builds the full HTTP handler.
//
// Route table:
//
//	POST   /students        → create a new student
//	GET    /students        → list students (paginated, searchable)
//	GET    /students/{id}   → get one student by id
//	PATCH  /students/{id}   → partial update
//	DELETE /students/{id}   → delete
//	GET    /health          → liveness probe
//	GET    /*               → static frontend entry file, if configured
func New(cfg *config.Config, store storage.Storage) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	// Browser clients send credentials, so origins must be explicit —
	// a wildcard origin is rejected by browsers when credentials are on.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.WriteJSON(w, http.StatusOK, response.Response{Status: response.StatusOK})
	})

	r.Post("/students", student.New(store))
	r.Get("/students", student.GetList(store))
	r.Get("/students/{id}", student.GetByID(store))
	r.Patch("/students/{id}", student.Update(store))
	r.Delete("/students/{id}", student.Delete(store))

	mountStatic(r, cfg.StaticDir)

	return r
}

// mountStatic serves the built frontend when a static directory is
// configured: hashed build artifacts under /assets/*, and index.html
// for every other unmatched GET so client-side routing works on
// refresh. Without a static directory any unmatched path is a 404.
func mountStatic(r *chi.Mux, staticDir string) {
	if staticDir == "" {
		return
	}
	if _, err := os.Stat(staticDir); err != nil {
		return
	}

	assets := http.FileServer(http.Dir(filepath.Join(staticDir, "assets")))
	r.Handle("/assets/*", http.StripPrefix("/assets/", assets))

	index := filepath.Join(staticDir, "index.html")
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			http.NotFound(w, req)
			return
		}
		http.ServeFile(w, req, index)
	})
}
