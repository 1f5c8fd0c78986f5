// internal/catalog/routes.go

package catalog

import (
	"github.com/go-chi/chi/v5"
)

// Routes builds the catalog sub-router. Mounted under the main router
// in cmd/api.
func Routes(handler *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/api/v1/catalog/categories", handler.GetCategories)
	r.Get("/api/v1/catalog/interests", handler.GetInterests)
	r.Get("/api/v1/catalog/activities", handler.GetActivities)

	return r
}
