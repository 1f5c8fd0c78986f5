// internal/catalog/handlers.go
// Read-only endpoints serving the static interest taxonomy and
// activity catalog to clients

package catalog

import (
	"net/http"

	"github.com/soulmatchapp/soulmatch-backend/internal/common/utils"
	"github.com/soulmatchapp/soulmatch-backend/internal/interests"
	"github.com/soulmatchapp/soulmatch-backend/internal/matching"
)

type Handler struct {
	taxonomy   interests.Taxonomy
	activities []matching.Activity
}

func NewHandler(taxonomy interests.Taxonomy, activities []matching.Activity) *Handler {
	return &Handler{taxonomy: taxonomy, activities: activities}
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, interests.Categories())
}

func (h *Handler) GetInterests(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, h.taxonomy)
}

func (h *Handler) GetActivities(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, h.activities)
}
