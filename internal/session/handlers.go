// internal/session/handlers.go

package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/soulmatchapp/soulmatch-backend/internal/common/utils"
	"github.com/soulmatchapp/soulmatch-backend/internal/interests"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var dto CreateSessionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.service.CreateSession(r.Context(), &dto)
	if err != nil {
		respondServiceError(w, err, "Failed to create session")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *Handler) SubmitPartner(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["ref"]

	var dto SubmitPartnerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	completed, err := h.service.SubmitPartner(r.Context(), ref, &dto)
	if err != nil {
		respondServiceError(w, err, "Failed to submit partner selection")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, completed)
}

// ResolveLink recovers a session from share-link query parameters
// (s, r, data, report, session).
func (h *Handler) ResolveLink(w http.ResponseWriter, r *http.Request) {
	resolved, err := h.service.ResolveLink(r.Context(), r.URL.Query())
	if err != nil {
		respondServiceError(w, err, "Failed to resolve link")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, resolved)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	record, err := h.service.GetSession(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to load session")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, record)
}

func (h *Handler) PreviewMatch(w http.ResponseWriter, r *http.Request) {
	var dto PreviewMatchDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.PreviewMatch(r.Context(), &dto)
	if err != nil {
		respondServiceError(w, err, "Failed to calculate match")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

func respondServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrEmptyName),
		errors.Is(err, ErrEmptySelection),
		errors.Is(err, interests.ErrDuplicateTag),
		errors.Is(err, interests.ErrUnknownTag),
		errors.Is(err, interests.ErrUnknownCategory),
		errors.Is(err, interests.ErrImportanceOutOfRange):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoSession):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrSessionComplete):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, fallback)
	}
}
