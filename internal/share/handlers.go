// internal/share/handlers.go

package share

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/soulmatchapp/soulmatch-backend/internal/common/utils"
)

// SendInviteDTO asks the backend to deliver a share link out of band.
type SendInviteDTO struct {
	Channel     string `json:"channel" validate:"required,oneof=email sms"`
	To          string `json:"to" validate:"required"`
	SenderName  string `json:"senderName" validate:"required"`
	PartnerName string `json:"partnerName"`
	Link        string `json:"link" validate:"required,url"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) SendInvite(w http.ResponseWriter, r *http.Request) {
	var dto SendInviteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	invite := &Invite{
		To:          dto.To,
		SenderName:  dto.SenderName,
		PartnerName: dto.PartnerName,
		Link:        dto.Link,
	}

	var err error
	switch dto.Channel {
	case "sms":
		err = h.service.SendInviteSMS(r.Context(), invite)
	default:
		err = h.service.SendInviteEmail(r.Context(), invite)
	}

	if err != nil {
		if errors.Is(err, ErrChannelUnavailable) {
			utils.RespondWithError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send invite")
		return
	}

	utils.MessageResponse(w, "Invite sent", http.StatusOK)
}
