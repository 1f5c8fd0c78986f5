// internal/session/dto.go

package session

import (
	"time"

	"github.com/soulmatchapp/soulmatch-backend/internal/interests"
)

// CreateSessionDTO starts a new exchange with participant 1's
// submission and both display names.
type CreateSessionDTO struct {
	Participant1Name string              `json:"participant1Name" validate:"required"`
	Participant2Name string              `json:"participant2Name" validate:"required"`
	Selection        interests.Selection `json:"selection" validate:"required,min=1,dive"`
}

// SessionCreated is the response to a successful session creation.
type SessionCreated struct {
	SessionID string    `json:"sessionId"`
	ShareLink string    `json:"shareLink"`
	State     State     `json:"state"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SubmitPartnerDTO carries participant 2's submission. Name may be
// empty when the session already knows the partner's name.
type SubmitPartnerDTO struct {
	Name      string              `json:"name"`
	Selection interests.Selection `json:"selection" validate:"required,min=1,dive"`
}

// SessionCompleted is the response once both sides have submitted.
type SessionCompleted struct {
	Record     *SessionRecord `json:"record"`
	MatchLevel string         `json:"matchLevel"`
	ShareLink  string         `json:"shareLink"`
	ReportLink string         `json:"reportLink,omitempty"`
}

// ResolveResponse describes where an inbound link landed.
type ResolveResponse struct {
	State      State          `json:"state"`
	Record     *SessionRecord `json:"record"`
	MatchLevel string         `json:"matchLevel,omitempty"`
}

// PreviewMatchDTO scores two selections directly, without a session.
// Empty selections are allowed; the engine returns a zeroed result.
type PreviewMatchDTO struct {
	Selection1 interests.Selection `json:"selection1" validate:"dive"`
	Selection2 interests.Selection `json:"selection2" validate:"dive"`
}
