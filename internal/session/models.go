// internal/session/models.go

package session

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/soulmatchapp/soulmatch-backend/internal/interests"
	"github.com/soulmatchapp/soulmatch-backend/internal/matching"
)

// SessionTTL is how long a session stays resolvable after creation.
// Enforced both store-side (expires_at) and client-side on load.
const SessionTTL = 24 * time.Hour

const (
	ParticipantOne = "user1"
	ParticipantTwo = "user2"
)

// ParticipantRecord captures one participant's completed submission.
// It is created once and only ever replaced wholesale.
type ParticipantRecord struct {
	ParticipantID string              `json:"participantId"`
	Name          string              `json:"name"`
	Selection     interests.Selection `json:"selection"`
	Completed     bool                `json:"completed"`
	SubmittedAt   time.Time           `json:"submittedAt"`
}

// SessionRecord is the shared state of one two-party matching
// exchange. Owned by the state machine; sub-fields are replaced
// whole, never partially mutated.
type SessionRecord struct {
	SessionID        string                `json:"sessionId"`
	Participant1     *ParticipantRecord    `json:"participant1,omitempty"`
	Participant2     *ParticipantRecord    `json:"participant2,omitempty"`
	Participant2Name string                `json:"participant2Name,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
	MatchResult      *matching.MatchResult `json:"matchResult,omitempty"`
}

// Valid reports whether the record is usable at all: a session id and
// at least one participant. Anything less is treated as "no session".
func (r *SessionRecord) Valid() bool {
	if r == nil || r.SessionID == "" {
		return false
	}
	return r.Participant1 != nil || r.Participant2 != nil
}

// Complete reports whether both participants have submitted.
func (r *SessionRecord) Complete() bool {
	return r != nil && r.Participant1 != nil && r.Participant2 != nil
}

// ExpiresAt is 24 hours after creation.
func (r *SessionRecord) ExpiresAt() time.Time {
	return r.CreatedAt.Add(SessionTTL)
}

// Expired reports whether the record has passed its expiry window.
func (r *SessionRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt())
}

// NewParticipant builds a completed participant record.
func NewParticipant(participantID, name string, selection interests.Selection, submittedAt time.Time) *ParticipantRecord {
	return &ParticipantRecord{
		ParticipantID: participantID,
		Name:          name,
		Selection:     selection,
		Completed:     true,
		SubmittedAt:   submittedAt,
	}
}

const base36Alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// newShortID returns a random base36 id of the given length.
func newShortID(length int) string {
	out := make([]byte, length)
	max := big.NewInt(int64(len(base36Alphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is
			// broken; fall back to a fixed character rather than panic.
			out[i] = base36Alphabet[0]
			continue
		}
		out[i] = base36Alphabet[n.Int64()]
	}
	return string(out)
}

// NewSessionID generates a session identifier.
func NewSessionID() string {
	return newShortID(9)
}
