// internal/session/codec.go
// Reversible URL-safe encoding of session records for link transport

package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrDecodeFailed = errors.New("session token could not be decoded")

// Tier classifies how complete a decoded payload is. Decoding never
// adopts a partial shape as-is; each tier has its own normalization.
type Tier int

const (
	TierInvalid Tier = iota
	TierMinimal
	TierPartial
	TierFull
)

func (t Tier) String() string {
	switch t {
	case TierFull:
		return "full"
	case TierPartial:
		return "partial"
	case TierMinimal:
		return "minimal"
	default:
		return "invalid"
	}
}

// Codec converts session records to and from transportable tokens.
// Stateless and safe for concurrent use.
type Codec struct{}

func NewCodec() Codec {
	return Codec{}
}

// Encode serializes the record into a URL-safe token. The payload is
// sparse: absent fields are omitted entirely, never emitted as null.
// Non-ASCII participant names round-trip intact.
func (Codec) Encode(record *SessionRecord) (string, error) {
	if record == nil {
		return "", ErrDecodeFailed
	}

	reduced := *record
	if reduced.SessionID == "" {
		reduced.SessionID = NewSessionID()
	}
	if reduced.CreatedAt.IsZero() {
		reduced.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(&reduced)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(payload), nil
}

// Decode parses a token, classifies it into a completeness tier and
// normalizes it to a full SessionRecord with explicit defaults for
// absent fields. An unclassifiable payload yields ErrDecodeFailed;
// callers treat that as "no session" rather than an error condition.
func (c Codec) Decode(token string) (*SessionRecord, error) {
	payload, err := decodeBase64(token)
	if err != nil {
		return nil, ErrDecodeFailed
	}

	var record SessionRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, ErrDecodeFailed
	}

	tier := c.Classify(&record)
	switch tier {
	case TierFull:
		// Already carries both participants and a result.
	case TierPartial:
		// Participant1 only. Drop anything else the source token
		// happened to carry.
		record.Participant2 = nil
		record.MatchResult = nil
	case TierMinimal:
		// Keep whatever is present, default the rest below.
	default:
		return nil, ErrDecodeFailed
	}

	if record.SessionID == "" {
		record.SessionID = uuid.NewString()[:8]
	}
	if record.Participant2Name == "" && record.Participant2 != nil {
		record.Participant2Name = record.Participant2.Name
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	return &record, nil
}

// Classify returns the completeness tier of a raw decoded record.
func (Codec) Classify(record *SessionRecord) Tier {
	switch {
	case record == nil:
		return TierInvalid
	case record.Participant1 != nil && record.Participant2 != nil && record.MatchResult != nil:
		return TierFull
	case record.Participant1 != nil && record.Participant2 == nil:
		return TierPartial
	case record.SessionID != "" || record.Participant1 != nil || record.Participant2 != nil:
		return TierMinimal
	default:
		return TierInvalid
	}
}

// decodeBase64 accepts both the canonical unpadded URL-safe alphabet
// and standard base64 produced by older clients.
func decodeBase64(token string) ([]byte, error) {
	if payload, err := base64.RawURLEncoding.DecodeString(token); err == nil {
		return payload, nil
	}
	if payload, err := base64.URLEncoding.DecodeString(token); err == nil {
		return payload, nil
	}
	return base64.StdEncoding.DecodeString(token)
}
