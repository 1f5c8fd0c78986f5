// internal/session/resolver.go
// Ordered link-resolution chain: remote tokens, embedded token, legacy ids

package session

import (
	"context"
	"errors"
	"net/url"
)

var ErrNoSession = errors.New("no recoverable session in link")

// Link query parameters, in resolution priority order.
const (
	ParamSession       = "s"       // remote session token
	ParamReport        = "r"       // remote read-only report token
	ParamEmbedded      = "data"    // self-contained embedded token
	ParamLegacyReport  = "report"  // legacy report id, paired with the local slot
	ParamLegacySession = "session" // legacy session id, paired with the local slot
)

// Resolved is the outcome of a successful link resolution. Ref is the
// raw parameter value the record was recovered from; for the remote
// sources it doubles as the store key to keep writing back to.
type Resolved struct {
	Record *SessionRecord
	Source string
	Ref    string
}

// Resolver recovers a session record from inbound link parameters.
// Attempts run as an explicit ordered list, stopping at the first
// success; every recovered record must carry a session id and at
// least one participant or the attempt counts as a miss.
type Resolver struct {
	remote Store
	codec  Codec
	slot   SlotStore
}

func NewResolver(remote Store, codec Codec, slot SlotStore) *Resolver {
	return &Resolver{remote: remote, codec: codec, slot: slot}
}

func (r *Resolver) Resolve(ctx context.Context, params url.Values) (*Resolved, error) {
	attempts := []struct {
		param  string
		source string
		load   func(ctx context.Context, value string) (*SessionRecord, error)
	}{
		{ParamSession, "remote_session", r.loadRemote},
		{ParamReport, "remote_report", r.loadRemote},
		{ParamEmbedded, "embedded", r.loadEmbedded},
		{ParamLegacyReport, "legacy_report", r.loadFromSlot},
		{ParamLegacySession, "legacy_session", r.loadFromSlot},
	}

	for _, attempt := range attempts {
		value := params.Get(attempt.param)
		if value == "" {
			continue
		}
		record, err := attempt.load(ctx, value)
		if err != nil || !record.Valid() {
			continue
		}
		resolvesBySource.WithLabelValues(attempt.source).Inc()
		return &Resolved{Record: record, Source: attempt.source, Ref: value}, nil
	}

	resolveFailures.Inc()
	return nil, ErrNoSession
}

func (r *Resolver) loadRemote(ctx context.Context, id string) (*SessionRecord, error) {
	if r.remote == nil {
		return nil, ErrNotFound
	}
	return r.remote.Load(ctx, id)
}

func (r *Resolver) loadEmbedded(ctx context.Context, token string) (*SessionRecord, error) {
	return r.codec.Decode(token)
}

// loadFromSlot serves the legacy bare-id links, which only work when
// the matching record is still in this client's local slot.
func (r *Resolver) loadFromSlot(ctx context.Context, id string) (*SessionRecord, error) {
	if r.slot == nil {
		return nil, ErrNotFound
	}
	record, err := r.slot.Load(ctx)
	if err != nil {
		return nil, err
	}
	if record.SessionID != id {
		return nil, ErrNotFound
	}
	return record, nil
}
