// internal/session/flow.go
// Two-party asynchronous handoff state machine

package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/soulmatchapp/soulmatch-backend/internal/interests"
	"github.com/soulmatchapp/soulmatch-backend/internal/matching"
)

// State of the handoff workflow. ResultsReady is terminal except for
// an explicit reset back to Welcome.
type State string

const (
	StateWelcome             State = "welcome"
	StateNamesEntered        State = "names_entered"
	StateParticipant1Filling State = "participant1_filling"
	StateAwaitingShare       State = "awaiting_share"
	StateParticipant2Filling State = "participant2_filling"
	StateLinkResolved        State = "link_resolved"
	StateResultsReady        State = "results_ready"
)

var (
	ErrEmptyName         = errors.New("participant name must not be empty")
	ErrEmptySelection    = errors.New("selection must not be empty")
	ErrInvalidTransition = errors.New("transition not allowed from current state")
)

// Flow drives one app instance's walk through the handoff sequence.
// Guard violations leave the state untouched and return a sentinel
// error; store failures degrade to the embedded-token link and never
// surface as fatal. Flows are not safe for concurrent use; the
// workflow is sequential by design.
type Flow struct {
	state     State
	record    *SessionRecord
	remoteID  string
	shareLink string
	p1Name    string
	p2Name    string

	engine   matching.Engine
	remote   Store
	codec    Codec
	slot     SlotStore
	resolver *Resolver
	taxonomy interests.Taxonomy
	baseURL  string
	now      func() time.Time
}

// NewFlow wires a fresh workflow in the Welcome state. remote may be
// nil, in which case every link is self-contained.
func NewFlow(engine matching.Engine, remote Store, codec Codec, slot SlotStore, taxonomy interests.Taxonomy, baseURL string) *Flow {
	return &Flow{
		state:    StateWelcome,
		engine:   engine,
		remote:   remote,
		codec:    codec,
		slot:     slot,
		resolver: NewResolver(remote, codec, slot),
		taxonomy: taxonomy,
		baseURL:  baseURL,
		now:      time.Now,
	}
}

func (f *Flow) State() State           { return f.state }
func (f *Flow) Record() *SessionRecord { return f.record }
func (f *Flow) ShareLink() string      { return f.shareLink }

// Result returns the attached match result, nil until ResultsReady.
func (f *Flow) Result() *matching.MatchResult {
	if f.record == nil {
		return nil
	}
	return f.record.MatchResult
}

// EnterNames records both display names. Welcome → NamesEntered,
// guarded on both names being non-empty.
func (f *Flow) EnterNames(name1, name2 string) error {
	if f.state != StateWelcome {
		return ErrInvalidTransition
	}
	name1, name2 = strings.TrimSpace(name1), strings.TrimSpace(name2)
	if name1 == "" || name2 == "" {
		return ErrEmptyName
	}
	f.p1Name, f.p2Name = name1, name2
	f.state = StateNamesEntered
	return nil
}

// BeginSelection opens participant 1's selection screen.
func (f *Flow) BeginSelection() error {
	if f.state != StateNamesEntered {
		return ErrInvalidTransition
	}
	f.state = StateParticipant1Filling
	return nil
}

// SubmitParticipant1 builds the session record from participant 1's
// selection, persists it and produces the shareable link.
// Participant1Filling → AwaitingShare.
func (f *Flow) SubmitParticipant1(ctx context.Context, selection interests.Selection) (string, error) {
	if f.state != StateParticipant1Filling {
		return "", ErrInvalidTransition
	}
	if len(selection) == 0 {
		return "", ErrEmptySelection
	}
	if err := selection.Validate(f.taxonomy); err != nil {
		return "", err
	}

	now := f.now().UTC()
	f.record = &SessionRecord{
		SessionID:        NewSessionID(),
		Participant1:     NewParticipant(ParticipantOne, f.p1Name, selection, now),
		Participant2Name: f.p2Name,
		CreatedAt:        now,
	}

	link, err := f.persist(ctx)
	if err != nil {
		return "", err
	}
	f.shareLink = link
	f.state = StateAwaitingShare
	sessionsCreated.Inc()
	return link, nil
}

// StartParticipant2 moves to participant 2's selection screen on the
// same device. The partner's name must be known, either from this
// call or already carried by the record.
func (f *Flow) StartParticipant2(name string) error {
	if f.state != StateAwaitingShare {
		return ErrInvalidTransition
	}
	name = strings.TrimSpace(name)
	if name != "" {
		f.record.Participant2Name = name
	}
	if f.record.Participant2Name == "" {
		return ErrEmptyName
	}
	f.state = StateParticipant2Filling
	return nil
}

// SubmitParticipant2 completes the exchange: builds participant 2's
// record, runs the scoring engine over both selections, attaches the
// result and persists the completed session.
// Participant2Filling → ResultsReady.
func (f *Flow) SubmitParticipant2(ctx context.Context, name string, selection interests.Selection) (string, error) {
	if f.state != StateParticipant2Filling {
		return "", ErrInvalidTransition
	}
	if len(selection) == 0 {
		return "", ErrEmptySelection
	}
	if err := selection.Validate(f.taxonomy); err != nil {
		return "", err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = f.record.Participant2Name
	}
	if name == "" {
		return "", ErrEmptyName
	}

	now := f.now().UTC()
	f.record.Participant2 = NewParticipant(ParticipantTwo, name, selection, now)
	f.record.Participant2Name = name

	result := f.engine.CalculateMatch(f.record.Participant1.Selection, f.record.Participant2.Selection)
	matching.RecordCalculation(result)
	f.record.MatchResult = result

	link, err := f.persist(ctx)
	if err != nil {
		return "", err
	}
	f.shareLink = link
	f.state = StateResultsReady
	sessionsCompleted.Inc()
	return link, nil
}

// ResolveLink resumes a workflow from inbound link parameters. On
// success the flow lands in Participant2Filling, or directly in
// ResultsReady when the record already carries a precomputed result
// (which is used verbatim, the engine is not re-run). On failure the
// flow stays in Welcome and the caller gets ErrNoSession.
func (f *Flow) ResolveLink(ctx context.Context, params url.Values) (State, error) {
	if f.state != StateWelcome {
		return f.state, ErrInvalidTransition
	}

	resolved, err := f.resolver.Resolve(ctx, params)
	if err != nil {
		return StateWelcome, ErrNoSession
	}
	if resolved.Record.Expired(f.now()) {
		return StateWelcome, ErrNoSession
	}

	f.state = StateLinkResolved
	f.record = resolved.Record
	if resolved.Source == "remote_session" || resolved.Source == "remote_report" {
		f.remoteID = resolved.Ref
	}

	if f.record.Complete() && f.record.MatchResult != nil {
		f.state = StateResultsReady
	} else {
		f.state = StateParticipant2Filling
	}
	return f.state, nil
}

// ShareReport persists the completed session under a fresh report id
// for read-only third-party viewing and returns the report link.
func (f *Flow) ShareReport(ctx context.Context) (string, error) {
	if f.state != StateResultsReady {
		return "", ErrInvalidTransition
	}
	if f.remote != nil {
		id, err := f.remote.Save(ctx, f.record, newShortID(6))
		if err == nil {
			savesByBackend.WithLabelValues("remote").Inc()
			return f.link(ParamReport, id), nil
		}
		log.Printf("report save failed, falling back to embedded link: %v", err)
		saveFallbacks.Inc()
	}
	token, err := f.codec.Encode(f.record)
	if err != nil {
		return "", err
	}
	savesByBackend.WithLabelValues("embedded").Inc()
	return f.link(ParamEmbedded, token), nil
}

// Reset clears all in-memory and locally persisted session state.
// ResultsReady (or any other state) → Welcome.
func (f *Flow) Reset(ctx context.Context) error {
	f.state = StateWelcome
	f.record = nil
	f.remoteID = ""
	f.shareLink = ""
	f.p1Name, f.p2Name = "", ""
	if f.slot != nil {
		if err := f.slot.Clear(ctx); err != nil {
			log.Printf("failed to clear session slot: %v", err)
		}
	}
	return nil
}

// persist writes the record through the ordered save chain: remote
// keyed store first, self-contained embedded token on failure. The
// local slot is superseded on every save, best-effort.
func (f *Flow) persist(ctx context.Context) (string, error) {
	if f.slot != nil {
		if err := f.slot.Save(ctx, f.record); err != nil {
			log.Printf("failed to save session slot: %v", err)
		}
	}

	if f.remote != nil {
		id, err := f.remote.Save(ctx, f.record, f.remoteID)
		if err == nil {
			f.remoteID = id
			savesByBackend.WithLabelValues("remote").Inc()
			return f.link(ParamSession, id), nil
		}
		log.Printf("remote session save failed, falling back to embedded link: %v", err)
		saveFallbacks.Inc()
	}

	token, err := f.codec.Encode(f.record)
	if err != nil {
		return "", fmt.Errorf("failed to build embedded link: %w", err)
	}
	savesByBackend.WithLabelValues("embedded").Inc()
	return f.link(ParamEmbedded, token), nil
}

func (f *Flow) link(param, value string) string {
	return fmt.Sprintf("%s/?%s=%s", strings.TrimRight(f.baseURL, "/"), param, url.QueryEscape(value))
}
