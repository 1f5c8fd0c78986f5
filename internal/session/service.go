// internal/session/service.go

package session

import (
	"context"
	"errors"
	"net/url"

	"github.com/soulmatchapp/soulmatch-backend/internal/interests"
	"github.com/soulmatchapp/soulmatch-backend/internal/matching"
)

var ErrSessionComplete = errors.New("session already has both participants")

// Service exposes the handoff workflow to the HTTP layer. Every call
// drives a fresh Flow over the shared stores, mirroring how each
// participant's app instance walks the state machine independently.
type Service interface {
	CreateSession(ctx context.Context, dto *CreateSessionDTO) (*SessionCreated, error)
	SubmitPartner(ctx context.Context, ref string, dto *SubmitPartnerDTO) (*SessionCompleted, error)
	ResolveLink(ctx context.Context, params url.Values) (*ResolveResponse, error)
	GetSession(ctx context.Context, id string) (*SessionRecord, error)
	PreviewMatch(ctx context.Context, dto *PreviewMatchDTO) (*matching.MatchResult, error)
}

type service struct {
	engine   matching.Engine
	remote   Store
	codec    Codec
	slot     SlotStore
	taxonomy interests.Taxonomy
	baseURL  string
}

func NewService(engine matching.Engine, remote Store, codec Codec, slot SlotStore, taxonomy interests.Taxonomy, baseURL string) Service {
	return &service{
		engine:   engine,
		remote:   remote,
		codec:    codec,
		slot:     slot,
		taxonomy: taxonomy,
		baseURL:  baseURL,
	}
}

func (s *service) newFlow() *Flow {
	return NewFlow(s.engine, s.remote, s.codec, s.slot, s.taxonomy, s.baseURL)
}

func (s *service) CreateSession(ctx context.Context, dto *CreateSessionDTO) (*SessionCreated, error) {
	flow := s.newFlow()
	if err := flow.EnterNames(dto.Participant1Name, dto.Participant2Name); err != nil {
		return nil, err
	}
	if err := flow.BeginSelection(); err != nil {
		return nil, err
	}
	link, err := flow.SubmitParticipant1(ctx, dto.Selection)
	if err != nil {
		return nil, err
	}

	record := flow.Record()
	return &SessionCreated{
		SessionID: record.SessionID,
		ShareLink: link,
		State:     flow.State(),
		ExpiresAt: record.ExpiresAt(),
	}, nil
}

func (s *service) SubmitPartner(ctx context.Context, ref string, dto *SubmitPartnerDTO) (*SessionCompleted, error) {
	// The ref is either a remote short id or a self-contained token;
	// the resolver chain sorts that out.
	params := url.Values{}
	params.Set(ParamSession, ref)
	params.Set(ParamEmbedded, ref)

	flow := s.newFlow()
	state, err := flow.ResolveLink(ctx, params)
	if err != nil {
		return nil, ErrNotFound
	}
	if state == StateResultsReady {
		return nil, ErrSessionComplete
	}

	link, err := flow.SubmitParticipant2(ctx, dto.Name, dto.Selection)
	if err != nil {
		return nil, err
	}

	reportLink, err := flow.ShareReport(ctx)
	if err != nil {
		reportLink = ""
	}

	return &SessionCompleted{
		Record:     flow.Record(),
		MatchLevel: matching.MatchLevel(flow.Result().OverallScore),
		ShareLink:  link,
		ReportLink: reportLink,
	}, nil
}

func (s *service) ResolveLink(ctx context.Context, params url.Values) (*ResolveResponse, error) {
	flow := s.newFlow()
	state, err := flow.ResolveLink(ctx, params)
	if err != nil {
		return nil, err
	}

	resp := &ResolveResponse{
		State:  state,
		Record: flow.Record(),
	}
	if result := flow.Result(); result != nil {
		resp.MatchLevel = matching.MatchLevel(result.OverallScore)
	}
	return resp, nil
}

func (s *service) GetSession(ctx context.Context, id string) (*SessionRecord, error) {
	if s.remote == nil {
		return nil, ErrNotFound
	}
	record, err := s.remote.Load(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if !record.Valid() {
		return nil, ErrNotFound
	}
	return record, nil
}

func (s *service) PreviewMatch(ctx context.Context, dto *PreviewMatchDTO) (*matching.MatchResult, error) {
	if err := dto.Selection1.Validate(s.taxonomy); err != nil {
		return nil, err
	}
	if err := dto.Selection2.Validate(s.taxonomy); err != nil {
		return nil, err
	}
	result := s.engine.CalculateMatch(dto.Selection1, dto.Selection2)
	matching.RecordCalculation(result)
	return result, nil
}
