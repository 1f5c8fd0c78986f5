// internal/share/service.go

package share

import (
	"context"
	"errors"
)

var ErrChannelUnavailable = errors.New("share channel not configured")

// Service delivers share links out of band. Failures here never block
// the handoff itself; the participant can always copy the link.
type Service interface {
	SendInviteEmail(ctx context.Context, invite *Invite) error
	SendInviteSMS(ctx context.Context, invite *Invite) error
}

type service struct {
	email EmailProvider
	sms   SMSProvider
}

func NewService(email EmailProvider, sms SMSProvider) Service {
	return &service{email: email, sms: sms}
}

func (s *service) SendInviteEmail(ctx context.Context, invite *Invite) error {
	if s.email == nil {
		return ErrChannelUnavailable
	}
	return s.email.SendEmail(ctx, invite)
}

func (s *service) SendInviteSMS(ctx context.Context, invite *Invite) error {
	if s.sms == nil {
		return ErrChannelUnavailable
	}
	return s.sms.SendSMS(ctx, invite)
}
