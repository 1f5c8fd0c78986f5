// internal/share/providers.go

package share

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Invite is one out-of-band delivery of a share link to participant 2.
type Invite struct {
	To          string
	SenderName  string
	PartnerName string
	Link        string
}

// EmailProvider defines the email delivery interface
type EmailProvider interface {
	SendEmail(ctx context.Context, invite *Invite) error
}

// SMSProvider defines the SMS delivery interface
type SMSProvider interface {
	SendSMS(ctx context.Context, invite *Invite) error
}

func inviteSubject(invite *Invite) string {
	return fmt.Sprintf("%s wants to see how compatible you are", invite.SenderName)
}

func inviteBody(invite *Invite) string {
	return fmt.Sprintf(
		"Hi %s!\n\n%s picked their interests and is waiting for yours.\nOpen the link to add your side and see your match:\n\n%s\n\nThe link expires in 24 hours.",
		invite.PartnerName, invite.SenderName, invite.Link,
	)
}

// SMTPEmailProvider implements EmailProvider using plain SMTP
type SMTPEmailProvider struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewSMTPEmailProvider(host, port, username, password, from string) EmailProvider {
	return &SMTPEmailProvider{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (p *SMTPEmailProvider) SendEmail(ctx context.Context, invite *Invite) error {
	message := fmt.Sprintf("From: %s\r\n", p.from)
	message += fmt.Sprintf("To: %s\r\n", invite.To)
	message += fmt.Sprintf("Subject: %s\r\n", inviteSubject(invite))
	message += "MIME-version: 1.0;\r\n"
	message += "Content-Type: text/plain; charset=\"UTF-8\";\r\n"
	message += "\r\n"
	message += inviteBody(invite)

	auth := smtp.PlainAuth("", p.username, p.password, p.host)
	addr := fmt.Sprintf("%s:%s", p.host, p.port)

	if err := smtp.SendMail(addr, auth, p.from, []string{invite.To}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send invite email: %w", err)
	}
	return nil
}

// SendGridEmailProvider implements EmailProvider using SendGrid
type SendGridEmailProvider struct {
	apiKey string
	from   string
}

func NewSendGridEmailProvider(apiKey, from string) EmailProvider {
	return &SendGridEmailProvider{apiKey: apiKey, from: from}
}

func (p *SendGridEmailProvider) SendEmail(ctx context.Context, invite *Invite) error {
	from := mail.NewEmail("SoulMatch", p.from)
	to := mail.NewEmail(invite.PartnerName, invite.To)

	message := mail.NewSingleEmail(from, inviteSubject(invite), to, inviteBody(invite), "")
	client := sendgrid.NewSendClient(p.apiKey)

	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send invite via SendGrid: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("SendGrid returned error status: %d", response.StatusCode)
	}
	return nil
}

// TwilioSMSProvider implements SMSProvider using Twilio
type TwilioSMSProvider struct {
	client      *twilio.RestClient
	phoneNumber string
}

func NewTwilioSMSProvider(accountSID, authToken, phoneNumber string) SMSProvider {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioSMSProvider{
		client:      client,
		phoneNumber: phoneNumber,
	}
}

func (p *TwilioSMSProvider) SendSMS(ctx context.Context, invite *Invite) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(invite.To)
	params.SetFrom(p.phoneNumber)
	params.SetBody(fmt.Sprintf("%s invited you to a SoulMatch: %s (expires in 24h)", invite.SenderName, invite.Link))

	if _, err := p.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send invite via Twilio: %w", err)
	}
	return nil
}

// MockEmailProvider implements EmailProvider for development and tests
type MockEmailProvider struct {
	SentInvites []Invite
}

func NewMockEmailProvider() *MockEmailProvider {
	return &MockEmailProvider{SentInvites: make([]Invite, 0)}
}

func (p *MockEmailProvider) SendEmail(ctx context.Context, invite *Invite) error {
	p.SentInvites = append(p.SentInvites, *invite)
	return nil
}

// MockSMSProvider implements SMSProvider for development and tests
type MockSMSProvider struct {
	SentInvites []Invite
}

func NewMockSMSProvider() *MockSMSProvider {
	return &MockSMSProvider{SentInvites: make([]Invite, 0)}
}

func (p *MockSMSProvider) SendSMS(ctx context.Context, invite *Invite) error {
	p.SentInvites = append(p.SentInvites, *invite)
	return nil
}
