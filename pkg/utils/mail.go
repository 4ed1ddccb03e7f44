package utils

import (
	"context"
	"fmt"
	"html"

	"github.com/devesh1011/EtherBlinks/models"
	"github.com/mailjet/mailjet-apiv3-go/v4"
	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"
)

// Notifier tells the operator about newly created action links.
type Notifier interface {
	ActionCreated(ctx context.Context, rec models.ActionRecord, link string) error
}

type MailConfig struct {
	FromEmail string
	FromName  string
	ToEmail   string
}

type NopNotifier struct{}

func (NopNotifier) ActionCreated(context.Context, models.ActionRecord, string) error { return nil }

type MailjetNotifier struct {
	client *mailjet.Client
	cfg    MailConfig
}

func NewMailjetNotifier(apiKey, secretKey string, cfg MailConfig) *MailjetNotifier {
	return &MailjetNotifier{
		client: mailjet.NewMailjetClient(apiKey, secretKey),
		cfg:    cfg,
	}
}

func (n *MailjetNotifier) ActionCreated(_ context.Context, rec models.ActionRecord, link string) error {
	messages := &mailjet.MessagesV31{Info: []mailjet.InfoMessagesV31{
		{
			From: &mailjet.RecipientV31{
				Email: n.cfg.FromEmail,
				Name:  n.cfg.FromName,
			},
			To: &mailjet.RecipientsV31{
				{Email: n.cfg.ToEmail},
			},
			Subject:  mailSubject(rec),
			HTMLPart: mailBody(rec, link),
		},
	}}

	if _, err := n.client.SendMailV31(messages); err != nil {
		return errors.Wrap(err, "mailjet send")
	}
	return nil
}

type SMTPNotifier struct {
	dialer *gomail.Dialer
	cfg    MailConfig
}

func NewSMTPNotifier(host string, port int, username, password string, cfg MailConfig) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(host, port, username, password),
		cfg:    cfg,
	}
}

func (n *SMTPNotifier) ActionCreated(_ context.Context, rec models.ActionRecord, link string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", n.cfg.FromEmail, n.cfg.FromName)
	m.SetHeader("To", n.cfg.ToEmail)
	m.SetHeader("Subject", mailSubject(rec))
	m.SetBody("text/html", mailBody(rec, link))

	if err := n.dialer.DialAndSend(m); err != nil {
		return errors.Wrap(err, "smtp send")
	}
	return nil
}

func mailSubject(rec models.ActionRecord) string {
	switch rec.ActionType {
	case models.ActionNftSale:
		return "New EtherBlink NFT sale link"
	default:
		return "New EtherBlink tip link"
	}
}

func mailBody(rec models.ActionRecord, link string) string {
	desc := ""
	if rec.Description != nil {
		desc = *rec.Description
	}

	return fmt.Sprintf(`<body style="margin:0;padding:24px;font-family:Arial,sans-serif;">
  <h1 style="font-size:24px;">A new action link was created</h1>
  <table cellpadding="4">
    <tr><td>Type:</td><td><b>%s</b></td></tr>
    <tr><td>Short id:</td><td><b>%s</b></td></tr>
    <tr><td>Description:</td><td>%s</td></tr>
  </table>
  <p><a href="%s">%s</a></p>
</body>`,
		html.EscapeString(string(rec.ActionType)),
		html.EscapeString(rec.ShortID),
		html.EscapeString(desc),
		html.EscapeString(link),
		html.EscapeString(link),
	)
}
