package mailer

import (
	"context"
	"errors"
	"strings"

	"github.com/oksasatya/go-course-api/pkg/mailer/templates"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template (+Data) or literal Subject/Text/HTML must be set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "welcome"
	Data     map[string]any `json:"data,omitempty"`
}

var ErrNoRecipient = errors.New("email job has no recipient")

// Sender delivers one rendered message.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// NewWelcomeJob builds the job queued after a successful registration.
func NewWelcomeJob(appName, email, firstName, lastName string) EmailJob {
	return EmailJob{
		To:       email,
		Template: templates.Welcome,
		Data: map[string]any{
			"AppName":   appName,
			"Email":     email,
			"FirstName": firstName,
			"LastName":  lastName,
		},
	}
}

// Deliver renders job (when it names a template) and hands it to s.
func Deliver(ctx context.Context, s Sender, job EmailJob) error {
	if strings.TrimSpace(job.To) == "" {
		return ErrNoRecipient
	}
	msg := templates.Message{Subject: job.Subject, Text: job.Text, HTML: job.HTML}
	if job.Template != "" {
		var err error
		if msg, err = templates.Render(job.Template, job.Data); err != nil {
			return err
		}
	}
	return s.Send(ctx, job.To, msg.Subject, msg.Text, msg.HTML)
}
