package mailer

import (
	"context"
	"errors"

	"github.com/oksasatya/bg-companion-api/pkg/mailer/templates"
)

var ErrNoRecipient = errors.New("email job has no recipient")

// Deliver renders the job's template, if any, and sends it.
func Deliver(ctx context.Context, s Sender, job EmailJob) error {
	if job.To == "" {
		return ErrNoRecipient
	}
	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		var err error
		subject, text, html, err = templates.Render(job.Template, job.Data)
		if err != nil {
			return err
		}
	}
	return s.Send(ctx, job.To, subject, text, html)
}
