// Package resend delivers notifications through the Resend email API.
package resend

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/goliatone/go-formpress/pkg/notify"
)

// Notifier sends messages through a Resend account.
type Notifier struct {
	client *resend.Client
	from   string
}

// New builds a Notifier. The from address must belong to a domain verified
// with Resend or sends are rejected upstream.
func New(apiKey, from string) *Notifier {
	return &Notifier{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (n *Notifier) Send(ctx context.Context, msg notify.Message) error {
	req := &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	if msg.Attachment != nil {
		req.Attachments = []*resend.Attachment{{
			Filename: msg.Attachment.Filename,
			Content:  msg.Attachment.Content,
		}}
	}

	if _, err := n.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend: send to %s: %w", msg.To, err)
	}
	return nil
}
