// Package mail delivers outbound email and the second-factor code messages.
package mail

import (
	"context"
	"net/http"

	"vigil/internal/errors"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendGridHost     = "https://api.sendgrid.com"
	sendGridEndpoint = "/v3/mail/send"
)

// SendGridMailer sends mail through the SendGrid v3 API.
type SendGridMailer struct {
	apiKey   string
	host     string
	from     string
	fromName string
}

// NewSendGridMailer creates a SendGrid backed mailer.
func NewSendGridMailer(apiKey, from, fromName string) (*SendGridMailer, error) {
	if apiKey == "" || from == "" {
		return nil, errors.New("invalid SendGrid configuration: apiKey and from are required")
	}

	return &SendGridMailer{
		apiKey:   apiKey,
		host:     sendGridHost,
		from:     from,
		fromName: fromName,
	}, nil
}

func (m *SendGridMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	message := sgmail.NewSingleEmail(
		sgmail.NewEmail(m.fromName, m.from),
		subject,
		sgmail.NewEmail("", to),
		plainTextFallback(htmlBody),
		htmlBody,
	)

	request := sendgrid.GetRequest(m.apiKey, sendGridEndpoint, m.host)
	request.Method = http.MethodPost
	request.Body = sgmail.GetRequestBody(message)

	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return errors.Wrap(err, "sendgrid request failed")
	}

	if response.StatusCode != http.StatusAccepted {
		return errors.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}
