package mail

import (
	"bytes"
	"context"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"time"

	"vigil/internal/errors"
)

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	addr     string
	host     string
	auth     smtp.Auth
	from     string
	fromName string

	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer creates an SMTP backed mailer. Authentication is skipped
// when no username is configured, which suits local relays such as MailHog.
func NewSMTPMailer(host string, port int, username, password, from, fromName string) (*SMTPMailer, error) {
	if host == "" || port == 0 || from == "" {
		return nil, errors.New("invalid SMTP configuration: host, port and from are required")
	}

	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	return &SMTPMailer{
		addr:     net.JoinHostPort(host, strconv.Itoa(port)),
		host:     host,
		auth:     auth,
		from:     from,
		fromName: fromName,
		sendMail: smtp.SendMail,
	}, nil
}

// Send delivers the message. net/smtp has no context support, so ctx only
// prevents starting a send after the deadline has passed.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "smtp send cancelled")
	}

	msg := buildMIMEMessage(m.fromAddress(), to, subject, htmlBody, time.Now())
	if err := m.sendMail(m.addr, m.auth, m.from, []string{to}, msg); err != nil {
		return errors.Wrap(err, "smtp send failed")
	}

	return nil
}

func (m *SMTPMailer) fromAddress() string {
	return (&mail.Address{Name: m.fromName, Address: m.from}).String()
}

func buildMIMEMessage(from, to, subject, htmlBody string, now time.Time) []byte {
	var buf bytes.Buffer

	buf.WriteString("From: " + from + "\r\n")
	buf.WriteString("To: " + to + "\r\n")
	buf.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	buf.WriteString("Date: " + now.Format(time.RFC1123Z) + "\r\n")
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(htmlBody)

	return buf.Bytes()
}
