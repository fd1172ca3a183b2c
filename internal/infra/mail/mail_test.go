package mail

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"sync"
	"testing"
	"time"

	"vigil/config"
	"vigil/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCode(purpose entity.CodePurpose) *entity.SecondFactorCode {
	issuedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	return &entity.SecondFactorCode{
		Code:      "482913",
		Purpose:   purpose,
		UserID:    uuid.New(),
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(5 * time.Minute),
	}
}

func TestRenderCodeEmail(t *testing.T) {
	subject, body, err := renderCodeEmail(testCode(entity.CodePurposeLogin))
	require.NoError(t, err)
	assert.Equal(t, "Your sign-in verification code", subject)
	assert.Contains(t, body, "482913")
	assert.Contains(t, body, "expires in 5 minutes")

	subject, body, err = renderCodeEmail(testCode(entity.CodePurposeReset))
	require.NoError(t, err)
	assert.Equal(t, "Your password reset code", subject)
	assert.Contains(t, body, "reset your password")
}

func TestRenderCodeEmail_EscapesCode(t *testing.T) {
	code := testCode(entity.CodePurposeLogin)
	code.Code = "<script>"

	_, body, err := renderCodeEmail(code)
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestPlainTextFallback(t *testing.T) {
	got := plainTextFallback("<h2>Hello</h2>\n  <p>code &amp; more</p>")
	assert.Equal(t, "Hello code & more", got)
}

func TestBuildMIMEMessage(t *testing.T) {
	msg := string(buildMIMEMessage("Vigil <no-reply@vigil.local>", "officer@example.com", "Your code", "<p>hi</p>", time.Unix(0, 0).UTC()))

	assert.Contains(t, msg, "From: Vigil <no-reply@vigil.local>\r\n")
	assert.Contains(t, msg, "To: officer@example.com\r\n")
	assert.Contains(t, msg, "Content-Type: text/html; charset=\"utf-8\"\r\n")
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\n<p>hi</p>"))
}

func TestSMTPMailer_Send(t *testing.T) {
	mailer, err := NewSMTPMailer("smtp.example.com", 2525, "user", "secret", "no-reply@vigil.local", "Vigil")
	require.NoError(t, err)

	var (
		gotAddr string
		gotFrom string
		gotTo   []string
		gotMsg  []byte
	)
	mailer.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg

		return nil
	}

	require.NoError(t, mailer.Send(context.Background(), "officer@example.com", "Subject", "<p>body</p>"))
	assert.Equal(t, "smtp.example.com:2525", gotAddr)
	assert.Equal(t, "no-reply@vigil.local", gotFrom)
	assert.Equal(t, []string{"officer@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "<p>body</p>")
}

func TestSMTPMailer_Errors(t *testing.T) {
	_, err := NewSMTPMailer("", 25, "", "", "from@example.com", "")
	assert.Error(t, err)

	mailer, err := NewSMTPMailer("localhost", 25, "", "", "from@example.com", "")
	require.NoError(t, err)
	assert.Nil(t, mailer.auth)

	mailer.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}
	assert.Error(t, mailer.Send(context.Background(), "to@example.com", "s", "b"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, mailer.Send(ctx, "to@example.com", "s", "b"))
}

func TestSendGridMailer_Send(t *testing.T) {
	var (
		gotAuth string
		gotPath string
		payload map[string]any
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &payload)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	mailer, err := NewSendGridMailer("SG.test", "no-reply@vigil.local", "Vigil")
	require.NoError(t, err)
	mailer.host = server.URL

	require.NoError(t, mailer.Send(context.Background(), "officer@example.com", "Your code", "<p>482913</p>"))
	assert.Equal(t, "Bearer SG.test", gotAuth)
	assert.Equal(t, "/v3/mail/send", gotPath)
	assert.Equal(t, "Your code", payload["subject"])
}

func TestSendGridMailer_RejectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	mailer, err := NewSendGridMailer("SG.bad", "no-reply@vigil.local", "")
	require.NoError(t, err)
	mailer.host = server.URL

	err = mailer.Send(context.Background(), "officer@example.com", "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status code: 401")

	_, err = NewSendGridMailer("", "from@example.com", "")
	assert.Error(t, err)
}

type recordingMailer struct {
	mu       sync.Mutex
	sent     []string
	err      error
	release  chan struct{}
	received chan struct{}
}

func (m *recordingMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if m.received != nil {
		m.received <- struct{}{}
	}
	if m.release != nil {
		<-m.release
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to+"|"+subject)

	return m.err
}

func (m *recordingMailer) Sent() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.sent...)
}

func TestCodeDispatcher_Delivers(t *testing.T) {
	mailer := &recordingMailer{}
	dispatcher := NewCodeDispatcher(mailer, 10, time.Second, slog.Default())
	dispatcher.Start()

	dispatcher.SendCode(context.Background(), "officer@example.com", testCode(entity.CodePurposeLogin))

	assert.Eventually(t, func() bool { return len(mailer.Sent()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "officer@example.com|Your sign-in verification code", mailer.Sent()[0])

	require.NoError(t, dispatcher.Stop(context.Background()))
}

func TestCodeDispatcher_FailureIsSwallowed(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("provider down")}
	dispatcher := NewCodeDispatcher(mailer, 10, time.Second, slog.Default())
	dispatcher.Start()

	dispatcher.SendCode(context.Background(), "a@example.com", testCode(entity.CodePurposeReset))
	dispatcher.SendCode(context.Background(), "b@example.com", testCode(entity.CodePurposeReset))

	assert.Eventually(t, func() bool { return len(mailer.Sent()) == 2 }, time.Second, 5*time.Millisecond)
	require.NoError(t, dispatcher.Stop(context.Background()))
}

func TestCodeDispatcher_DropsWhenFull(t *testing.T) {
	mailer := &recordingMailer{release: make(chan struct{}), received: make(chan struct{}, 10)}
	dispatcher := NewCodeDispatcher(mailer, 1, time.Second, slog.Default())
	dispatcher.Start()

	// first job is taken by the worker and blocks inside Send
	dispatcher.SendCode(context.Background(), "first@example.com", testCode(entity.CodePurposeLogin))
	<-mailer.received

	// second fills the queue, third is dropped without blocking
	dispatcher.SendCode(context.Background(), "second@example.com", testCode(entity.CodePurposeLogin))
	returned := make(chan struct{})
	go func() {
		dispatcher.SendCode(context.Background(), "third@example.com", testCode(entity.CodePurposeLogin))
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("SendCode blocked on a full queue")
	}

	close(mailer.release)
	require.NoError(t, dispatcher.Stop(context.Background()))

	sent := mailer.Sent()
	require.Len(t, sent, 2)
	assert.True(t, strings.HasPrefix(sent[0], "first@"))
	assert.True(t, strings.HasPrefix(sent[1], "second@"))
}

func TestCodeDispatcher_StopFlushesQueue(t *testing.T) {
	mailer := &recordingMailer{}
	dispatcher := NewCodeDispatcher(mailer, 10, time.Second, slog.Default())

	dispatcher.SendCode(context.Background(), "queued@example.com", testCode(entity.CodePurposeLogin))
	dispatcher.Start()
	require.NoError(t, dispatcher.Stop(context.Background()))

	assert.Len(t, mailer.Sent(), 1)
	require.NoError(t, dispatcher.Stop(context.Background()))
}

func TestNewMailer(t *testing.T) {
	logger := slog.Default()

	tests := []struct {
		name    string
		mail    *config.MailConfig
		want    any
		wantErr bool
	}{
		{name: "log", mail: &config.MailConfig{Provider: config.MailProviderLog}, want: &LogMailer{}},
		{
			name: "smtp",
			mail: &config.MailConfig{Provider: config.MailProviderSMTP, From: "f@example.com", SMTP: &config.SMTPConfig{Host: "localhost", Port: 25}},
			want: &SMTPMailer{},
		},
		{
			name: "sendgrid",
			mail: &config.MailConfig{Provider: config.MailProviderSendGrid, From: "f@example.com", SendGrid: &config.SendGridConfig{APIKey: "SG.key"}},
			want: &SendGridMailer{},
		},
		{name: "smtp without section", mail: &config.MailConfig{Provider: config.MailProviderSMTP}, wantErr: true},
		{name: "unknown", mail: &config.MailConfig{Provider: "pigeon"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer, err := NewMailer(&config.Config{Mail: tt.mail}, logger)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, mailer)
		})
	}
}
