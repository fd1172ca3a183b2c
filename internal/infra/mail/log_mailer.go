package mail

import (
	"context"
	"log/slog"
)

// LogMailer writes messages to the log instead of sending them.
// Used for local development.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	m.logger.InfoContext(ctx, "Mail not sent (log provider)",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", plainTextFallback(htmlBody)))

	return nil
}
