package service

import (
	"context"

	"vigil/internal/domain/entity"
)

// Mailer sends one HTML email.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// CodeSender delivers an issued code to its owner.
// SendCode never blocks on delivery and never reports delivery failures.
type CodeSender interface {
	SendCode(ctx context.Context, to string, code *entity.SecondFactorCode)
}
