package mail

import (
	"context"
	"log/slog"

	"vigil/config"
	"vigil/internal/domain/service"
	"vigil/internal/errors"

	"go.uber.org/fx"
)

// NewMailer builds the provider selected under mail.provider.
func NewMailer(cfg *config.Config, logger *slog.Logger) (service.Mailer, error) {
	mailCfg := cfg.Mail

	switch mailCfg.Provider {
	case config.MailProviderSendGrid:
		if mailCfg.SendGrid == nil {
			return nil, errors.New("mail.sendgrid section is required for the sendgrid provider")
		}
		logger.Info("Using SendGrid mail provider")

		return NewSendGridMailer(mailCfg.SendGrid.APIKey, mailCfg.From, mailCfg.FromName)

	case config.MailProviderSMTP:
		if mailCfg.SMTP == nil {
			return nil, errors.New("mail.smtp section is required for the smtp provider")
		}
		logger.Info("Using SMTP mail provider", slog.String("host", mailCfg.SMTP.Host))

		return NewSMTPMailer(mailCfg.SMTP.Host, mailCfg.SMTP.Port, mailCfg.SMTP.Username, mailCfg.SMTP.Password, mailCfg.From, mailCfg.FromName)

	case config.MailProviderLog, "":
		logger.Warn("Using log mail provider, emails will not be delivered")

		return NewLogMailer(logger), nil

	default:
		return nil, errors.Errorf("unsupported mail provider: %s", mailCfg.Provider)
	}
}

// CodeSenderParams defines the dependencies for the code dispatcher
type CodeSenderParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Mailer    service.Mailer
	Logger    *slog.Logger
}

// NewCodeSender creates the dispatcher and binds its worker to the lifecycle.
func NewCodeSender(params CodeSenderParams) service.CodeSender {
	dispatcher := NewCodeDispatcher(params.Mailer, params.Config.Mail.QueueSize, params.Config.Mail.Timeout, params.Logger)

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			dispatcher.Start()

			return nil
		},
		OnStop: dispatcher.Stop,
	})

	return dispatcher
}
