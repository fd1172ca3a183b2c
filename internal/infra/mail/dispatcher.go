package mail

import (
	"context"
	"log/slog"
	"sync"
	"time"

	deliverycontext "vigil/internal/delivery/context"
	"vigil/internal/domain/entity"
	"vigil/internal/domain/service"
)

type codeJob struct {
	to        string
	code      entity.SecondFactorCode
	requestID string
}

// CodeDispatcher implements service.CodeSender with a bounded queue drained
// by a single background worker. Callers never wait on the mail provider;
// delivery failures and overflow are logged and dropped.
type CodeDispatcher struct {
	mailer  service.Mailer
	queue   chan codeJob
	timeout time.Duration
	logger  *slog.Logger

	mu      sync.Mutex
	running bool
	quit    chan struct{}
	done    chan struct{}
}

// NewCodeDispatcher creates a dispatcher. Start must be called before queued
// codes are delivered.
func NewCodeDispatcher(mailer service.Mailer, queueSize int, timeout time.Duration, logger *slog.Logger) *CodeDispatcher {
	return &CodeDispatcher{
		mailer:  mailer,
		queue:   make(chan codeJob, queueSize),
		timeout: timeout,
		logger:  logger,
	}
}

var _ service.CodeSender = (*CodeDispatcher)(nil)

// SendCode queues the code email and returns immediately.
func (d *CodeDispatcher) SendCode(ctx context.Context, to string, code *entity.SecondFactorCode) {
	job := codeJob{
		to:        to,
		code:      *code,
		requestID: deliverycontext.GetRequestIDFromContext(ctx),
	}

	select {
	case d.queue <- job:
	default:
		deliverycontext.GetLoggerOrDefault(ctx, d.logger).Warn("Mail queue full, dropping code email",
			slog.String("purpose", code.Purpose.String()))
	}
}

// Start launches the delivery worker.
func (d *CodeDispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return
	}
	d.running = true
	d.quit = make(chan struct{})
	d.done = make(chan struct{})

	go d.run(d.quit, d.done)
}

// Stop asks the worker to flush what is queued and waits for it or for ctx.
func (d *CodeDispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()

		return nil
	}
	d.running = false
	quit, done := d.quit, d.done
	d.mu.Unlock()

	close(quit)

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *CodeDispatcher) run(quit <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	for {
		select {
		case job := <-d.queue:
			d.deliver(job)
		case <-quit:
			for {
				select {
				case job := <-d.queue:
					d.deliver(job)
				default:
					return
				}
			}
		}
	}
}

func (d *CodeDispatcher) deliver(job codeJob) {
	logger := d.logger.With(
		slog.String("request_id", job.requestID),
		slog.String("purpose", job.code.Purpose.String()),
	)

	subject, body, err := renderCodeEmail(&job.code)
	if err != nil {
		logger.Error("Failed to render code email", slog.Any("error", err))

		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.mailer.Send(ctx, job.to, subject, body); err != nil {
		logger.Warn("Failed to deliver code email", slog.Any("error", err))

		return
	}

	logger.Debug("Code email delivered")
}
