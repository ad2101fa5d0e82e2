package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rpggio/okrboard/internal/domain/okr"
)

// DefaultSubject is the NATS subject change signals are published on.
const DefaultSubject = "okrboard.data.changed"

// Connect dials the NATS server at url.
func Connect(url string, opts ...nats.Option) (*nats.Conn, error) {
	opts = append([]nats.Option{
		nats.Name("okrboard"),
		nats.Timeout(5 * time.Second),
	}, opts...)
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to nats %s: %w", url, err)
	}
	return nc, nil
}

// NATSPublisher publishes an empty message on a subject for each change.
type NATSPublisher struct {
	nc      *nats.Conn
	subject string
	logger  *slog.Logger
}

var _ okr.Notifier = (*NATSPublisher)(nil)

// NewNATSPublisher publishes on subject, or DefaultSubject when empty.
func NewNATSPublisher(nc *nats.Conn, subject string, logger *slog.Logger) *NATSPublisher {
	if subject == "" {
		subject = DefaultSubject
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &NATSPublisher{nc: nc, subject: subject, logger: logger}
}

// Subject returns the subject published on.
func (p *NATSPublisher) Subject() string {
	return p.subject
}

// Notify implements okr.Notifier. Publish failures are logged, not returned:
// the mutation has already been persisted.
func (p *NATSPublisher) Notify(context.Context) {
	if err := p.nc.Publish(p.subject, nil); err != nil {
		p.logger.Warn("failed to publish change", "subject", p.subject, "error", err)
	}
}

// Relay forwards change signals received on subject to target until ctx is
// done. It lets a process react to mutations made by another one.
func Relay(ctx context.Context, nc *nats.Conn, subject string, target okr.Notifier) error {
	if subject == "" {
		subject = DefaultSubject
	}
	sub, err := nc.Subscribe(subject, func(*nats.Msg) {
		target.Notify(ctx)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	if err := nc.Flush(); err != nil {
		_ = sub.Unsubscribe()
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}

	<-ctx.Done()
	return sub.Unsubscribe()
}
