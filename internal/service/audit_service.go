package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/modular-api/internal/events"
)

const (
	defaultAuditQueueSize   = 256
	defaultAuditSinkTimeout = 500 * time.Millisecond
)

// AuditService records authentication events in the log and forwards them to
// sinks. Forwarding happens on the goroutine running Run, never on the
// publisher's.
type AuditService struct {
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	sinks       []events.EventHandler
	queue       chan events.Event
	sinkTimeout time.Duration
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, sinks ...events.EventHandler) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		dispatcher:  dispatcher,
		logger:      logger,
		sinks:       sinks,
		queue:       make(chan events.Event, defaultAuditQueueSize),
		sinkTimeout: defaultAuditSinkTimeout,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range events.AuthEventTypes {
		a.dispatcher.Subscribe(eventType, a.handle)
	}
}

// Run forwards queued events to the sinks until ctx is done.
func (a *AuditService) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-a.queue:
			a.forward(ctx, event)
		}
	}
}

func (a *AuditService) handle(_ context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("user_id", event.UserID),
	}
	if event.Type == events.EventLoginFailed {
		a.logger.Warn("auth event", fields...)
	} else {
		a.logger.Info("auth event", fields...)
	}

	if len(a.sinks) == 0 {
		return nil
	}
	select {
	case a.queue <- event:
	default:
		a.logger.Warn("audit queue full, event dropped", zap.String("event_id", event.ID))
	}
	return nil
}

func (a *AuditService) forward(ctx context.Context, event events.Event) {
	for _, sink := range a.sinks {
		sinkCtx, cancel := context.WithTimeout(ctx, a.sinkTimeout)
		err := sink(sinkCtx, event)
		cancel()
		if err != nil {
			a.logger.Warn("audit sink failed", zap.String("event_id", event.ID), zap.Error(err))
		}
	}
}
