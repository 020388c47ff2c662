package worker

import (
	"context"

	"github.com/spec-kit/modular-api/internal/service"
)

// StartAuditWorker registers audit handlers on the dispatcher and forwards
// events to the sinks in the background until ctx is cancelled.
func StartAuditWorker(ctx context.Context, auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
	go auditService.Run(ctx)
}
