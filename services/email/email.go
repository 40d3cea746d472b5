// Package email defines the best-effort email collaborator invoked when a
// request is created with a pre-selected workshop. Delivery itself is an
// external concern; this package only models the port.
package email

import (
	"context"

	"roadcare/models"

	"go.uber.org/zap"
)

// Sender delivers transactional emails. Implementations must never be relied
// on for correctness: callers treat failures as degraded side effects.
type Sender interface {
	SendRequestReceived(ctx context.Context, adminID string, req *models.ServiceRequest) error
}

// LogSender is the default Sender used until a delivery provider is wired in.
// It records the would-be email so the event is still observable.
type LogSender struct {
	Logger *zap.Logger
}

func (s *LogSender) SendRequestReceived(_ context.Context, adminID string, req *models.ServiceRequest) error {
	s.Logger.Info("request-received email",
		zap.String("adminId", adminID),
		zap.String("requestId", req.ID),
		zap.String("issueType", req.IssueType),
	)
	return nil
}
