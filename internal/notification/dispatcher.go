package notification

import (
	"context"

	"leavehub/internal/events"

	"go.uber.org/zap"
)

// Dispatcher fans a lifecycle event out to the people who should hear about
// it: the employee, the approver, and the request's notify_users set. Actual
// delivery (email, chat) is owned by downstream channels.
//go:generate mockgen -source=dispatcher.go -destination=mock/dispatcher_mock.go -package=mock
type Dispatcher interface {
	Dispatch(ctx context.Context, event events.LeaveLifecycleEvent) error
}

type logDispatcher struct {
	logger *zap.Logger
}

func NewLogDispatcher(logger ...*zap.Logger) Dispatcher {
	l := zap.L().Named("notification.dispatcher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.dispatcher")
	}
	return &logDispatcher{logger: l}
}

func (d *logDispatcher) Dispatch(ctx context.Context, event events.LeaveLifecycleEvent) error {
	recipients := make([]string, 0, len(event.NotifyUsers)+2)
	recipients = append(recipients, event.EmployeeID)
	if event.ActorID != "" && event.ActorID != event.EmployeeID {
		recipients = append(recipients, event.ActorID)
	}
	recipients = append(recipients, event.NotifyUsers...)

	d.logger.Info("leave notification dispatched",
		zap.String("request_id", event.RequestID),
		zap.String("event_type", event.EventType),
		zap.String("leave_id", event.LeaveID),
		zap.String("request_number", event.RequestNumber),
		zap.String("organization_id", event.OrganizationID),
		zap.Strings("recipients", recipients),
	)
	return nil
}
