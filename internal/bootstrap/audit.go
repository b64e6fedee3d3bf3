package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger menerima event operasional penting (startup, shutdown, alarm).
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
