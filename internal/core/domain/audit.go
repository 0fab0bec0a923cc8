package domain

import "time"

// AuditEvent records a privileged mutation for the audit trail.
type AuditEvent struct {
	Actor      string
	Action     string
	Resource   string
	ResourceID string
	At         time.Time
}

const (
	ResourceUser    = "user"
	ResourceMessage = "message"
	ResourceGuard   = "guard"
)

const (
	ActionSetAdmin          = "set_admin"
	ActionUpdateMessage     = "update_message"
	ActionCreateGuard       = "create_guard"
	ActionUpdateGuard       = "update_guard"
	ActionAppendTransaction = "append_transaction"
	ActionAppendPresence    = "append_presence"
)
