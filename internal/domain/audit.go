package domain

import "time"

// Audit actions recorded for privileged mutations.
const (
	AuditEntryUpdated     = "entry.updated"
	AuditEntryDeleted     = "entry.deleted"
	AuditPurchaseDecision = "purchase.decision"
)

// AuditLog records a privileged mutation. Admin edits bypass flag
// recomputation, so the log is the only trace of what changed.
type AuditLog struct {
	CreatedAt    time.Time
	Detail       map[string]any
	ID           string
	ActorID      string
	Action       string
	ResourceType string
	ResourceID   string
}
