package auditdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository is the persistence interface for the audit trail.
type Repository interface {
	Insert(ctx context.Context, db bun.IDB, entry *AuditLogEntry) error
	// List returns entries newest first.
	List(ctx context.Context, db bun.IDB) ([]AuditLogEntry, error)
}
