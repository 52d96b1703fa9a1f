package auditdb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// AuditDBImpl implements Repository on bun.
type AuditDBImpl struct{}

var _ Repository = (*AuditDBImpl)(nil)

func NewAuditDBImpl() *AuditDBImpl { return &AuditDBImpl{} }

func (r *AuditDBImpl) Insert(ctx context.Context, db bun.IDB, entry *AuditLogEntry) error {
	if _, err := db.NewInsert().Model(entry).Exec(ctx); err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}
	return nil
}

func (r *AuditDBImpl) List(ctx context.Context, db bun.IDB) ([]AuditLogEntry, error) {
	var entries []AuditLogEntry
	err := db.NewSelect().
		Model(&entries).
		Order("timestamp DESC", "id DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing audit entries: %w", err)
	}
	return entries, nil
}
