package auditservice

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	auditdb "github.com/exhuma/powonline-sub000/app/modules/audit/infrastructure/repositories"
	authservice "github.com/exhuma/powonline-sub000/app/modules/auth/application"
	"github.com/exhuma/powonline-sub000/internal/apperrors"
	"github.com/exhuma/powonline-sub000/internal/observability"
)

const module = "audit"

// Recorder is the write half of the audit trail. It takes the caller's
// bun.IDB so an entry lands in the same transaction as the change it
// documents.
type Recorder interface {
	Record(ctx context.Context, db bun.IDB, username string, entryType auditdb.EntryType, message string) error
}

// Service is the audit trail surface.
type Service interface {
	Recorder
	ListAuditLog(ctx context.Context, caller authservice.Caller) ([]auditdb.AuditLogEntry, error)
}

// AuditService implements Service.
type AuditService struct {
	db   *bun.DB
	repo auditdb.Repository
	obs  observability.Observer
	now  func() time.Time
}

var _ Service = (*AuditService)(nil)

func NewAuditService(db *bun.DB, repo auditdb.Repository, obs observability.Observer) *AuditService {
	return &AuditService{db: db, repo: repo, obs: obs, now: time.Now}
}

func (s *AuditService) Record(ctx context.Context, db bun.IDB, username string, entryType auditdb.EntryType, message string) error {
	if message == "" {
		return apperrors.NewValidation("audit message must not be empty")
	}
	if db == nil {
		db = s.db
	}
	return s.repo.Insert(ctx, db, &auditdb.AuditLogEntry{
		Timestamp: s.now(),
		Username:  username,
		Type:      entryType,
		Message:   message,
	})
}

func (s *AuditService) ListAuditLog(ctx context.Context, caller authservice.Caller) ([]auditdb.AuditLogEntry, error) {
	return observability.Observe(ctx, s.obs, module, "ListAuditLog", func(ctx context.Context) ([]auditdb.AuditLogEntry, error) {
		if err := authservice.RequirePermission(caller, authservice.PermViewAuditLog); err != nil {
			return nil, err
		}
		return s.repo.List(ctx, s.db)
	})
}
