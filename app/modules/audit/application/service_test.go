package auditservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	auditdb "github.com/exhuma/powonline-sub000/app/modules/audit/infrastructure/repositories"
	authservice "github.com/exhuma/powonline-sub000/app/modules/auth/application"
	"github.com/exhuma/powonline-sub000/internal/apperrors"
	"github.com/exhuma/powonline-sub000/internal/observability"
)

// FakeAuditRepository is an in-memory auditdb.Repository.
type FakeAuditRepository struct {
	Entries []auditdb.AuditLogEntry
}

func (f *FakeAuditRepository) Insert(ctx context.Context, db bun.IDB, entry *auditdb.AuditLogEntry) error {
	stored := *entry
	stored.ID = int64(len(f.Entries) + 1)
	f.Entries = append(f.Entries, stored)
	return nil
}

func (f *FakeAuditRepository) List(ctx context.Context, db bun.IDB) ([]auditdb.AuditLogEntry, error) {
	out := make([]auditdb.AuditLogEntry, 0, len(f.Entries))
	for i := len(f.Entries) - 1; i >= 0; i-- {
		out = append(out, f.Entries[i])
	}
	return out, nil
}

func newTestService() (*AuditService, *FakeAuditRepository) {
	repo := &FakeAuditRepository{}
	svc := NewAuditService(nil, repo, observability.NewNoOpObserver())
	svc.now = func() time.Time { return time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestRecord(t *testing.T) {
	svc, repo := newTestService()

	err := svc.Record(context.Background(), nil, "kim", auditdb.TypeStationScore, "score of team alpha at mid changed from 0 to 10")
	require.NoError(t, err)
	require.Len(t, repo.Entries, 1)

	entry := repo.Entries[0]
	assert.Equal(t, "kim", entry.Username)
	assert.Equal(t, auditdb.TypeStationScore, entry.Type)
	assert.Equal(t, time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC), entry.Timestamp)
}

func TestRecord_EmptyMessageRejected(t *testing.T) {
	svc, repo := newTestService()

	err := svc.Record(context.Background(), nil, "kim", auditdb.TypeAdmin, "")
	require.Error(t, err)
	var validation *apperrors.ValidationError
	assert.ErrorAs(t, err, &validation)
	assert.Empty(t, repo.Entries)
}

func TestListAuditLog(t *testing.T) {
	tests := []struct {
		name    string
		caller  authservice.Caller
		wantErr bool
	}{
		{"admin", authservice.Caller{Name: "root", Roles: []authservice.Role{authservice.RoleAdmin}}, false},
		{"staff", authservice.Caller{Name: "sam", Roles: []authservice.Role{authservice.RoleStaff}}, false},
		{"station manager denied", authservice.Caller{Name: "kim", Roles: []authservice.Role{authservice.RoleStationManager}}, true},
		{"anonymous denied", authservice.Anonymous, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService()
			require.NoError(t, svc.Record(context.Background(), nil, "root", auditdb.TypeAdmin, "user kim created"))

			entries, err := svc.ListAuditLog(context.Background(), tt.caller)
			if tt.wantErr {
				var denied *apperrors.AccessDeniedError
				require.ErrorAs(t, err, &denied)
				return
			}
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, "user kim created", entries[0].Message)
		})
	}
}
