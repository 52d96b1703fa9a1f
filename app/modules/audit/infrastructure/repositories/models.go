package auditdb

import (
	"time"

	"github.com/uptrace/bun"
)

// EntryType classifies an audit log entry.
type EntryType string

const (
	TypeStationScore       EntryType = "station_score"
	TypeQuestionnaireScore EntryType = "questionnaire_score"
	TypeAdmin              EntryType = "admin"
)

// AuditLogEntry is one append-only record of a privileged change. Entries are
// never updated or deleted.
type AuditLogEntry struct {
	bun.BaseModel `bun:"table:audit_log,alias:al"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Timestamp time.Time `bun:"timestamp,notnull,default:current_timestamp" json:"timestamp"`
	Username  string    `bun:"username,notnull" json:"username"`
	Type      EntryType `bun:"type,notnull" json:"type"`
	Message   string    `bun:"message,notnull" json:"message"`
}
