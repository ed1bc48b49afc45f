package audit

import (
	"context"

	"github.com/goccy/go-json"

	"github.com/salonhub/salon-api/internal/models"
	"github.com/salonhub/salon-api/internal/schema"
	"github.com/salonhub/salon-api/internal/store"
)

// Logger writes audit events into audit_logs.
type Logger struct {
	store *store.Store
}

func New(s *store.Store) *Logger {
	return &Logger{store: s}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	_, err := store.Insert[models.AuditLog](ctx, l.store, schema.AuditLogs, store.Fields{
		"action":    ev.Action,
		"entity":    ev.Entity,
		"entity_id": ev.EntityID,
		"metadata":  metaJSON,
	})
	return err
}
