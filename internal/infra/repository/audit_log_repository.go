package repository

import (
	"context"

	"github.com/salonhub/salon-api/internal/models"
	"github.com/salonhub/salon-api/internal/schema"
	"github.com/salonhub/salon-api/internal/store"
)

type AuditLogFilter struct {
	Action string
	Entity string
}

type AuditLogRepository struct {
	store *store.Store
}

func NewAuditLogRepository(s *store.Store) *AuditLogRepository {
	return &AuditLogRepository{store: s}
}

func (f AuditLogFilter) conditions() []store.Condition {
	var conds []store.Condition
	if f.Action != "" {
		conds = append(conds, store.Eq("action", f.Action))
	}
	if f.Entity != "" {
		conds = append(conds, store.Eq("entity", f.Entity))
	}
	return conds
}

func (r *AuditLogRepository) Count(ctx context.Context, f AuditLogFilter) (int64, error) {
	return r.store.Count(ctx, schema.AuditLogs, f.conditions(), nil)
}

func (r *AuditLogRepository) Find(ctx context.Context, f AuditLogFilter, limit, offset int) ([]models.AuditLog, error) {
	return store.SelectAll[models.AuditLog](ctx, r.store, schema.AuditLogs, store.Query{
		Conditions: f.conditions(),
		OrderBy:    "id desc",
		Limit:      limit,
		Offset:     offset,
	})
}
