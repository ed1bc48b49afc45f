// Package schema declares the column whitelist of every table reachable
// through the store.
package schema

import "github.com/salonhub/salon-api/internal/store"

var (
	Appointments = store.NewTable("appointments",
		"id", "service", "date", "time", "name", "phone", "client_id", "status", "created_at",
	)

	Clients = store.NewTable("clients",
		"id", "name", "phone", "email", "created_at", "last_visit", "total_visits",
	)

	Services = store.NewTable("services",
		"id", "name", "description", "price", "duration",
	)

	AuditLogs = store.NewTable("audit_logs",
		"id", "action", "entity", "entity_id", "metadata", "created_at",
	)
)
