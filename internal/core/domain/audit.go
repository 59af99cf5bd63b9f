package domain

import (
	"encoding/json"
	"time"
)

// AuditAction names the kind of change an audit log records.
type AuditAction string

const (
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
)

// AuditLog captures a before/after snapshot of an entity change. Written
// fire-and-forget after the owning unit of work commits.
type AuditLog struct {
	AuditID    string          `json:"auditID"` // Primary Key (UUID)
	ActorID    string          `json:"actorID"`
	Action     AuditAction     `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityID"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}
