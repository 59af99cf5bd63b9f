package models

import (
	"encoding/json"
	"time"
)

// AuditLog maps to the audit_logs table.
type AuditLog struct {
	AuditID    string          `json:"auditID"`
	ActorID    string          `json:"actorID"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityID"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}
