package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/branchbooks/branch_bookkeeping_app/internal/core/domain"
	portsrepo "github.com/branchbooks/branch_bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/branchbooks/branch_bookkeeping_app/internal/core/ports/services"
)

// auditService persists before/after snapshots of entity changes. It is
// invoked post-commit; callers log failures and move on.
type auditService struct {
	BaseService
	auditRepo portsrepo.AuditLogRepositoryFacade
}

// NewAuditService creates a new audit recorder backed by the audit log repository.
func NewAuditService(auditRepo portsrepo.AuditLogRepositoryFacade) portssvc.AuditRecorder {
	return &auditService{
		auditRepo: auditRepo,
	}
}

// Ensure auditService implements the portssvc.AuditRecorder interface
var _ portssvc.AuditRecorder = (*auditService)(nil)

func (s *auditService) RecordCreate(ctx context.Context, actorID, entityType, entityID string, after any) error {
	return s.record(ctx, actorID, domain.AuditCreate, entityType, entityID, nil, after)
}

func (s *auditService) RecordUpdate(ctx context.Context, actorID, entityType, entityID string, before, after any) error {
	return s.record(ctx, actorID, domain.AuditUpdate, entityType, entityID, before, after)
}

func (s *auditService) RecordDelete(ctx context.Context, actorID, entityType, entityID string, before any) error {
	return s.record(ctx, actorID, domain.AuditDelete, entityType, entityID, before, nil)
}

func (s *auditService) record(ctx context.Context, actorID string, action domain.AuditAction, entityType, entityID string, before, after any) error {
	log := domain.AuditLog{
		AuditID:    uuid.NewString(),
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		CreatedAt:  time.Now(),
	}

	if before != nil {
		raw, err := json.Marshal(before)
		if err != nil {
			return err
		}
		log.Before = raw
	}
	if after != nil {
		raw, err := json.Marshal(after)
		if err != nil {
			return err
		}
		log.After = raw
	}

	return s.auditRepo.SaveAuditLog(ctx, log)
}
