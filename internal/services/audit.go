package services

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/baharkarakas/dormshop-backend/internal/metrics"
	"github.com/baharkarakas/dormshop-backend/internal/models"
	repo "github.com/baharkarakas/dormshop-backend/internal/repository"
	"github.com/baharkarakas/dormshop-backend/internal/worker"
)

const auditTimeout = 5 * time.Second

// Auditor writes audit events off the request path. A nil Auditor records
// nothing.
type Auditor struct {
	log repo.AuditLogs
	wp  *worker.Pool
	m   *metrics.Metrics
}

func NewAuditor(l repo.AuditLogs, wp *worker.Pool, m *metrics.Metrics) *Auditor {
	return &Auditor{log: l, wp: wp, m: m}
}

func (a *Auditor) Record(actor, entityType string, entityID int64, action string, details map[string]any) {
	a.RecordKey(actor, entityType, strconv.FormatInt(entityID, 10), action, details)
}

func (a *Auditor) RecordKey(actor, entityType, entityID, action string, details map[string]any) {
	if a == nil {
		return
	}
	entry := models.AuditLog{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Actor:      actor,
		Details:    details,
	}
	ok := a.wp.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
		defer cancel()
		if err := a.log.Create(ctx, entry); err != nil {
			a.dropped()
			slog.Warn("audit write failed", "err", err, "entity", entityType, "id", entityID, "action", action)
		}
	})
	if !ok {
		a.dropped()
		slog.Warn("audit queue full", "entity", entityType, "id", entityID, "action", action)
	}
}

func (a *Auditor) dropped() {
	if a.m != nil {
		a.m.AuditDropped.Inc()
	}
}
