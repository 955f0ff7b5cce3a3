package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"evote-service/internal/adapters/kafka"
	"evote-service/internal/models"
	"evote-service/internal/server/repository"
)

// AuditService appends audit entries and taps them onto the event stream.
// Audit failures are logged, never propagated: an audit hiccup must not fail
// the operation it describes.
type AuditService struct {
	repo      *repository.AuditRepository
	publisher kafka.Publisher
}

func NewAuditService(repo *repository.AuditRepository, publisher kafka.Publisher) *AuditService {
	return &AuditService{repo: repo, publisher: publisher}
}

// Log records an action performed by a user.
func (s *AuditService) Log(ctx context.Context, userID uint, action string, electionID, organizationID uint, details map[string]interface{}) {
	var payload string
	if details != nil {
		if raw, err := json.Marshal(details); err == nil {
			payload = string(raw)
		}
	}

	entry := &models.AuditLog{
		UserID:         userID,
		Action:         action,
		ElectionID:     electionID,
		OrganizationID: organizationID,
		Details:        payload,
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		slog.Error("Failed to append audit entry", "action", action, "error", err)
	}

	event, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := s.publisher.Publish(ctx, strconv.FormatUint(uint64(userID), 10), event); err != nil {
		slog.Error("Failed to publish audit event", "action", action, "error", err)
	}
}

// Trail returns the audit trail of an election, newest first.
func (s *AuditService) Trail(ctx context.Context, electionID uint) ([]models.AuditLog, error) {
	return s.repo.ListByElection(ctx, electionID)
}
