package history

import (
	"context"
	"fmt"

	"github.com/samber/mo"

	"jarvis/db"
	"jarvis/models"
	"jarvis/utils"
)

// HistoryService persists command records through the PostgreSQL repository.
type HistoryService struct {
	repo *db.PostgresCommandHistoryRepository
}

func NewHistoryService(repo *db.PostgresCommandHistoryRepository) *HistoryService {
	utils.AssertInvariant(repo != nil, "command history repository must not be nil")
	return &HistoryService{repo: repo}
}

func (s *HistoryService) RecordCommand(ctx context.Context, record *models.CommandRecord) error {
	if record == nil {
		return fmt.Errorf("command record must not be nil")
	}
	if err := s.repo.CreateCommandRecord(ctx, record); err != nil {
		return fmt.Errorf("failed to record command: %w", err)
	}
	return nil
}

func (s *HistoryService) ListRecentCommands(ctx context.Context, limit int) ([]models.CommandRecord, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	records, err := s.repo.ListRecentCommandRecords(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent commands: %w", err)
	}
	return records, nil
}

func (s *HistoryService) GetCommandByID(ctx context.Context, id string) (mo.Option[models.CommandRecord], error) {
	if id == "" {
		return mo.None[models.CommandRecord](), fmt.Errorf("command id must not be empty")
	}
	return s.repo.GetCommandRecordByID(ctx, id)
}
