package history

import (
	"context"

	"github.com/samber/mo"

	"jarvis/models"
)

// NoopHistoryService is used when no database is configured. Writes vanish
// and reads return empty results.
type NoopHistoryService struct{}

func NewNoopHistoryService() *NoopHistoryService {
	return &NoopHistoryService{}
}

func (s *NoopHistoryService) RecordCommand(_ context.Context, _ *models.CommandRecord) error {
	return nil
}

func (s *NoopHistoryService) ListRecentCommands(_ context.Context, _ int) ([]models.CommandRecord, error) {
	return []models.CommandRecord{}, nil
}

func (s *NoopHistoryService) GetCommandByID(_ context.Context, _ string) (mo.Option[models.CommandRecord], error) {
	return mo.None[models.CommandRecord](), nil
}
