package history

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"jarvis/models"
)

// MockHistoryService implements services.CommandHistoryService for testing.
type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) RecordCommand(ctx context.Context, record *models.CommandRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockHistoryService) ListRecentCommands(ctx context.Context, limit int) ([]models.CommandRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CommandRecord), args.Error(1)
}

func (m *MockHistoryService) GetCommandByID(ctx context.Context, id string) (mo.Option[models.CommandRecord], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(mo.Option[models.CommandRecord]), args.Error(1)
}
