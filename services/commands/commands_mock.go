package commands

import (
	"context"

	"github.com/stretchr/testify/mock"

	"jarvis/models"
)

// MockCommandsService implements services.CommandsService for testing.
type MockCommandsService struct {
	mock.Mock
}

func (m *MockCommandsService) ProcessCommand(ctx context.Context, command models.RawCommand) (*models.ResponseEnvelope, error) {
	args := m.Called(ctx, command)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ResponseEnvelope), args.Error(1)
}
