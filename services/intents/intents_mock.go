package intents

import (
	"context"

	"github.com/stretchr/testify/mock"

	"jarvis/models"
)

// MockIntentsService implements services.IntentsService for testing.
type MockIntentsService struct {
	mock.Mock
}

func (m *MockIntentsService) Resolve(ctx context.Context, text string) *models.Intent {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.Intent)
}
