package clients

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGenerativeClient is a mock implementation of the GenerativeClient interface
type MockGenerativeClient struct {
	mock.Mock
}

func (m *MockGenerativeClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockSearchClient is a mock implementation of the SearchClient interface
type MockSearchClient struct {
	mock.Mock
}

func (m *MockSearchClient) QuickAnswer(ctx context.Context, query string) (*QuickAnswer, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*QuickAnswer), args.Error(1)
}

// MockMailboxClient is a mock implementation of the MailboxClient interface
type MockMailboxClient struct {
	mock.Mock
}

func (m *MockMailboxClient) ListRecent(ctx context.Context, count int) (*EmailList, error) {
	args := m.Called(ctx, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*EmailList), args.Error(1)
}

// MockPlaybackClient is a mock implementation of the PlaybackClient interface
type MockPlaybackClient struct {
	mock.Mock
}

func (m *MockPlaybackClient) Search(ctx context.Context, query string) ([]Track, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Track), args.Error(1)
}

func (m *MockPlaybackClient) Play(ctx context.Context, uri string) error {
	args := m.Called(ctx, uri)
	return args.Error(0)
}

func (m *MockPlaybackClient) GetCurrentlyPlaying(ctx context.Context) (*PlaybackStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PlaybackStatus), args.Error(1)
}

func (m *MockPlaybackClient) Pause(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlaybackClient) Next(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlaybackClient) Previous(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockLauncherClient is a mock implementation of the LauncherClient interface
type MockLauncherClient struct {
	mock.Mock
}

func (m *MockLauncherClient) OpenApp(ctx context.Context, name string) (*LaunchResult, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*LaunchResult), args.Error(1)
}

func (m *MockLauncherClient) AvailableApps() []string {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

// MockScraperClient is a mock implementation of the ScraperClient interface
type MockScraperClient struct {
	mock.Mock
}

func (m *MockScraperClient) ScrapeExpenseTracker(ctx context.Context, url string) (*ExpenseReport, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ExpenseReport), args.Error(1)
}

// MockMessageSender is a mock implementation of the MessageSender interface
type MockMessageSender struct {
	mock.Mock
}

func (m *MockMessageSender) SendMessage(clientID string, msg any) error {
	args := m.Called(clientID, msg)
	return args.Error(0)
}
