package clients

import "context"

// MessageSender defines the interface for sending messages to push-channel clients
type MessageSender interface {
	SendMessage(clientID string, msg any) error
}

// GenerativeClient defines the interface for the generative-language provider
// used for both intent classification and general conversation.
type GenerativeClient interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// SearchClient defines the interface for the web search provider.
type SearchClient interface {
	QuickAnswer(ctx context.Context, query string) (*QuickAnswer, error)
}

// MailboxClient defines the interface for the mailbox provider.
type MailboxClient interface {
	ListRecent(ctx context.Context, count int) (*EmailList, error)
}

// PlaybackClient defines the interface for the music playback provider.
type PlaybackClient interface {
	Search(ctx context.Context, query string) ([]Track, error)
	Play(ctx context.Context, uri string) error
	GetCurrentlyPlaying(ctx context.Context) (*PlaybackStatus, error)
	Pause(ctx context.Context) error
	Next(ctx context.Context) error
	Previous(ctx context.Context) error
}

// LauncherClient defines the interface for the local application launcher.
type LauncherClient interface {
	OpenApp(ctx context.Context, name string) (*LaunchResult, error)
	AvailableApps() []string
}

// ScraperClient defines the interface for the page-scraping provider.
type ScraperClient interface {
	ScrapeExpenseTracker(ctx context.Context, url string) (*ExpenseReport, error)
}
