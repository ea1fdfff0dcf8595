package clients

import "time"

// SearchResult is a single web search hit.
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// QuickAnswer is the condensed answer for a search query, with the full
// result list attached.
type QuickAnswer struct {
	Answer     string         `json:"answer"`
	Source     string         `json:"source,omitempty"`
	AllResults []SearchResult `json:"allResults"`
}

// Email is a single mailbox entry with the headers the assistant surfaces.
type Email struct {
	ID       string `json:"id"`
	ThreadID string `json:"threadId,omitempty"`
	From     string `json:"from"`
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Date     string `json:"date"`
	Snippet  string `json:"snippet"`
	Unread   bool   `json:"unread"`
}

// EmailList is the result of listing recent mailbox entries.
type EmailList struct {
	Count  int     `json:"count"`
	Emails []Email `json:"emails"`
}

// Track is a playable track returned by a playback search.
type Track struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	URI        string `json:"uri"`
	Artists    string `json:"artists"`
	Album      string `json:"album"`
	DurationMS int    `json:"duration"`
}

// PlayingTrack describes the track currently playing, if any.
type PlayingTrack struct {
	Name       string `json:"name"`
	Artists    string `json:"artists"`
	Album      string `json:"album"`
	DurationMS int    `json:"duration"`
	ProgressMS int    `json:"progress"`
}

// PlaybackStatus reports whether playback is active and what is playing.
type PlaybackStatus struct {
	IsPlaying bool          `json:"isPlaying"`
	Track     *PlayingTrack `json:"track,omitempty"`
	Message   string        `json:"message,omitempty"`
}

// PlayResult confirms a started playback.
type PlayResult struct {
	Message string `json:"message"`
	Track   *Track `json:"track,omitempty"`
}

// LaunchResult confirms a local application launch.
type LaunchResult struct {
	Message string `json:"message"`
	App     string `json:"app"`
}

// Transaction is a single scraped expense-tracker transaction.
type Transaction struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
}

// ExpenseData is the scraped state of the expense tracker.
type ExpenseData struct {
	Balance      string        `json:"balance"`
	Income       string        `json:"income"`
	Expenses     string        `json:"expenses"`
	Transactions []Transaction `json:"transactions"`
}

// ExpenseReport wraps scraped expense data with the scrape timestamp.
type ExpenseReport struct {
	Data      ExpenseData `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// ChatReply is the payload produced for conversational commands.
type ChatReply struct {
	Response string `json:"response"`
}
