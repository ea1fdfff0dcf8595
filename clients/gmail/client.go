package gmail

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"jarvis/clients"
)

const (
	tokenEndpoint = "https://oauth2.googleapis.com/token"
	gmailBaseURL  = "https://gmail.googleapis.com/gmail/v1"
)

// GmailClient implements the clients.MailboxClient interface against the
// Gmail REST API using an offline refresh token.
type GmailClient struct {
	httpClient   *http.Client
	clientID     string
	clientSecret string
	refreshToken string
	tokenURL     string
	apiURL       string

	mutex       sync.Mutex
	accessToken string
	expiresAt   time.Time
}

func NewGmailClient(clientID, clientSecret, refreshToken string) *GmailClient {
	return &GmailClient{
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		clientID:     clientID,
		clientSecret: clientSecret,
		refreshToken: refreshToken,
		tokenURL:     tokenEndpoint,
		apiURL:       gmailBaseURL,
	}
}

func (c *GmailClient) ensureAccessToken(ctx context.Context) (string, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.accessToken != "" && time.Until(c.expiresAt) > time.Minute {
		return c.accessToken, nil
	}

	if c.refreshToken == "" {
		return "", fmt.Errorf("gmail refresh token is not configured")
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", c.refreshToken)
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, "POST", c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token refresh failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("missing access token in response")
	}

	c.accessToken = tokenResp.AccessToken
	c.expiresAt = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	return c.accessToken, nil
}

type messageListResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

type messageResponse struct {
	ID       string   `json:"id"`
	ThreadID string   `json:"threadId"`
	Snippet  string   `json:"snippet"`
	LabelIDs []string `json:"labelIds"`
	Payload  struct {
		Headers []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"headers"`
	} `json:"payload"`
}

// ListRecent fetches the newest inbox messages with their header metadata.
func (c *GmailClient) ListRecent(ctx context.Context, count int) (*clients.EmailList, error) {
	params := url.Values{}
	params.Set("maxResults", fmt.Sprintf("%d", count))
	params.Set("q", "in:inbox")

	var list messageListResponse
	if err := c.getJSON(ctx, "/users/me/messages?"+params.Encode(), &list); err != nil {
		return nil, fmt.Errorf("gmail list failed: %w", err)
	}

	emails := make([]clients.Email, 0, len(list.Messages))
	for _, msg := range list.Messages {
		email, err := c.getEmail(ctx, msg.ID)
		if err != nil {
			// One unreadable message should not fail the whole listing.
			log.Printf("⚠️ Failed to fetch email %s: %v", msg.ID, err)
			continue
		}
		emails = append(emails, *email)
	}

	log.Printf("📋 Listed %d recent emails", len(emails))
	return &clients.EmailList{Count: len(emails), Emails: emails}, nil
}

func (c *GmailClient) getEmail(ctx context.Context, id string) (*clients.Email, error) {
	params := url.Values{}
	params.Set("format", "metadata")
	params.Add("metadataHeaders", "From")
	params.Add("metadataHeaders", "To")
	params.Add("metadataHeaders", "Subject")
	params.Add("metadataHeaders", "Date")

	var msg messageResponse
	if err := c.getJSON(ctx, "/users/me/messages/"+id+"?"+params.Encode(), &msg); err != nil {
		return nil, err
	}

	header := func(name string) string {
		for _, h := range msg.Payload.Headers {
			if strings.EqualFold(h.Name, name) {
				return h.Value
			}
		}
		return ""
	}

	unread := false
	for _, label := range msg.LabelIDs {
		if label == "UNREAD" {
			unread = true
			break
		}
	}

	return &clients.Email{
		ID:       msg.ID,
		ThreadID: msg.ThreadID,
		From:     header("From"),
		To:       header("To"),
		Subject:  header("Subject"),
		Date:     header("Date"),
		Snippet:  msg.Snippet,
		Unread:   unread,
	}, nil
}

func (c *GmailClient) getJSON(ctx context.Context, path string, target any) error {
	token, err := c.ensureAccessToken(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.apiURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d, body: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
