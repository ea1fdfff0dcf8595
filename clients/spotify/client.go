package spotify

import (
	"context"
	"encoding/base64"
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
	accountsBaseURL = "https://accounts.spotify.com"
	apiBaseURL      = "https://api.spotify.com/v1"

	searchLimit = 5
)

// SpotifyClient implements the clients.PlaybackClient interface against the
// Spotify Web API. It holds a refresh token obtained out of band and keeps a
// short-lived access token that is refreshed on demand.
type SpotifyClient struct {
	httpClient   *http.Client
	clientID     string
	clientSecret string
	refreshToken string
	accountsURL  string
	apiURL       string

	mutex       sync.Mutex
	accessToken string
	expiresAt   time.Time
}

func NewSpotifyClient(clientID, clientSecret, refreshToken string) *SpotifyClient {
	return &SpotifyClient{
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		clientID:     clientID,
		clientSecret: clientSecret,
		refreshToken: refreshToken,
		accountsURL:  accountsBaseURL,
		apiURL:       apiBaseURL,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// ensureAccessToken refreshes the cached bearer token when missing or about
// to expire.
func (c *SpotifyClient) ensureAccessToken(ctx context.Context) (string, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.accessToken != "" && time.Until(c.expiresAt) > time.Minute {
		return c.accessToken, nil
	}

	if c.refreshToken == "" {
		return "", fmt.Errorf("spotify refresh token is not configured")
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", c.refreshToken)

	req, err := http.NewRequestWithContext(
		ctx,
		"POST",
		c.accountsURL+"/api/token",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}

	basic := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
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

	var tokenResp tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("missing access token in response")
	}

	c.accessToken = tokenResp.AccessToken
	c.expiresAt = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	log.Printf("✅ Spotify access token refreshed, valid until %s", c.expiresAt.Format(time.RFC3339))
	return c.accessToken, nil
}

type searchResponse struct {
	Tracks struct {
		Items []struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			URI     string `json:"uri"`
			Artists []struct {
				Name string `json:"name"`
			} `json:"artists"`
			Album struct {
				Name string `json:"name"`
			} `json:"album"`
			DurationMS int `json:"duration_ms"`
		} `json:"items"`
	} `json:"tracks"`
}

// Search looks up tracks matching the query.
func (c *SpotifyClient) Search(ctx context.Context, query string) ([]clients.Track, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", fmt.Sprintf("%d", searchLimit))

	var parsed searchResponse
	if err := c.doAPI(ctx, "GET", "/search?"+params.Encode(), nil, &parsed); err != nil {
		return nil, fmt.Errorf("spotify search failed: %w", err)
	}

	tracks := make([]clients.Track, 0, len(parsed.Tracks.Items))
	for _, item := range parsed.Tracks.Items {
		artists := make([]string, 0, len(item.Artists))
		for _, a := range item.Artists {
			artists = append(artists, a.Name)
		}
		tracks = append(tracks, clients.Track{
			ID:         item.ID,
			Name:       item.Name,
			URI:        item.URI,
			Artists:    strings.Join(artists, ", "),
			Album:      item.Album.Name,
			DurationMS: item.DurationMS,
		})
	}

	log.Printf("📋 Spotify search for %q returned %d tracks", query, len(tracks))
	return tracks, nil
}

// Play starts playback of the given track URI on the active device.
func (c *SpotifyClient) Play(ctx context.Context, uri string) error {
	var body any
	if uri != "" {
		body = map[string]any{"uris": []string{uri}}
	} else {
		body = map[string]any{}
	}

	if err := c.doAPI(ctx, "PUT", "/me/player/play", body, nil); err != nil {
		return fmt.Errorf("spotify play failed: %w", err)
	}
	return nil
}

type currentlyPlayingResponse struct {
	IsPlaying  bool `json:"is_playing"`
	ProgressMS int  `json:"progress_ms"`
	Item       *struct {
		Name    string `json:"name"`
		Artists []struct {
			Name string `json:"name"`
		} `json:"artists"`
		Album struct {
			Name string `json:"name"`
		} `json:"album"`
		DurationMS int `json:"duration_ms"`
	} `json:"item"`
}

// GetCurrentlyPlaying reports the active playback state.
func (c *SpotifyClient) GetCurrentlyPlaying(ctx context.Context) (*clients.PlaybackStatus, error) {
	var parsed currentlyPlayingResponse
	if err := c.doAPI(ctx, "GET", "/me/player/currently-playing", nil, &parsed); err != nil {
		return nil, fmt.Errorf("spotify currently-playing failed: %w", err)
	}

	if parsed.Item == nil {
		return &clients.PlaybackStatus{
			IsPlaying: false,
			Message:   "Nothing is currently playing",
		}, nil
	}

	artists := make([]string, 0, len(parsed.Item.Artists))
	for _, a := range parsed.Item.Artists {
		artists = append(artists, a.Name)
	}

	return &clients.PlaybackStatus{
		IsPlaying: parsed.IsPlaying,
		Track: &clients.PlayingTrack{
			Name:       parsed.Item.Name,
			Artists:    strings.Join(artists, ", "),
			Album:      parsed.Item.Album.Name,
			DurationMS: parsed.Item.DurationMS,
			ProgressMS: parsed.ProgressMS,
		},
	}, nil
}

// Pause pauses playback on the active device.
func (c *SpotifyClient) Pause(ctx context.Context) error {
	if err := c.doAPI(ctx, "PUT", "/me/player/pause", map[string]any{}, nil); err != nil {
		return fmt.Errorf("spotify pause failed: %w", err)
	}
	return nil
}

// Next skips to the next track.
func (c *SpotifyClient) Next(ctx context.Context) error {
	if err := c.doAPI(ctx, "POST", "/me/player/next", map[string]any{}, nil); err != nil {
		return fmt.Errorf("spotify next failed: %w", err)
	}
	return nil
}

// Previous goes back to the previous track.
func (c *SpotifyClient) Previous(ctx context.Context) error {
	if err := c.doAPI(ctx, "POST", "/me/player/previous", map[string]any{}, nil); err != nil {
		return fmt.Errorf("spotify previous failed: %w", err)
	}
	return nil
}

func (c *SpotifyClient) doAPI(ctx context.Context, method, path string, body, target any) error {
	token, err := c.ensureAccessToken(ctx)
	if err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = strings.NewReader(string(jsonBody))
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d, body: %s", resp.StatusCode, string(respBody))
	}

	// 204 responses carry no body (playback control endpoints).
	if target == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
