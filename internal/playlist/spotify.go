package playlist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/miloshomes9-hub/masti-chat/pkg/logging"
)

const (
	defaultAccountsURL = "https://accounts.spotify.com"
	defaultAPIURL      = "https://api.spotify.com"
)

// SpotifyConfig controls the Spotify export client. ClientID, ClientSecret,
// RefreshToken and UserID must all be set for the client to be usable.
type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	UserID       string
	AccountsURL  string
	APIURL       string
	HTTPClient   *http.Client
	Logger       *logging.Logger
}

// SpotifyClient exports curated playlists to a Spotify account using the
// refresh-token grant. It only ever creates private playlists.
type SpotifyClient struct {
	clientID     string
	clientSecret string
	refreshToken string
	userID       string
	accountsURL  string
	apiURL       string
	httpClient   *http.Client
	logger       *logging.Logger
}

// NewSpotifyClient creates a Spotify client, or nil when credentials are
// incomplete. A nil *SpotifyClient disables the export step.
func NewSpotifyClient(cfg SpotifyConfig) *SpotifyClient {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RefreshToken == "" || cfg.UserID == "" {
		return nil
	}
	accountsURL := strings.TrimRight(cfg.AccountsURL, "/")
	if accountsURL == "" {
		accountsURL = defaultAccountsURL
	}
	apiURL := strings.TrimRight(cfg.APIURL, "/")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &SpotifyClient{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		refreshToken: cfg.RefreshToken,
		userID:       cfg.UserID,
		accountsURL:  accountsURL,
		apiURL:       apiURL,
		httpClient:   httpClient,
		logger:       logger,
	}
}

// SpotifyPlaylist identifies a playlist created by Export.
type SpotifyPlaylist struct {
	ID  string
	URL string
}

// Export creates a private playlist named name, finds the best track URI for
// each curated track, and adds the found ones. Tracks with no search hit are
// skipped, not errors.
func (c *SpotifyClient) Export(ctx context.Context, name, description string, tracks []Track) (*SpotifyPlaylist, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	created, err := c.createPlaylist(ctx, token, name, description)
	if err != nil {
		return nil, err
	}

	uris := c.searchTrackURIs(ctx, token, tracks)
	if len(uris) > 0 {
		if err := c.addTracks(ctx, token, created.ID, uris); err != nil {
			return nil, err
		}
	}
	return created, nil
}

func (c *SpotifyClient) accessToken(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {c.refreshToken},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.accountsURL+"/api/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("spotify: build token request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("spotify: token response had no access_token")
	}
	return out.AccessToken, nil
}

func (c *SpotifyClient) createPlaylist(ctx context.Context, token, name, description string) (*SpotifyPlaylist, error) {
	payload, err := json.Marshal(map[string]any{
		"name":        name,
		"description": description,
		"public":      false,
	})
	if err != nil {
		return nil, fmt.Errorf("spotify: encode playlist payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/users/%s/playlists", c.apiURL, url.PathEscape(c.userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("spotify: build playlist request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	var out struct {
		ID           string `json:"id"`
		ExternalURLs struct {
			Spotify string `json:"spotify"`
		} `json:"external_urls"`
	}
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &SpotifyPlaylist{ID: out.ID, URL: out.ExternalURLs.Spotify}, nil
}

// searchTrackURIs looks up each track and returns the URIs of the first hits.
// Individual search failures are logged and skipped so one odd title cannot
// sink the whole export.
func (c *SpotifyClient) searchTrackURIs(ctx context.Context, token string, tracks []Track) []string {
	var uris []string
	for _, t := range tracks {
		q := url.QueryEscape(t.Title + " " + t.Artist)
		endpoint := fmt.Sprintf("%s/v1/search?type=track&limit=1&q=%s", c.apiURL, q)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			continue
		}
		req.Header.Set("Authorization", "Bearer "+token)

		var out struct {
			Tracks struct {
				Items []struct {
					URI string `json:"uri"`
				} `json:"items"`
			} `json:"tracks"`
		}
		if err := c.do(req, &out); err != nil {
			c.logger.Warn("spotify: track search failed", "title", t.Title, "artist", t.Artist, "error", err)
			continue
		}
		if len(out.Tracks.Items) > 0 && out.Tracks.Items[0].URI != "" {
			uris = append(uris, out.Tracks.Items[0].URI)
		}
	}
	return uris
}

func (c *SpotifyClient) addTracks(ctx context.Context, token, playlistID string, uris []string) error {
	payload, err := json.Marshal(map[string]any{"uris": uris})
	if err != nil {
		return fmt.Errorf("spotify: encode tracks payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/playlists/%s/tracks", c.apiURL, url.PathEscape(playlistID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("spotify: build add-tracks request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, nil)
}

func (c *SpotifyClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("spotify: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("spotify: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("spotify: %s %s: status %d: %s", req.Method, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("spotify: decode response: %w", err)
	}
	return nil
}
