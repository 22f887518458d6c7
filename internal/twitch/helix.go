package twitch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ErrHelix is returned for non-2xx Helix responses
var ErrHelix = errors.New("helix request failed")

// HelixConfig holds app credentials for the Helix API
type HelixConfig struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	TokenURL     string
	Timeout      time.Duration
}

// Stream is one entry of the Helix streams listing
type Stream struct {
	ID        string    `json:"id"`
	UserLogin string    `json:"user_login"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	StartedAt time.Time `json:"started_at"`
}

// HelixClient calls Helix with an app access token from the client credentials grant.
// The token is fetched on first use and refreshed when it expires.
type HelixClient struct {
	baseURL  string
	clientID string
	http     *http.Client
}

// NewHelixClient creates a client. ctx bounds token refreshes for the client's lifetime.
func NewHelixClient(ctx context.Context, cfg HelixConfig) *HelixClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}

	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: timeout})
	client := cc.Client(ctx)
	client.Timeout = timeout

	return &HelixClient{
		baseURL:  cfg.BaseURL,
		clientID: cfg.ClientID,
		http:     client,
	}
}

// GetStreams lists the live streams of login. An empty result means offline.
func (c *HelixClient) GetStreams(ctx context.Context, login string) ([]Stream, error) {
	if login == "" {
		return nil, fmt.Errorf("%w: login is empty", ErrHelix)
	}

	q := url.Values{}
	q.Set(QueryUserLogin, login)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+PathStreams+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(HeaderClientID, c.clientID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get streams: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: %s: %s", ErrHelix, resp.Status, string(b))
	}

	var body struct {
		Data []Stream `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode streams: %w", err)
	}
	return body.Data, nil
}
