package loots

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/osse101/FerretBot_Go/internal/metrics"
)

// Fetcher performs the authenticated tips request
type Fetcher struct {
	baseURL string
	client  *http.Client
}

// NewFetcher creates a Fetcher for the site at baseURL
func NewFetcher(baseURL string, client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &Fetcher{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// FetchOnce issues one tips request and returns the raw body.
// A login redirect, 401/403 or HTML login page yields ErrSessionExpired.
func (f *Fetcher) FetchOnce(ctx context.Context, session SessionState) ([]byte, error) {
	if !session.Valid() {
		return nil, fmt.Errorf("%w: no credentials", ErrSessionExpired)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+TipsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set(HeaderNonce, NonceValue)
	req.Header.Set(HeaderContentType, ContentTypeJSON)
	req.Header.Set(HeaderAccept, ContentTypeJSON)
	req.Header.Set(HeaderAccessToken, session.AccessToken)
	req.Header.Set(HeaderClientKey, session.APIKey)
	req.Header.Set(HeaderReferer, f.baseURL+TipsReferer)
	req.Header.Set(HeaderAcceptLanguage, AcceptLanguageValue)
	req.Header.Set(HeaderCookie, session.CookieHeader())

	start := time.Now()
	resp, err := f.client.Do(req)
	metrics.LootsPollDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.Request != nil && strings.Contains(resp.Request.URL.Path, LoginPageMark) {
		return nil, fmt.Errorf("%w: redirected to %s", ErrSessionExpired, resp.Request.URL.Path)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w: status %d", ErrSessionExpired, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrFetch, err)
	}

	if isLoginPage(resp.Header.Get(HeaderContentType), body) {
		return nil, fmt.Errorf("%w: login page returned", ErrSessionExpired)
	}
	return body, nil
}

func isLoginPage(contentType string, body []byte) bool {
	if strings.Contains(contentType, ContentTypeHTML) {
		return true
	}
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && trimmed[0] == '<' && bytes.Contains(trimmed, []byte(LoginPageMark))
}
