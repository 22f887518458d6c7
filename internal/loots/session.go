package loots

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/publicsuffix"

	"github.com/osse101/FerretBot_Go/internal/logger"
	"github.com/osse101/FerretBot_Go/internal/metrics"
)

// SessionState is the credential set needed to poll tips.
// It is rebuilt on every login and never persisted.
type SessionState struct {
	Cookies     map[string]string
	APIKey      string
	AccessToken string
	ChromaToken string
}

// Valid reports whether every credential is present
func (s SessionState) Valid() bool {
	return len(s.Cookies) > 0 &&
		strings.TrimSpace(s.APIKey) != "" &&
		strings.TrimSpace(s.AccessToken) != "" &&
		strings.TrimSpace(s.ChromaToken) != ""
}

// CookieHeader renders the cookies as a Cookie request header value
func (s SessionState) CookieHeader() string {
	parts := make([]string, 0, len(s.Cookies))
	for name, value := range s.Cookies {
		parts = append(parts, (&http.Cookie{Name: name, Value: value}).String())
	}
	return strings.Join(parts, "; ")
}

// accountGlobals is the JSON carried by the account page's data-globals attribute
type accountGlobals struct {
	API struct {
		Key string `json:"key"`
	} `json:"api"`
	Session struct {
		Account struct {
			Token       string `json:"token"`
			TokenChroma string `json:"tokenChroma"`
		} `json:"account"`
	} `json:"session"`
}

// SessionClient owns the Loots session. Login replaces the state atomically;
// a failed login leaves the previous state untouched.
type SessionClient struct {
	baseURL  string
	email    string
	password string
	client   *http.Client

	mu    sync.RWMutex
	state SessionState
}

// NewSessionClient creates a session client for the site at baseURL
func NewSessionClient(baseURL, email, password string, client *http.Client) *SessionClient {
	if client == nil {
		client = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &SessionClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		email:    email,
		password: password,
		client:   client,
	}
}

// State returns a copy of the current session
func (c *SessionClient) State() SessionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Invalidate drops the current session so the next poll logs in again
func (c *SessionClient) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = SessionState{}
}

// Login signs in and scrapes the API credentials from the account page
func (c *SessionClient) Login(ctx context.Context) (SessionState, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgLoginStarted)

	state, err := c.login(ctx)
	if err != nil {
		metrics.LootsLoginsTotal.WithLabelValues(metrics.OutcomeFailure).Inc()
		log.Error(LogMsgLoginFailed, "error", err)
		return SessionState{}, err
	}

	c.mu.Lock()
	c.state = state
	c.mu.Unlock()

	metrics.LootsLoginsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	log.Info(LogMsgLoginSucceeded, "cookies", len(state.Cookies))
	return state, nil
}

func (c *SessionClient) login(ctx context.Context) (SessionState, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return SessionState{}, fmt.Errorf("%w: invalid base url: %v", ErrAuth, err)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return SessionState{}, fmt.Errorf("%w: %v", ErrAuth, err)
	}

	// Redirects after login only lead back to the site; the cookies we need
	// arrive on the first response.
	client := *c.client
	client.Jar = jar
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	if err := c.postCredentials(ctx, &client); err != nil {
		return SessionState{}, err
	}

	globals, err := c.fetchAccountGlobals(ctx, &client)
	if err != nil {
		return SessionState{}, err
	}

	state := SessionState{
		Cookies:     make(map[string]string),
		APIKey:      globals.API.Key,
		AccessToken: globals.Session.Account.Token,
		ChromaToken: globals.Session.Account.TokenChroma,
	}
	for _, cookie := range jar.Cookies(base) {
		state.Cookies[cookie.Name] = cookie.Value
	}

	if !state.Valid() {
		return SessionState{}, fmt.Errorf("%w: incomplete credentials (cookies=%d)", ErrAuth, len(state.Cookies))
	}
	return state, nil
}

func (c *SessionClient) postCredentials(ctx context.Context, client *http.Client) error {
	body, err := json.Marshal(map[string]string{"email": c.email, "password": c.password})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuth, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+LoginPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuth, err)
	}
	req.Header.Set(HeaderContentType, ContentTypeJSON)
	req.Header.Set(HeaderAccept, ContentTypeJSON)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: login request: %v", ErrAuth, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxResponseBytes))

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: login returned status %d", ErrAuth, resp.StatusCode)
	}
	return nil
}

func (c *SessionClient) fetchAccountGlobals(ctx context.Context, client *http.Client) (*accountGlobals, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+AccountPath, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuth, err)
	}
	req.Header.Set(HeaderReferer, c.baseURL+AccountReferer)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: account request: %v", ErrAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: account page returned status %d", ErrAuth, resp.StatusCode)
	}

	raw, err := extractGlobals(io.LimitReader(resp.Body, MaxResponseBytes))
	if err != nil {
		return nil, err
	}

	var globals accountGlobals
	if err := json.Unmarshal([]byte(raw), &globals); err != nil {
		return nil, fmt.Errorf("%w: malformed %s: %v", ErrAuth, AttrDataGlobals, err)
	}
	return &globals, nil
}

var errGlobalsNotFound = errors.New("account page has no single " + AttrDataEnv + " element")

// extractGlobals finds the only element carrying data-env and returns its
// data-globals attribute
func extractGlobals(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuth, err)
	}

	var matches []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if _, ok := attr(n, AttrDataEnv); ok {
				matches = append(matches, n)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	if len(matches) != 1 {
		return "", fmt.Errorf("%w: %v (found %d)", ErrAuth, errGlobalsNotFound, len(matches))
	}

	globals, ok := attr(matches[0], AttrDataGlobals)
	if !ok || strings.TrimSpace(globals) == "" {
		return "", fmt.Errorf("%w: missing %s", ErrAuth, AttrDataGlobals)
	}
	return globals, nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
