package loots

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

const (
	fakeEmail       = "bot@example.com"
	fakePassword    = "hunter2"
	fakeCookieName  = "loots_session"
	fakeCookieValue = "c00kie"
	fakeAPIKey      = "client-key"
	fakeToken       = "access-token"
	fakeChroma      = "chroma-token"
)

// fakeSite imitates the three Loots endpoints the pipeline talks to
type fakeSite struct {
	*httptest.Server

	logins     atomic.Int32
	tipFetches atomic.Int32
	expired    atomic.Bool

	mu          sync.Mutex
	globals     string
	tipsBody    string
	tipsStatus  int
	lastHeaders http.Header
}

func newFakeSite(t *testing.T) *fakeSite {
	t.Helper()
	site := &fakeSite{
		globals:    fmt.Sprintf(`{"api":{"key":%q},"session":{"account":{"token":%q,"tokenChroma":%q}}}`, fakeAPIKey, fakeToken, fakeChroma),
		tipsBody:   `{"data":{"ok":[],"running":[]}}`,
		tipsStatus: http.StatusOK,
	}

	mux := http.NewServeMux()
	mux.HandleFunc(LoginPath, site.handleLogin)
	mux.HandleFunc(AccountPath, site.handleAccount)
	mux.HandleFunc(AccountReferer, site.handleLoginPage)
	mux.HandleFunc(TipsPath, site.handleTips)

	site.Server = httptest.NewServer(mux)
	t.Cleanup(site.Close)
	return site
}

func (s *fakeSite) setGlobals(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.globals = v
}

func (s *fakeSite) setTips(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tipsStatus = status
	s.tipsBody = body
}

func (s *fakeSite) headers() http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastHeaders.Clone()
}

func (s *fakeSite) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Email != fakeEmail || creds.Password != fakePassword {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	s.logins.Add(1)
	s.expired.Store(false)
	http.SetCookie(w, &http.Cookie{Name: fakeCookieName, Value: fakeCookieValue, Path: "/"})
	http.Redirect(w, r, AccountPath, http.StatusFound)
}

func (s *fakeSite) handleAccount(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(fakeCookieName); err != nil || c.Value != fakeCookieValue {
		http.Redirect(w, r, AccountReferer, http.StatusFound)
		return
	}
	s.mu.Lock()
	globals := s.globals
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<!doctype html><html><head><title>Account</title></head>
<body><div id="app" data-env="production" data-globals='%s'></div></body></html>`, globals)
}

func (s *fakeSite) handleLoginPage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `<html><body><form action="/pub/auth/login"></form></body></html>`)
}

func (s *fakeSite) handleTips(w http.ResponseWriter, r *http.Request) {
	s.tipFetches.Add(1)
	s.mu.Lock()
	s.lastHeaders = r.Header.Clone()
	status, body := s.tipsStatus, s.tipsBody
	s.mu.Unlock()

	c, err := r.Cookie(fakeCookieName)
	if s.expired.Load() || err != nil || c.Value != fakeCookieValue || r.Header.Get(HeaderAccessToken) != fakeToken {
		http.Redirect(w, r, AccountReferer, http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}
