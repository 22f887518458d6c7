package loots

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionClient(site *fakeSite, password string) *SessionClient {
	return NewSessionClient(site.URL+"/", fakeEmail, password, &http.Client{Timeout: 5 * time.Second})
}

func TestSessionClient_Login(t *testing.T) {
	site := newFakeSite(t)
	client := newTestSessionClient(site, fakePassword)

	assert.False(t, client.State().Valid())

	state, err := client.Login(context.Background())
	require.NoError(t, err)
	assert.True(t, state.Valid())
	assert.Equal(t, fakeAPIKey, state.APIKey)
	assert.Equal(t, fakeToken, state.AccessToken)
	assert.Equal(t, fakeChroma, state.ChromaToken)
	assert.Equal(t, fakeCookieValue, state.Cookies[fakeCookieName])
	assert.Equal(t, state, client.State())
	assert.Equal(t, int32(1), site.logins.Load())
}

func TestSessionClient_LoginFailureKeepsPreviousState(t *testing.T) {
	site := newFakeSite(t)
	client := newTestSessionClient(site, fakePassword)

	first, err := client.Login(context.Background())
	require.NoError(t, err)

	client.password = "wrong"
	_, err = client.Login(context.Background())
	require.ErrorIs(t, err, ErrAuth)
	assert.Equal(t, first, client.State())
}

func TestSessionClient_LoginErrors(t *testing.T) {
	tests := []struct {
		name    string
		globals string
	}{
		{name: "malformed globals", globals: `{"api":`},
		{name: "blank token", globals: `{"api":{"key":"k"},"session":{"account":{"token":"","tokenChroma":"c"}}}`},
		{name: "missing chroma", globals: `{"api":{"key":"k"},"session":{"account":{"token":"t"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := newFakeSite(t)
			site.setGlobals(tt.globals)
			client := newTestSessionClient(site, fakePassword)

			_, err := client.Login(context.Background())
			assert.ErrorIs(t, err, ErrAuth)
			assert.False(t, client.State().Valid())
		})
	}
}

func TestSessionClient_LoginNetworkFailure(t *testing.T) {
	site := newFakeSite(t)
	client := newTestSessionClient(site, fakePassword)
	site.Close()

	_, err := client.Login(context.Background())
	assert.ErrorIs(t, err, ErrAuth)
}

func TestSessionClient_Invalidate(t *testing.T) {
	site := newFakeSite(t)
	client := newTestSessionClient(site, fakePassword)
	_, err := client.Login(context.Background())
	require.NoError(t, err)

	client.Invalidate()
	assert.False(t, client.State().Valid())
}

func TestExtractGlobals_RequiresSingleElement(t *testing.T) {
	_, err := extractGlobals(stringsReader(`<div data-env="a" data-globals="{}"></div><div data-env="b"></div>`))
	assert.ErrorIs(t, err, ErrAuth)

	_, err = extractGlobals(stringsReader(`<div>nothing</div>`))
	assert.ErrorIs(t, err, ErrAuth)

	got, err := extractGlobals(stringsReader(`<body><span data-env="x" data-globals='{"a":1}'></span></body>`))
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, got)
}

func TestSessionState_Valid(t *testing.T) {
	full := SessionState{Cookies: map[string]string{"a": "b"}, APIKey: "k", AccessToken: "t", ChromaToken: "c"}
	assert.True(t, full.Valid())

	noCookies := full
	noCookies.Cookies = nil
	assert.False(t, noCookies.Valid())

	blankKey := full
	blankKey.APIKey = "  "
	assert.False(t, blankKey.Valid())
}
