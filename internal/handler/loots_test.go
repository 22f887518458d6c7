package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FerretBot_Go/internal/domain"
	"github.com/osse101/FerretBot_Go/internal/loots"
)

func newTestLootsHandler() (*LootsHandler, *MockCrediter, *MockUnpaidLister, *MockLinker) {
	c := &MockCrediter{}
	u := &MockUnpaidLister{}
	l := &MockLinker{}
	return NewLootsHandler(c, u, l), c, u, l
}

func TestLootsHandler_HandleCredit(t *testing.T) {
	t.Run("reports the run", func(t *testing.T) {
		h, c, _, _ := newTestLootsHandler()
		c.On("CreditUnpaid", mock.Anything).
			Return(&loots.CreditResult{Credited: 2, SkippedUnlinked: 1}, nil)

		w := httptest.NewRecorder()
		h.HandleCredit(w, httptest.NewRequest(http.MethodPost, "/api/v1/loots/credit", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"credited":2`)
		assert.Contains(t, w.Body.String(), `"skipped_unlinked":1`)
		c.AssertExpectations(t)
	})

	t.Run("partial failure is a server error", func(t *testing.T) {
		h, c, _, _ := newTestLootsHandler()
		c.On("CreditUnpaid", mock.Anything).
			Return(&loots.CreditResult{Credited: 1}, domain.ErrDatabase)

		w := httptest.NewRecorder()
		h.HandleCredit(w, httptest.NewRequest(http.MethodPost, "/api/v1/loots/credit", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestLootsHandler_HandleListUnpaid(t *testing.T) {
	received := time.Date(2024, 3, 1, 20, 15, 0, 0, time.UTC)

	t.Run("lists uncredited tips", func(t *testing.T) {
		h, _, u, _ := newTestLootsHandler()
		u.On("GetUncreditedLoots", mock.Anything).Return([]domain.Loots{
			{ID: "a1", LootsName: "Alice", Message: "hi", ReceivedAt: &received, ViewerLogin: "alice"},
		}, nil)

		w := httptest.NewRecorder()
		h.HandleListUnpaid(w, httptest.NewRequest(http.MethodGet, "/api/v1/loots/unpaid", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"a1"`)
		assert.Contains(t, w.Body.String(), `"viewer_login":"alice"`)
	})

	t.Run("none pending", func(t *testing.T) {
		h, _, u, _ := newTestLootsHandler()
		u.On("GetUncreditedLoots", mock.Anything).Return(nil, nil)

		w := httptest.NewRecorder()
		h.HandleListUnpaid(w, httptest.NewRequest(http.MethodGet, "/api/v1/loots/unpaid", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"data":[]`)
	})
}

func TestLootsHandler_HandleLink(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		body           LinkLootsRequest
		setupMock      func(*MockLinker)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			body: LinkLootsRequest{LootsName: "Alice", Login: "alice_tv"},
			setupMock: func(m *MockLinker) {
				m.On("Link", mock.Anything, "Alice", "alice_tv").Return(int64(3), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"attached":3`,
		},
		{
			name:           "Invalid login",
			body:           LinkLootsRequest{LootsName: "Alice", Login: "not a login!"},
			setupMock:      func(m *MockLinker) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid Twitch login",
		},
		{
			name:           "Missing loots name",
			body:           LinkLootsRequest{Login: "alice_tv"},
			setupMock:      func(m *MockLinker) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"loots_name":"This field is required"`,
		},
		{
			name: "Unknown viewer",
			body: LinkLootsRequest{LootsName: "Alice", Login: "ghost"},
			setupMock: func(m *MockLinker) {
				m.On("Link", mock.Anything, "Alice", "ghost").Return(int64(0), domain.ErrViewerNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgViewerNotFoundError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, _, l := newTestLootsHandler()
			tt.setupMock(l)

			w := httptest.NewRecorder()
			h.HandleLink(w, httptest.NewRequest(http.MethodPost, "/api/v1/loots/link", jsonBody(t, tt.body)))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			l.AssertExpectations(t)
		})
	}
}
