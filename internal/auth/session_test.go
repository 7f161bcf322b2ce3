// internal/auth/session_test.go
package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	m := NewSessionManager([]byte("test-secret"))

	token, err := m.Issue(&User{UserID: "adm", IsAdmin: true})
	require.NoError(t, err)

	sess, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "adm", sess.UserID)
	assert.True(t, sess.IsAdmin)
}

func TestSessionRejectsWrongSecret(t *testing.T) {
	token, err := NewSessionManager([]byte("secret-a")).Issue(&User{UserID: "adm"})
	require.NoError(t, err)

	_, err = NewSessionManager([]byte("secret-b")).Verify(token)
	assert.Error(t, err)
}

func TestSessionRejectsGarbage(t *testing.T) {
	m := NewSessionManager([]byte("test-secret"))
	_, err := m.Verify("not-a-token")
	assert.Error(t, err)
}

func TestRequireUserAndAdmin(t *testing.T) {
	m := NewSessionManager([]byte("test-secret"))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := SessionFrom(r.Context())
		require.True(t, ok)
		w.Write([]byte(sess.UserID))
	})

	adminToken, err := m.Issue(&User{UserID: "adm", IsAdmin: true})
	require.NoError(t, err)
	userToken, err := m.Issue(&User{UserID: "user", IsAdmin: false})
	require.NoError(t, err)

	tests := []struct {
		name       string
		handler    http.Handler
		token      string
		wantStatus int
	}{
		{"no session rejected", m.RequireUser(next), "", http.StatusUnauthorized},
		{"user session accepted", m.RequireUser(next), userToken, http.StatusOK},
		{"user session not admin", m.RequireAdmin(next), userToken, http.StatusForbidden},
		{"admin session accepted", m.RequireAdmin(next), adminToken, http.StatusOK},
		{"no session not admin", m.RequireAdmin(next), "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.token != "" {
				req.AddCookie(&http.Cookie{Name: CookieName, Value: tt.token})
			}
			rec := httptest.NewRecorder()
			tt.handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestBearerTokenAccepted(t *testing.T) {
	m := NewSessionManager([]byte("test-secret"))

	token, err := m.Issue(&User{UserID: "adm", IsAdmin: true})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	m.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
