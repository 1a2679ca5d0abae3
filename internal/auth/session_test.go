package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signInStub(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSession_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("successful exchange authenticates the session", func(t *testing.T) {
		srv := signInStub(t, http.StatusOK,
			`{"idToken":"tok-1","localId":"uid-1","email":"admin@mauro-rocha.com.br"}`)

		s := NewSession("web-key", nil)
		s.Endpoint = srv.URL

		require.True(t, s.Login(ctx, "admin@mauro-rocha.com.br", "secret"))
		assert.True(t, s.Authenticated())
		assert.Equal(t, "uid-1", s.Current().UID)
		assert.Equal(t, "tok-1", s.IDToken())
	})

	t.Run("rejected credentials collapse to false", func(t *testing.T) {
		srv := signInStub(t, http.StatusBadRequest, `{"error":{"message":"INVALID_PASSWORD"}}`)

		s := NewSession("web-key", nil)
		s.Endpoint = srv.URL

		assert.False(t, s.Login(ctx, "admin@example.com", "wrong"))
		assert.False(t, s.Authenticated())
	})

	t.Run("missing backend collapses to false", func(t *testing.T) {
		s := NewSession("", nil)
		assert.False(t, s.Login(ctx, "a@b.c", "pw"))
	})

	t.Run("network failure collapses to false", func(t *testing.T) {
		srv := signInStub(t, http.StatusOK, `{}`)
		srv.Close()

		s := NewSession("web-key", nil)
		s.Endpoint = srv.URL

		assert.False(t, s.Login(ctx, "a@b.c", "pw"))
	})

	t.Run("response without a token collapses to false", func(t *testing.T) {
		srv := signInStub(t, http.StatusOK, `{"localId":"uid-1"}`)

		s := NewSession("web-key", nil)
		s.Endpoint = srv.URL

		assert.False(t, s.Login(ctx, "a@b.c", "pw"))
	})
}

func TestSession_Initialize(t *testing.T) {
	t.Run("idempotent", func(t *testing.T) {
		s := NewSession("web-key", nil)
		assert.True(t, s.Initialize())
		assert.True(t, s.Initialize())
	})

	t.Run("reports missing configuration", func(t *testing.T) {
		s := NewSession("", nil)
		assert.False(t, s.Initialize())
	})
}

func TestSession_Watch(t *testing.T) {
	srv := signInStub(t, http.StatusOK,
		`{"idToken":"tok-1","localId":"uid-1","email":"admin@x.dev"}`)

	s := NewSession("web-key", nil)
	s.Endpoint = srv.URL

	ch, cancel := s.Watch()
	defer cancel()

	require.True(t, s.Login(context.Background(), "admin@x.dev", "pw"))

	select {
	case u := <-ch:
		require.NotNil(t, u)
		assert.Equal(t, "uid-1", u.UID)
	case <-time.After(time.Second):
		t.Fatal("no session event after login")
	}

	s.Logout(context.Background())

	select {
	case u := <-ch:
		assert.Nil(t, u)
	case <-time.After(time.Second):
		t.Fatal("no session event after logout")
	}
}

func TestSession_Logout(t *testing.T) {
	srv := signInStub(t, http.StatusOK,
		`{"idToken":"tok-1","localId":"uid-1","email":"a@b.c"}`)

	s := NewSession("web-key", nil)
	s.Endpoint = srv.URL

	require.True(t, s.Login(context.Background(), "a@b.c", "pw"))
	s.Logout(context.Background())

	assert.False(t, s.Authenticated())
	assert.Nil(t, s.Current())
	assert.Empty(t, s.IDToken())
}
