package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauro-rocha/portfolio-backend/internal/api/http/middleware"
	"github.com/mauro-rocha/portfolio-backend/internal/auth"
	"github.com/mauro-rocha/portfolio-backend/internal/sitedata"
	"github.com/mauro-rocha/portfolio-backend/internal/store"
)

func newRouter(t *testing.T, session *auth.Session) (*gin.Engine, *sitedata.Data) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemStore()
	data := sitedata.New(st, nil, session, sitedata.Options{})
	data.Start(sitedata.StartImmediate)
	t.Cleanup(data.Stop)

	r := gin.New()
	group := r.Group("/api/v1/admin")
	group.Use(middleware.RequireSession(session))
	New(data).Register(group)
	return r, data
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdmin_RequiresSession(t *testing.T) {
	r, data := newRouter(t, auth.NewSession("", nil))

	w := do(r, http.MethodPost, "/api/v1/admin/projects", `{"title":"X"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, data.Projects())
}

func TestAdmin_ProjectLifecycle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"idToken":"tok","localId":"uid","email":"a@b.c"}`))
	}))
	defer srv.Close()

	session := auth.NewSession("key", nil)
	session.Endpoint = srv.URL
	require.True(t, session.Login(context.Background(), "a@b.c", "pw"))

	r, data := newRouter(t, session)

	w := do(r, http.MethodPost, "/api/v1/admin/projects",
		`{"title":"New Project","year":"2025","link":"https://x.dev"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, data.Projects(), 1)
	assert.Equal(t, int64(1), data.Projects()[0].ID)

	w = do(r, http.MethodPut, "/api/v1/admin/projects/1", `{"title":"Renamed"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Renamed", data.Projects()[0].Title)

	w = do(r, http.MethodDelete, "/api/v1/admin/projects/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, data.Projects())
}

func TestAdmin_ContentPatchValidation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"idToken":"tok","localId":"uid","email":"a@b.c"}`))
	}))
	defer srv.Close()

	session := auth.NewSession("key", nil)
	session.Endpoint = srv.URL
	require.True(t, session.Login(context.Background(), "a@b.c", "pw"))

	r, data := newRouter(t, session)

	t.Run("unknown section is rejected", func(t *testing.T) {
		w := do(r, http.MethodPut, "/api/v1/admin/content/footer", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("about patch lands", func(t *testing.T) {
		w := do(r, http.MethodPut, "/api/v1/admin/content/about",
			`{"p1":{"pt-BR":"novo texto"}}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "novo texto", data.Content().About.P1.PTBR)
	})

	t.Run("bad ids are rejected", func(t *testing.T) {
		w := do(r, http.MethodDelete, "/api/v1/admin/projects/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
