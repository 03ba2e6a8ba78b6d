package middleware

import (
	"first20_backend/internal/model"
	"first20_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/me", func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := newEngine(AuthMiddleware("secret"))
	token, err := util.GenerateJWT(&model.User{BaseModel: model.BaseModel{ID: 9}, Email: "a@b.c"}, "secret", time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		query  string
		want   int
	}{
		{"missing", "", "", http.StatusUnauthorized},
		{"bearer", "Bearer " + token, "", http.StatusOK},
		{"lowercase scheme", "bearer " + token, "", http.StatusOK},
		{"query token", "", token, http.StatusOK},
		{"wrong scheme", "Basic " + token, "", http.StatusUnauthorized},
		{"garbage", "Bearer abc", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := "/me"
			if tc.query != "" {
				path += "?token=" + tc.query
			}
			req := httptest.NewRequest(http.MethodGet, path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
			if tc.want == http.StatusUnauthorized {
				assert.Contains(t, w.Body.String(), `"detail"`)
			}
		})
	}
}

type fakeActivity struct {
	mu    sync.Mutex
	calls []uint
	done  chan struct{}
}

func (f *fakeActivity) UpdateLastSeen(userID uint) error {
	f.mu.Lock()
	f.calls = append(f.calls, userID)
	f.mu.Unlock()
	f.done <- struct{}{}
	return nil
}

func TestActivityMiddlewareThrottles(t *testing.T) {
	repo := &fakeActivity{done: make(chan struct{}, 4)}
	setUser := func(c *gin.Context) {
		c.Set(util.ContextUserKey, &util.Claims{UserID: 3})
		c.Next()
	}
	r := newEngine(setUser, ActivityMiddleware(repo, time.Hour))

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	select {
	case <-repo.done:
	case <-time.After(time.Second):
		t.Fatal("last seen never updated")
	}
	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Equal(t, []uint{3}, repo.calls)
}
