package middleware

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alimgiray/gitmentor/internal/models"
	"github.com/alimgiray/gitmentor/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	require.NoError(t, config.Load())
	config.AppConfig.Session.Secret = "test-secret"

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SessionMiddleware())
	return router
}

func signedSession(t *testing.T, data SessionData) string {
	t.Helper()
	encoded, err := json.Marshal(data)
	require.NoError(t, err)
	return signCookieValue(base64.URLEncoding.EncodeToString(encoded))
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestSessionMiddleware(t *testing.T) {
	valid := SessionData{UserID: "user-1", Username: "octocat", ExpiresAt: time.Now().Add(time.Hour)}
	expired := SessionData{UserID: "user-1", Username: "octocat", ExpiresAt: time.Now().Add(-time.Minute)}

	testCases := []struct {
		name        string
		cookie      func(t *testing.T) string
		wantSession bool
	}{
		{name: "no cookie", cookie: nil},
		{name: "valid session", cookie: func(t *testing.T) string { return signedSession(t, valid) }, wantSession: true},
		{name: "expired session", cookie: func(t *testing.T) string { return signedSession(t, expired) }},
		{
			name: "tampered signature",
			cookie: func(t *testing.T) string {
				encoded, _ := json.Marshal(valid)
				return "bogus." + base64.URLEncoding.EncodeToString(encoded)
			},
		},
		{name: "malformed value", cookie: func(t *testing.T) string { return "not-a-session" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := setupRouter(t)

			var got *SessionData
			router.GET("/test", func(c *gin.Context) {
				got = GetSession(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tc.cookie != nil {
				req.AddCookie(&http.Cookie{Name: sessionCookie, Value: tc.cookie(t)})
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			if tc.wantSession {
				require.NotNil(t, got)
				assert.Equal(t, "user-1", got.UserID)
				assert.Equal(t, "octocat", got.Username)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestSetAndClearSession(t *testing.T) {
	router := setupRouter(t)
	router.GET("/login", func(c *gin.Context) {
		require.NoError(t, SetSession(c, "user-1", "octocat"))
		c.Status(http.StatusOK)
	})
	router.GET("/logout", func(c *gin.Context) {
		ClearSession(c)
		c.Status(http.StatusOK)
	})
	router.GET("/me", func(c *gin.Context) {
		session := GetSession(c)
		if session == nil {
			c.Status(http.StatusUnauthorized)
			return
		}
		c.String(http.StatusOK, session.Username)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	cookie := findCookie(w, sessionCookie)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, int(sessionTTL.Seconds()), cookie.MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "octocat", w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/logout", nil))
	cleared := findCookie(w, sessionCookie)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)
}

func TestOAuthState(t *testing.T) {
	router := setupRouter(t)

	var state string
	router.GET("/start", func(c *gin.Context) {
		state = NewOAuthState(c)
		c.Status(http.StatusOK)
	})
	router.GET("/callback", func(c *gin.Context) {
		if ConsumeOAuthState(c, c.Query("state")) {
			c.Status(http.StatusOK)
			return
		}
		c.Status(http.StatusBadRequest)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/start", nil))
	cookie := findCookie(w, stateCookie)
	require.NotNil(t, cookie)
	require.NotEmpty(t, state)

	testCases := []struct {
		name       string
		query      string
		withCookie bool
		wantStatus int
	}{
		{name: "matching state", query: state, withCookie: true, wantStatus: http.StatusOK},
		{name: "different state", query: "other", withCookie: true, wantStatus: http.StatusBadRequest},
		{name: "missing cookie", query: state, withCookie: false, wantStatus: http.StatusBadRequest},
		{name: "empty state", query: "", withCookie: true, wantStatus: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/callback?state="+tc.query, nil)
			if tc.withCookie {
				req.AddCookie(cookie)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

type stubUsers map[string]*models.User

func (s stubUsers) GetUserByID(id string) (*models.User, error) {
	if user, ok := s[id]; ok {
		return user, nil
	}
	return nil, errors.New("not found")
}

func TestAuthRequiredAndLoadIdentity(t *testing.T) {
	users := stubUsers{
		"with-token":    {Username: "octocat", GitHubAccessToken: "gho_token"},
		"without-token": {Username: "mona"},
	}

	testCases := []struct {
		name         string
		userID       string
		wantStatus   int
		wantIdentity *models.Identity
		wantError    string
	}{
		{name: "no session", wantStatus: http.StatusUnauthorized, wantError: "Unauthorized"},
		{
			name:         "user with token",
			userID:       "with-token",
			wantStatus:   http.StatusOK,
			wantIdentity: &models.Identity{AccessToken: "gho_token", Username: "octocat"},
		},
		{name: "user without token", userID: "without-token", wantStatus: http.StatusOK},
		{name: "unknown user", userID: "gone", wantStatus: http.StatusUnauthorized, wantError: "Unauthorized"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := setupRouter(t)
			var got *models.Identity
			router.GET("/api", AuthRequired(), LoadIdentity(users), func(c *gin.Context) {
				got = GetIdentity(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api", nil)
			if tc.userID != "" {
				req.AddCookie(&http.Cookie{
					Name:  sessionCookie,
					Value: signedSession(t, SessionData{UserID: tc.userID, ExpiresAt: time.Now().Add(time.Hour)}),
				})
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, tc.wantIdentity, got)
			if tc.wantError != "" {
				var body models.ActionResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.False(t, body.Success)
				assert.Equal(t, tc.wantError, body.Error)
			}
		})
	}
}
