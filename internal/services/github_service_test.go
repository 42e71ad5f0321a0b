package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/alimgiray/gitmentor/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newTestGitHubService(t *testing.T, apiURL string) *GitHubService {
	t.Helper()
	require.NoError(t, config.Load())
	config.AppConfig.GitHub.ClientID = "client-id"
	config.AppConfig.GitHub.ClientSecret = "client-secret"
	config.AppConfig.GitHub.CallbackURL = "http://localhost:8080/auth/github/callback"
	config.AppConfig.GitHub.APIURL = apiURL

	client, err := NewGitHubClient(apiURL)
	require.NoError(t, err)
	return NewGitHubService(client)
}

func TestGitHubServiceGetAuthURL(t *testing.T) {
	service := newTestGitHubService(t, "https://api.github.com/")

	authURL, err := url.Parse(service.GetAuthURL("random-state"))
	require.NoError(t, err)

	assert.Equal(t, "github.com", authURL.Host)
	query := authURL.Query()
	assert.Equal(t, "client-id", query.Get("client_id"))
	assert.Equal(t, "random-state", query.Get("state"))
	assert.Equal(t, "http://localhost:8080/auth/github/callback", query.Get("redirect_uri"))
	assert.Equal(t, "read:user user:email repo", query.Get("scope"))
}

func TestGitHubServiceExchangeAndUserInfo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/login/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "the-code", r.Form.Get("code"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"test-token","token_type":"bearer","scope":"read:user"}`)
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		fmt.Fprint(w, fakeUserJSON)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	service := newTestGitHubService(t, server.URL).WithEndpoint(oauth2.Endpoint{
		AuthURL:  server.URL + "/login/oauth/authorize",
		TokenURL: server.URL + "/login/oauth/access_token",
	})

	token, err := service.ExchangeCodeForToken(context.Background(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "test-token", token.AccessToken)

	user, err := service.GetUserInfo(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "octocat", user.Login)
}

func TestGitHubServiceRevokeToken(t *testing.T) {
	var revoked bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/applications/client-id/token", r.URL.Path)

		username, password, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "client-id", username)
		assert.Equal(t, "client-secret", password)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gho_token", body["access_token"])

		revoked = true
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	service := newTestGitHubService(t, server.URL)
	require.NoError(t, service.RevokeToken(context.Background(), "gho_token"))
	assert.True(t, revoked)
}

func TestGitHubServiceRevokeTokenFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	}))
	defer server.Close()

	service := newTestGitHubService(t, server.URL)
	assert.Error(t, service.RevokeToken(context.Background(), "gho_token"))
}
