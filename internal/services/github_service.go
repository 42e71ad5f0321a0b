package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/alimgiray/gitmentor/internal/models"
	"github.com/alimgiray/gitmentor/pkg/config"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"
)

// GitHubService handles the OAuth side of GitHub: login, code exchange and grant revocation
type GitHubService struct {
	oauthConfig *oauth2.Config
	client      *GitHubClient
	apiURL      string
}

// NewGitHubService creates the service from the loaded configuration
func NewGitHubService(client *GitHubClient) *GitHubService {
	oauthConfig := &oauth2.Config{
		ClientID:     config.AppConfig.GitHub.ClientID,
		ClientSecret: config.AppConfig.GitHub.ClientSecret,
		RedirectURL:  config.AppConfig.GitHub.CallbackURL,
		Scopes: []string{
			"read:user",  // Read access to profile data
			"user:email", // Access to user's email addresses
			"repo",       // Private repositories and their commits
		},
		Endpoint: githuboauth.Endpoint,
	}

	return &GitHubService{
		oauthConfig: oauthConfig,
		client:      client,
		apiURL:      config.AppConfig.GitHub.APIURL,
	}
}

// WithEndpoint points the OAuth flow at another authorization server
func (s *GitHubService) WithEndpoint(endpoint oauth2.Endpoint) *GitHubService {
	s.oauthConfig.Endpoint = endpoint
	return s
}

// GetAuthURL returns the GitHub OAuth authorization URL carrying state
func (s *GitHubService) GetAuthURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state)
}

// ExchangeCodeForToken exchanges authorization code for access token
func (s *GitHubService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}
	return token, nil
}

// GetUserInfo retrieves the authenticated user behind token
func (s *GitHubService) GetUserInfo(ctx context.Context, token *oauth2.Token) (*models.UserRecord, error) {
	user, err := s.client.FetchUser(ctx, token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	return user, nil
}

// RevokeToken deletes the OAuth grant of accessToken, authenticating as the OAuth app
func (s *GitHubService) RevokeToken(ctx context.Context, accessToken string) error {
	tp := github.BasicAuthTransport{
		Username: s.oauthConfig.ClientID,
		Password: s.oauthConfig.ClientSecret,
	}
	client := github.NewClient(tp.Client())

	apiURL := s.apiURL
	if !strings.HasSuffix(apiURL, "/") {
		apiURL += "/"
	}
	base, err := url.Parse(apiURL)
	if err != nil {
		return fmt.Errorf("invalid GitHub API URL %q: %w", apiURL, err)
	}
	client.BaseURL = base

	if _, err := client.Authorizations.Revoke(ctx, s.oauthConfig.ClientID, accessToken); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
