package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/alimgiray/gitmentor/internal/metrics"
	"github.com/alimgiray/gitmentor/internal/models"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

const githubMediaType = "application/vnd.github+json"

// Page sizes used by the profile fetch.
const (
	reposPerPage   = 100
	commitsPerRepo = 5
)

// GitHubFetcher is the read side of the GitHub REST API used by the pipeline.
type GitHubFetcher interface {
	FetchUser(ctx context.Context, token string) (*models.UserRecord, error)
	FetchRepos(ctx context.Context, token string) ([]models.RepoRecord, error)
	FetchEvents(ctx context.Context, token, username string) ([]models.EventRecord, error)
	FetchCommits(ctx context.Context, token, owner, repo string) ([]models.CommitRecord, error)
}

// GitHubClient performs authenticated GETs against the GitHub REST API.
// Every non-2xx answer becomes a *models.UpstreamError; nothing is retried.
type GitHubClient struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewGitHubClient creates a client for the API rooted at baseURL (https://api.github.com/ in production).
func NewGitHubClient(baseURL string) (*GitHubClient, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", baseURL, err)
	}
	return &GitHubClient{baseURL: u}, nil
}

// WithHTTPClient sets the transport underneath the OAuth2 bearer token.
func (c *GitHubClient) WithHTTPClient(httpClient *http.Client) *GitHubClient {
	c.httpClient = httpClient
	return c
}

// createAuthenticatedClient creates an http.Client that sends token as a bearer token,
// and a go-github client rooted at the API base URL for building requests.
func (c *GitHubClient) createAuthenticatedClient(ctx context.Context, token string) (*http.Client, *github.Client) {
	if c.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	httpClient := oauth2.NewClient(ctx, ts)
	client := github.NewClient(httpClient)

	base := *c.baseURL
	client.BaseURL = &base
	return httpClient, client
}

// FetchResource GETs path (relative to the API root) and decodes the JSON body into v.
// A non-2xx answer becomes a *models.UpstreamError carrying the raw response body.
func (c *GitHubClient) FetchResource(ctx context.Context, token, path string, v interface{}) error {
	httpClient, client := c.createAuthenticatedClient(ctx, token)

	req, err := client.NewRequest(http.MethodGet, strings.TrimPrefix(path, "/"), nil)
	if err != nil {
		return fmt.Errorf("failed to build GitHub request for %s: %w", path, err)
	}
	req.Header.Set("Accept", githubMediaType)

	resp, err := httpClient.Do(req.WithContext(ctx))
	if err != nil {
		metrics.RecordGitHubRequest(0)
		return fmt.Errorf("GitHub request %s failed: %w", path, err)
	}
	defer resp.Body.Close()
	metrics.RecordGitHubRequest(resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read GitHub response for %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &models.UpstreamError{Status: resp.StatusCode, Body: string(data)}
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode GitHub response for %s: %w", path, err)
	}
	return nil
}

// FetchUser returns the authenticated user (GET /user).
func (c *GitHubClient) FetchUser(ctx context.Context, token string) (*models.UserRecord, error) {
	var user github.User
	if err := c.FetchResource(ctx, token, "user", &user); err != nil {
		return nil, err
	}

	return &models.UserRecord{
		Login:            user.GetLogin(),
		Name:             user.GetName(),
		AvatarURL:        user.GetAvatarURL(),
		Bio:              user.GetBio(),
		Followers:        user.GetFollowers(),
		Following:        user.GetFollowing(),
		PublicRepos:      user.GetPublicRepos(),
		AccountCreatedAt: user.GetCreatedAt().Time,
	}, nil
}

// FetchRepos returns the first page of the authenticated user's repositories.
func (c *GitHubClient) FetchRepos(ctx context.Context, token string) ([]models.RepoRecord, error) {
	var repos []*github.Repository
	if err := c.FetchResource(ctx, token, fmt.Sprintf("user/repos?per_page=%d", reposPerPage), &repos); err != nil {
		return nil, err
	}

	records := make([]models.RepoRecord, 0, len(repos))
	for _, repo := range repos {
		if repo == nil {
			continue
		}
		records = append(records, models.RepoRecord{
			Name:            repo.GetName(),
			Owner:           repo.GetOwner().GetLogin(),
			StargazerCount:  repo.GetStargazersCount(),
			PrimaryLanguage: repo.Language,
			UpdatedAt:       repo.GetUpdatedAt().Time,
		})
	}
	return records, nil
}

// FetchEvents returns the recent public and private events performed by username.
func (c *GitHubClient) FetchEvents(ctx context.Context, token, username string) ([]models.EventRecord, error) {
	var events []*github.Event
	if err := c.FetchResource(ctx, token, fmt.Sprintf("users/%s/events", url.PathEscape(username)), &events); err != nil {
		return nil, err
	}

	records := make([]models.EventRecord, 0, len(events))
	for _, event := range events {
		if event == nil {
			continue
		}
		records = append(records, models.EventRecord{
			Type:      event.GetType(),
			CreatedAt: event.GetCreatedAt().Time,
		})
	}
	return records, nil
}

// FetchCommits returns up to five of the latest commits of owner/repo.
func (c *GitHubClient) FetchCommits(ctx context.Context, token, owner, repo string) ([]models.CommitRecord, error) {
	path := fmt.Sprintf("repos/%s/%s/commits?per_page=%d", url.PathEscape(owner), url.PathEscape(repo), commitsPerRepo)

	var commits []*github.RepositoryCommit
	if err := c.FetchResource(ctx, token, path, &commits); err != nil {
		return nil, err
	}

	records := make([]models.CommitRecord, 0, commitsPerRepo)
	for _, commit := range commits {
		if commit == nil {
			continue
		}
		if len(records) == commitsPerRepo {
			break
		}
		records = append(records, models.CommitRecord{
			RepoName:   repo,
			Message:    commit.GetCommit().GetMessage(),
			AuthoredAt: commit.GetCommit().GetAuthor().GetDate().Time,
		})
	}
	return records, nil
}
