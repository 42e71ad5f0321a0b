package models

import "time"

// Identity is the capability handed to the pipeline by the session layer
type Identity struct {
	AccessToken string
	Username    string
}

// UserRecord is the subset of GET /user the profile is built from
type UserRecord struct {
	Login            string
	Name             string
	AvatarURL        string
	Bio              string
	Followers        int
	Following        int
	PublicRepos      int
	AccountCreatedAt time.Time
}

// RepoRecord is one entry of GET /user/repos
type RepoRecord struct {
	Name            string
	Owner           string
	StargazerCount  int
	PrimaryLanguage *string
	UpdatedAt       time.Time
}

// EventRecord is one entry of GET /users/{username}/events
type EventRecord struct {
	Type      string
	CreatedAt time.Time
}

// CommitRecord is one commit of a recently updated repository
type CommitRecord struct {
	RepoName   string
	Message    string
	AuthoredAt time.Time
}

// RawGitHubBundle groups everything fetched for one pipeline run
type RawGitHubBundle struct {
	User          UserRecord
	Repos         []RepoRecord
	Events        []EventRecord
	RecentCommits []CommitRecord
}

// GitHub event types counted in the activity summary
const (
	EventTypePush        = "PushEvent"
	EventTypePullRequest = "PullRequestEvent"
	EventTypeIssues      = "IssuesEvent"
)
