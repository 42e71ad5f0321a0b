package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a signed-in GitHub account and the OAuth token it granted
type User struct {
	ID                uuid.UUID
	Name              string
	Username          string
	AvatarURL         string
	GitHubAccessToken string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewUser creates a User with a generated UUID
func NewUser(name, username, avatarURL, accessToken string) *User {
	now := time.Now()
	return &User{
		ID:                uuid.New(),
		Name:              name,
		Username:          username,
		AvatarURL:         avatarURL,
		GitHubAccessToken: accessToken,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// Identity returns the pipeline capability for u, or nil when u has no token
func (u *User) Identity() *Identity {
	if u == nil || u.GitHubAccessToken == "" || u.Username == "" {
		return nil
	}
	return &Identity{AccessToken: u.GitHubAccessToken, Username: u.Username}
}
