package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/alimgiray/gitmentor/internal/models"
	"github.com/alimgiray/gitmentor/internal/repositories"
)

type UserService struct {
	userRepo *repositories.UserRepository
}

func NewUserService(userRepo *repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// GetUserByUsername retrieves a user by username
func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	return s.userRepo.GetByUsername(username)
}

// UpsertGitHubUser stores the GitHub account behind a fresh OAuth token,
// creating the user on first login and refreshing profile and token afterwards
func (s *UserService) UpsertGitHubUser(record *models.UserRecord, accessToken string) (*models.User, error) {
	if record == nil || record.Login == "" {
		return nil, &models.ValidationError{Field: "login", Message: "GitHub login is required"}
	}

	existing, err := s.userRepo.GetByUsername(record.Login)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up user %s: %w", record.Login, err)
	}

	if existing == nil {
		user := models.NewUser(record.Name, record.Login, record.AvatarURL, accessToken)
		if err := s.userRepo.Create(user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return user, nil
	}

	existing.Name = record.Name
	existing.AvatarURL = record.AvatarURL
	existing.GitHubAccessToken = accessToken
	if err := s.userRepo.Update(existing); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return existing, nil
}

// ClearGitHubToken removes the stored OAuth token of a user
func (s *UserService) ClearGitHubToken(id string) error {
	return s.userRepo.ClearGitHubToken(id)
}
