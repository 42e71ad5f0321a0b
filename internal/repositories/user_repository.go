package repositories

import (
	"database/sql"
	"time"

	"github.com/alimgiray/gitmentor/internal/models"
	"github.com/google/uuid"
)

const userColumns = `id, name, username, avatar_url, github_access_token, created_at, updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Create creates a new user
func (r *UserRepository) Create(user *models.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		user.ID.String(),
		user.Name,
		user.Username,
		user.AvatarURL,
		user.GitHubAccessToken,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return err
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return scanUser(r.db.QueryRow(query, id))
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	return scanUser(r.db.QueryRow(query, username))
}

// Update updates a user
func (r *UserRepository) Update(user *models.User) error {
	user.UpdatedAt = time.Now()
	query := `
		UPDATE users
		SET name = ?, username = ?, avatar_url = ?, github_access_token = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		user.Name,
		user.Username,
		user.AvatarURL,
		user.GitHubAccessToken,
		user.UpdatedAt,
		user.ID.String(),
	)
	return err
}

// ClearGitHubToken forgets the OAuth token of a user
func (r *UserRepository) ClearGitHubToken(id string) error {
	query := `UPDATE users SET github_access_token = '', updated_at = ? WHERE id = ?`
	_, err := r.db.Exec(query, time.Now(), id)
	return err
}

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	var userID string
	err := row.Scan(
		&userID,
		&user.Name,
		&user.Username,
		&user.AvatarURL,
		&user.GitHubAccessToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.ID, err = uuid.Parse(userID)
	if err != nil {
		return nil, err
	}

	return &user, nil
}
