package handlers

import (
	"net/http"

	"github.com/alimgiray/gitmentor/internal/middleware"
	"github.com/alimgiray/gitmentor/internal/services"
	"github.com/alimgiray/gitmentor/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	userService   *services.UserService
	githubService *services.GitHubService
}

func NewAuthHandler(userService *services.UserService, githubService *services.GitHubService) *AuthHandler {
	return &AuthHandler{
		userService:   userService,
		githubService: githubService,
	}
}

// GitHubLogin initiates GitHub OAuth flow
func (h *AuthHandler) GitHubLogin(c *gin.Context) {
	state := middleware.NewOAuthState(c)
	c.Redirect(http.StatusTemporaryRedirect, h.githubService.GetAuthURL(state))
}

// GitHubCallback handles GitHub OAuth callback
func (h *AuthHandler) GitHubCallback(c *gin.Context) {
	if !middleware.ConsumeOAuthState(c, c.Query("state")) {
		c.Redirect(http.StatusFound, "/?error=invalid_state")
		return
	}

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, "/?error=no_code")
		return
	}

	// Exchange code for token
	token, err := h.githubService.ExchangeCodeForToken(c.Request.Context(), code)
	if err != nil {
		logger.WithError(err).Warn("GitHub token exchange failed")
		c.Redirect(http.StatusFound, "/?error=token_exchange_failed")
		return
	}

	// Get user info from GitHub
	githubUser, err := h.githubService.GetUserInfo(c.Request.Context(), token)
	if err != nil {
		logger.WithError(err).Warn("GitHub user lookup failed")
		c.Redirect(http.StatusFound, "/?error=user_info_failed")
		return
	}

	user, err := h.userService.UpsertGitHubUser(githubUser, token.AccessToken)
	if err != nil {
		logger.WithField("username", githubUser.Login).WithError(err).Error("failed to store user")
		c.Redirect(http.StatusFound, "/?error=user_update_failed")
		return
	}

	if err := middleware.SetSession(c, user.ID.String(), user.Username); err != nil {
		c.Redirect(http.StatusFound, "/?error=session_creation_failed")
		return
	}

	logger.WithFields(logrus.Fields{"user_id": user.ID.String(), "username": user.Username}).Info("user signed in")
	c.Redirect(http.StatusFound, "/")
}

// Logout revokes the GitHub grant, forgets the token and clears the session.
// It always succeeds; a failed revocation is only logged.
func (h *AuthHandler) Logout(c *gin.Context) {
	defer func() {
		middleware.ClearSession(c)
		c.JSON(http.StatusOK, gin.H{"success": true})
	}()

	session := middleware.GetSession(c)
	if session == nil {
		return
	}

	user, err := h.userService.GetUserByID(session.UserID)
	if err != nil || user.GitHubAccessToken == "" {
		return
	}

	if err := h.githubService.RevokeToken(c.Request.Context(), user.GitHubAccessToken); err != nil {
		logger.WithField("username", user.Username).WithError(err).Warn("failed to revoke GitHub token")
	}
	if err := h.userService.ClearGitHubToken(user.ID.String()); err != nil {
		logger.WithField("username", user.Username).WithError(err).Error("failed to clear GitHub token")
	}
}
