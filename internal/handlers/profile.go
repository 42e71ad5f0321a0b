package handlers

import (
	"fmt"
	"net/http"

	"github.com/alimgiray/gitmentor/internal/middleware"
	"github.com/alimgiray/gitmentor/internal/models"
	"github.com/alimgiray/gitmentor/internal/services"
	"github.com/alimgiray/gitmentor/pkg/logger"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ProfileHandler struct {
	profileService *services.ProfileService
	exportService  *services.ProfileExportService
}

func NewProfileHandler(profileService *services.ProfileService, exportService *services.ProfileExportService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		exportService:  exportService,
	}
}

// Sync handles POST /api/github/sync
func (h *ProfileHandler) Sync(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		respondError(c, models.ErrGitHubContextMissing)
		return
	}

	if _, err := h.profileService.Sync(c.Request.Context(), identity); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Get handles GET /api/github/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, ok := h.storedProfile(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": profile})
}

// Export handles GET /api/github/profile/export
func (h *ProfileHandler) Export(c *gin.Context) {
	profile, ok := h.storedProfile(c)
	if !ok {
		return
	}

	buf, err := h.exportService.Workbook(profile)
	if err != nil {
		logger.WithField("username", profile.User.Username).WithError(err).Error("profile export failed")
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-profile.xlsx"`, profile.User.Username))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// storedProfile writes a 404 and returns false when the session user has not synced yet
func (h *ProfileHandler) storedProfile(c *gin.Context) (*models.Profile, bool) {
	session := middleware.GetSession(c)
	if session == nil {
		respondError(c, models.ErrUnauthorized)
		return nil, false
	}

	profile, ok := h.profileService.Get(session.Username)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Profile not synced"})
		return nil, false
	}
	return profile, true
}
