package handlers

import (
	"net/http"

	"github.com/alimgiray/gitmentor/internal/middleware"
	"github.com/alimgiray/gitmentor/internal/models"
	"github.com/gin-gonic/gin"
)

type HomeHandler struct{}

func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Index describes the service and the signed-in user, if any
func (h *HomeHandler) Index(c *gin.Context) {
	data := gin.H{
		"name":    "gitmentor",
		"actions": models.SupportedActions,
	}
	if session := middleware.GetSession(c); session != nil {
		data["user"] = session.Username
	}

	c.JSON(http.StatusOK, data)
}

// Health handles GET /health
func (h *HomeHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
