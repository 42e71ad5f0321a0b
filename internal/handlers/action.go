package handlers

import (
	"net/http"

	"github.com/alimgiray/gitmentor/internal/middleware"
	"github.com/alimgiray/gitmentor/internal/models"
	"github.com/alimgiray/gitmentor/internal/services"
	"github.com/gin-gonic/gin"
)

type ActionHandler struct {
	actionService *services.ActionService
}

func NewActionHandler(actionService *services.ActionService) *ActionHandler {
	return &ActionHandler{
		actionService: actionService,
	}
}

// Run handles POST /api/ai/action
func (h *ActionHandler) Run(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		respondError(c, models.ErrGitHubContextMissing)
		return
	}

	var req models.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &models.BadRequestError{Message: "Invalid request body"})
		return
	}

	outcome, err := h.actionService.Run(c.Request.Context(), identity, req.Action)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewSuccessResponse(outcome.Action, outcome.Result, outcome.Cached))
}

// respondError writes the failure envelope with the status derived from err
func respondError(c *gin.Context, err error) {
	c.JSON(models.StatusCode(err), models.NewErrorResponse(err))
}
