package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/threadz/threadz-backend/internal/app/service"
	apperrors "github.com/threadz/threadz-backend/internal/errors"
	"github.com/threadz/threadz-backend/internal/middleware"
)

type DesignController struct {
	designService service.DesignService
}

func NewDesignController(designService service.DesignService) *DesignController {
	return &DesignController{
		designService: designService,
	}
}

type GenerateDesignRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// GenerateDesign produces a design from a free-text prompt
// POST /api/v1/designs
func (ctrl *DesignController) GenerateDesign(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req GenerateDesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid design generation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	log.Debug("Generating design", map[string]interface{}{
		"prompt_length": len(req.Prompt),
	})

	result, err := ctrl.designService.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		if errors.Is(err, service.ErrEmptyPrompt) {
			log.Warn("Empty design prompt", nil)
			apperrors.BadRequest(c, apperrors.DesignEmptyPrompt, "Describe the design you want first")
			return
		}
		log.Error("Failed to generate design", err, nil)
		apperrors.InternalError(c, "Failed to generate design")
		return
	}

	log.Info("Design generated successfully", map[string]interface{}{
		"design_id": result.Design.ID,
		"style":     result.Design.Style,
		"fallback":  result.Fallback,
		"attempts":  len(result.Attempts),
	})

	c.JSON(http.StatusOK, gin.H{
		"design":   result.Design,
		"attempts": result.Attempts,
		"fallback": result.Fallback,
	})
}
