package controller

import (
	"eklavya_backend/internal/service"
	"eklavya_backend/internal/util"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AssistantController struct {
	AssistantService *service.AssistantService
}

func NewAssistantController(assistantService *service.AssistantService) *AssistantController {
	return &AssistantController{AssistantService: assistantService}
}

// swagger:model AIRequest
type AIRequest struct {
	Type string          `json:"type" binding:"required"`
	Data json.RawMessage `json:"data"`
}

// Handle godoc
// @Summary Dispatch an AI assistant request
// @Description Routes by type: study-plan, question-explanation, performance-analysis, learning-path.
// @Tags ai
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body AIRequest true "Request kind and payload"
// @Success 200 {object} object "{success:true, data}"
// @Failure 400 {object} object "{success:false, error}"
// @Failure 500 {object} object "{success:false, error}"
// @Router /api/ai-assistant [post]
func (c *AssistantController) Handle(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req AIRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.AIError(ctx, http.StatusBadRequest, err)
		return
	}
	if len(req.Data) == 0 {
		req.Data = json.RawMessage("{}")
	}

	result, err := c.AssistantService.Dispatch(claims.UserID, req.Type, req.Data)
	if err != nil {
		if errors.Is(err, util.ErrUnsupportedAIType) || errors.Is(err, util.ErrInvalidAIPayload) {
			util.AIError(ctx, http.StatusBadRequest, err)
		} else {
			util.AIError(ctx, http.StatusInternalServerError, err)
		}
		return
	}
	util.AISuccess(ctx, result)
}
