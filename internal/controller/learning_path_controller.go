package controller

import (
	"eklavya_backend/internal/service"
	"eklavya_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type LearningPathController struct {
	PathService *service.LearningPathService
}

func NewLearningPathController(pathService *service.LearningPathService) *LearningPathController {
	return &LearningPathController{PathService: pathService}
}

// Generate godoc
// @Summary Generate a personalized learning path
// @Description One LLM call with a deterministic fallback; always persists the resulting path.
// @Tags learning-paths
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.GeneratePathRequest true "Path parameters"
// @Success 200 {object} object "{success:true, data}"
// @Failure 400 {object} object "{success:false, error}"
// @Failure 500 {object} object "{success:false, error}"
// @Router /api/learning-paths/generate [post]
func (c *LearningPathController) Generate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.GeneratePathRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.AIError(ctx, http.StatusBadRequest, err)
		return
	}

	path, err := c.PathService.Generate(claims.UserID, req)
	if err != nil {
		util.AIError(ctx, http.StatusInternalServerError, err)
		return
	}
	util.AISuccess(ctx, path)
}

// List godoc
// @Summary All learning paths of the current user
// @Tags learning-paths
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.LearningPath}
// @Router /api/learning-paths [get]
func (c *LearningPathController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	paths, err := c.PathService.ListByUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, paths)
}

// Get godoc
// @Summary One learning path by id
// @Tags learning-paths
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Path ID"
// @Success 200 {object} util.Response{data=model.LearningPath}
// @Failure 404 {object} util.Response
// @Router /api/learning-paths/{id} [get]
func (c *LearningPathController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	path, err := c.PathService.GetByID(claims.UserID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrPathNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, path)
}

// swagger:model ProgressRequest
type ProgressRequest struct {
	Progress *int `json:"progress" binding:"required"`
}

// UpdateProgress godoc
// @Summary Set path progress (0-100)
// @Tags learning-paths
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Path ID"
// @Param   body body ProgressRequest true "New progress"
// @Success 200 {object} util.Response{data=model.LearningPath}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/learning-paths/{id}/progress [patch]
func (c *LearningPathController) UpdateProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req ProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	path, err := c.PathService.UpdateProgress(claims.UserID, ctx.Param("id"), *req.Progress)
	switch {
	case err == nil:
		util.Success(ctx, path)
	case errors.Is(err, util.ErrInvalidProgress):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrPathNotFound):
		util.NotFound(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
