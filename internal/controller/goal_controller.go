package controller

import (
	"eklavya_backend/internal/service"
	"eklavya_backend/internal/util"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type GoalController struct {
	GoalService *service.GoalService
}

func NewGoalController(goalService *service.GoalService) *GoalController {
	return &GoalController{GoalService: goalService}
}

// swagger:model CreateGoalRequest
type CreateGoalRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	TargetDate  string `json:"targetDate" binding:"required"`
}

// Create godoc
// @Summary Create a study goal
// @Tags goals
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CreateGoalRequest true "Goal details"
// @Success 201 {object} util.Response{data=model.SmartGoal}
// @Failure 400 {object} util.Response
// @Router /api/goals [post]
func (c *GoalController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	targetDate, err := time.Parse(util.DateFormat, req.TargetDate)
	if err != nil {
		util.BadRequest(ctx, "targetDate must be YYYY-MM-DD")
		return
	}

	goal, err := c.GoalService.Create(claims.UserID, req.Title, req.Description, targetDate)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, goal)
}

// List godoc
// @Summary Recent goals, newest first
// @Tags goals
// @Produce  json
// @Security BearerAuth
// @Param   limit query int false "Max rows (default 20)"
// @Success 200 {object} util.Response{data=[]model.SmartGoal}
// @Router /api/goals [get]
func (c *GoalController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	goals, err := c.GoalService.ListByUser(claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, goals)
}

// swagger:model UpdateGoalRequest
type UpdateGoalRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	TargetDate  *string `json:"targetDate"`
	Status      *string `json:"status" binding:"omitempty,oneof=active completed abandoned"`
}

// Update godoc
// @Summary Update goal fields
// @Tags goals
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Goal ID"
// @Param   body body UpdateGoalRequest true "Fields to change"
// @Success 200 {object} util.Response{data=model.SmartGoal}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/goals/{id} [put]
func (c *GoalController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	input := service.UpdateGoalInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}
	if req.TargetDate != nil {
		targetDate, err := time.Parse(util.DateFormat, *req.TargetDate)
		if err != nil {
			util.BadRequest(ctx, "targetDate must be YYYY-MM-DD")
			return
		}
		input.TargetDate = &targetDate
	}

	goal, err := c.GoalService.Update(claims.UserID, ctx.Param("id"), input)
	switch {
	case err == nil:
		util.Success(ctx, goal)
	case errors.Is(err, util.ErrGoalNotFound):
		util.NotFound(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// UpdateProgress godoc
// @Summary Set goal progress (0-100); 100 completes the goal
// @Tags goals
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Goal ID"
// @Param   body body ProgressRequest true "New progress"
// @Success 200 {object} util.Response{data=model.SmartGoal}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/goals/{id}/progress [patch]
func (c *GoalController) UpdateProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req ProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.GoalService.UpdateProgress(claims.UserID, ctx.Param("id"), *req.Progress)
	switch {
	case err == nil:
		util.Success(ctx, goal)
	case errors.Is(err, util.ErrInvalidProgress):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrGoalNotFound):
		util.NotFound(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
