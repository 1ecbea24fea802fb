package controller

import (
	"eklavya_backend/internal/service"
	"eklavya_backend/internal/util"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type StudySessionController struct {
	SessionService *service.StudySessionService
}

func NewStudySessionController(sessionService *service.StudySessionService) *StudySessionController {
	return &StudySessionController{SessionService: sessionService}
}

// swagger:model ScheduleSessionRequest
type ScheduleSessionRequest struct {
	Subject     string `json:"subject" binding:"required"`
	Duration    int    `json:"duration" binding:"required,gt=0"` // minutes
	ScheduledAt string `json:"scheduledAt" binding:"required"`
	Notes       string `json:"notes"`
}

// Schedule godoc
// @Summary Schedule a study session
// @Tags study-sessions
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body ScheduleSessionRequest true "Session details"
// @Success 201 {object} util.Response{data=model.StudySession}
// @Failure 400 {object} util.Response
// @Router /api/study-sessions [post]
func (c *StudySessionController) Schedule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req ScheduleSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	scheduledAt, err := time.Parse(util.TimeFormat, req.ScheduledAt)
	if err != nil {
		util.BadRequest(ctx, "scheduledAt must be YYYY-MM-DD HH:MM:SS")
		return
	}

	session, err := c.SessionService.Schedule(claims.UserID, req.Subject, req.Duration, scheduledAt, req.Notes)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, session)
}

// List godoc
// @Summary Recent study sessions, newest first
// @Tags study-sessions
// @Produce  json
// @Security BearerAuth
// @Param   limit query int false "Max rows (default 20)"
// @Success 200 {object} util.Response{data=[]model.StudySession}
// @Router /api/study-sessions [get]
func (c *StudySessionController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	sessions, err := c.SessionService.ListByUser(claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}

// swagger:model CompleteSessionRequest
type CompleteSessionRequest struct {
	ActualDuration int    `json:"actualDuration"` // minutes, optional
	Notes          string `json:"notes"`
}

// Complete godoc
// @Summary Mark a session as completed
// @Tags study-sessions
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Session ID"
// @Param   body body CompleteSessionRequest false "Actual duration and notes"
// @Success 200 {object} util.Response{data=model.StudySession}
// @Failure 404 {object} util.Response
// @Router /api/study-sessions/{id}/complete [post]
func (c *StudySessionController) Complete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req CompleteSessionRequest
	_ = ctx.ShouldBindJSON(&req)

	session, err := c.SessionService.Complete(claims.UserID, ctx.Param("id"), req.ActualDuration, req.Notes)
	switch {
	case err == nil:
		util.Success(ctx, session)
	case errors.Is(err, util.ErrSessionNotFound):
		util.NotFound(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
