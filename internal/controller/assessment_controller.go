package controller

import (
	"eklavya_backend/internal/model"
	"eklavya_backend/internal/service"
	"eklavya_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// ListQuestions godoc
// @Summary Preview the question bank for a subject
// @Tags assessments
// @Produce  json
// @Security BearerAuth
// @Param   subject query string false "Subject (default General)"
// @Success 200 {object} util.Response{data=[]service.AttemptQuestion}
// @Router /api/assessments/questions [get]
func (c *AssessmentController) ListQuestions(ctx *gin.Context) {
	subject := ctx.DefaultQuery("subject", model.SubjectGeneral)
	questions, err := c.AssessmentService.ListQuestions(subject)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// swagger:model StartAttemptRequest
type StartAttemptRequest struct {
	Subject string `json:"subject" binding:"required"`
}

// StartAttempt godoc
// @Summary Begin a quiz attempt
// @Tags assessments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body StartAttemptRequest true "Subject to assess"
// @Success 201 {object} util.Response{data=service.StartAttemptResult}
// @Failure 400 {object} util.Response
// @Router /api/assessments/start [post]
func (c *AssessmentController) StartAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req StartAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AssessmentService.StartAttempt(claims.UserID, req.Subject)
	if err != nil {
		if errors.Is(err, util.ErrNoQuestionsForSubject) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, result)
}

// swagger:model AnswerRequest
type AnswerRequest struct {
	QuestionIndex *int `json:"questionIndex" binding:"required"`
	OptionIndex   *int `json:"optionIndex" binding:"required"`
}

// Answer godoc
// @Summary Record an answer on an open attempt
// @Tags assessments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Attempt ID"
// @Param   body body AnswerRequest true "Question and selected option"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/assessments/attempts/{id}/answer [post]
func (c *AssessmentController) Answer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	attemptID := ctx.Param("id")

	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.AssessmentService.Answer(claims.UserID, attemptID, *req.QuestionIndex, *req.OptionIndex)
	switch {
	case err == nil:
		util.Success(ctx, nil)
	case errors.Is(err, util.ErrAttemptNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrAttemptCompleted),
		errors.Is(err, util.ErrQuestionOutOfRange),
		errors.Is(err, util.ErrNoAnswerSelected),
		errors.Is(err, util.ErrAnswerOutOfRange):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// Submit godoc
// @Summary Score and close an attempt
// @Tags assessments
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Attempt ID"
// @Success 200 {object} util.Response{data=service.SubmitResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/assessments/attempts/{id}/submit [post]
func (c *AssessmentController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	attemptID := ctx.Param("id")

	result, err := c.AssessmentService.Submit(claims.UserID, attemptID)
	switch {
	case err == nil:
		util.Success(ctx, result)
	case errors.Is(err, util.ErrAttemptNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrAttemptCompleted), errors.Is(err, util.ErrUnansweredQuestion):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// History godoc
// @Summary Completed assessments, newest first
// @Tags assessments
// @Produce  json
// @Security BearerAuth
// @Param   limit query int false "Max rows (default 20)"
// @Success 200 {object} util.Response{data=[]model.Assessment}
// @Router /api/assessments [get]
func (c *AssessmentController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	assessments, err := c.AssessmentService.History(claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, assessments)
}
