package controller

import (
	"eklavya_backend/internal/service"
	"eklavya_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// Snapshot godoc
// @Summary Dashboard snapshot for the current user
// @Description Profile, recent assessments, learning paths and goals. Cached briefly per user.
// @Tags dashboard
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.DashboardSnapshot}
// @Router /api/dashboard [get]
func (c *DashboardController) Snapshot(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	snapshot, err := c.DashboardService.Snapshot(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, snapshot)
}
