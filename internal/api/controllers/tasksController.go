package controllers

import (
	"net/http"
	"strconv"

	"leadpilot/leadgen-backend/internal/dto"
	"leadpilot/leadgen-backend/internal/tasks"

	"github.com/gin-gonic/gin"
)

const defaultHistoryLimit = 50

// TasksController exposes the background task tracker
type TasksController struct {
	tracker *tasks.Tracker
}

// NewTasksController creates a new TasksController instance
func NewTasksController(tracker *tasks.Tracker) *TasksController {
	return &TasksController{tracker: tracker}
}

// Active godoc
// @Summary      List active background tasks
// @Description  Tasks currently pending or running, newest first
// @Tags         tasks
// @Produce      json
// @Success      200 {object} map[string]interface{} "Active tasks"
// @Router       /tasks/active [get]
func (ctrl *TasksController) Active(c *gin.Context) {
	active := ctrl.tracker.Active()
	c.JSON(http.StatusOK, gin.H{
		"total": len(active),
		"tasks": active,
	})
}

// History godoc
// @Summary      List finished background tasks
// @Description  Completed, failed and cancelled tasks, newest first
// @Tags         tasks
// @Produce      json
// @Param        limit query int false "Maximum number of tasks to return (default 50)"
// @Success      200 {object} map[string]interface{} "Task history"
// @Failure      400 {object} dto.ErrorResponse "Invalid limit"
// @Router       /tasks/history [get]
func (ctrl *TasksController) History(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "limit must be a positive integer",
			})
			return
		}
		limit = parsed
	}

	history := ctrl.tracker.History(limit)
	c.JSON(http.StatusOK, gin.H{
		"total": len(history),
		"tasks": history,
	})
}

// Stats godoc
// @Summary      Background task statistics
// @Description  Totals, per-status counts and average duration of finished tasks
// @Tags         tasks
// @Produce      json
// @Success      200 {object} tasks.Stats "Task statistics"
// @Router       /tasks/stats [get]
func (ctrl *TasksController) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.tracker.Stats())
}
