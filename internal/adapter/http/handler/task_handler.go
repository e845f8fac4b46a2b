package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskapp/internal/adapter/http/helper"
	"taskapp/internal/adapter/http/middleware"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/model/response"
	"taskapp/internal/core/port"
	"taskapp/pkg/metrics"
)

type TaskHandler struct {
	svc     port.TaskService
	metrics *metrics.AppMetrics
}

func NewTaskHandler(svc port.TaskService, m *metrics.AppMetrics) *TaskHandler {
	return &TaskHandler{svc: svc, metrics: m}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)

	if !ok {
		helper.RespondError(c, domain.Unauthorized("Action not allowed."))
		return
	}

	var params request.CreateTaskRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.RespondError(c, domain.BadRequest("Invalid request body."))
		return
	}

	task, err := h.svc.Create(c.Request.Context(), user.ID, &params)

	if err != nil {
		helper.RespondError(c, err)
		return
	}

	h.metrics.RecordTaskOperation("create")

	c.JSON(http.StatusCreated, response.NewTaskResponse(task))
}

func (h *TaskHandler) GetAllTasks(c *gin.Context) {
	var filter domain.TaskFilter

	// A present-but-empty parameter filters for NULL columns, so absence
	// and emptiness must be told apart.
	if title, ok := c.GetQuery("title"); ok {
		filter.Title = &title
	}

	if priority, ok := c.GetQuery("priority"); ok {
		filter.Priority = &priority
	}

	tasks, err := h.svc.GetAllTasks(c.Request.Context(), filter)

	if err != nil {
		slog.Error("Task#GetAllTasks failed", "error", err)
		helper.RespondError(c, err)
		return
	}

	list := make([]response.TaskResponse, 0, len(tasks))

	for _, task := range tasks {
		list = append(list, response.NewTaskResponse(task))
	}

	c.JSON(http.StatusOK, list)
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := parseID(c)

	if err != nil {
		helper.RespondError(c, err)
		return
	}

	task, err := h.svc.GetTask(c.Request.Context(), id)

	if err != nil {
		helper.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewTaskResponse(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := parseID(c)

	if err != nil {
		helper.RespondError(c, err)
		return
	}

	var params request.TaskRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.RespondError(c, domain.BadRequest("Invalid request body."))
		return
	}

	if err := h.svc.Replace(c.Request.Context(), id, &params); err != nil {
		helper.RespondError(c, err)
		return
	}

	h.metrics.RecordTaskOperation("replace")

	c.Status(http.StatusOK)
}

func (h *TaskHandler) PatchTask(c *gin.Context) {
	id, err := parseID(c)

	if err != nil {
		helper.RespondError(c, err)
		return
	}

	var params request.TaskRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.RespondError(c, domain.BadRequest("Invalid request body."))
		return
	}

	if err := h.svc.Patch(c.Request.Context(), id, &params); err != nil {
		helper.RespondError(c, err)
		return
	}

	h.metrics.RecordTaskOperation("patch")

	c.Status(http.StatusOK)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := parseID(c)

	if err != nil {
		helper.RespondError(c, err)
		return
	}

	soft := false

	if raw, ok := c.GetQuery("soft"); ok {
		soft, _ = strconv.ParseBool(raw)
	}

	if err := h.svc.Delete(c.Request.Context(), id, soft); err != nil {
		helper.RespondError(c, err)
		return
	}

	h.metrics.RecordTaskOperation("delete")

	c.Status(http.StatusOK)
}

func parseID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))

	if err != nil {
		return 0, domain.BadRequest("Invalid task id.")
	}

	return id, nil
}
