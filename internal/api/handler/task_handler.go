package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskwell/todo-system/internal/api/metrics"
	"github.com/taskwell/todo-system/internal/core/ports"
)

// TaskHandler handles HTTP requests for the task lifecycle.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List handles GET /api/tasks?filter=.
//
// @Summary      List the caller's tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        filter  query     string  false  "View: all, active, completed or deleted (default all)"
// @Success      200     {array}   taskResponse
// @Failure      401     {object}  errorResponse
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.List(c.Request().Context(), ownerID, c.QueryParam("filter"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponses(tasks))
}

// Create handles POST /api/tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.Create(c.Request().Context(), ownerID, ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(task.Priority)).Inc()
	return c.JSON(http.StatusCreated, toTaskResponse(task))
}

// Update handles PUT /api/tasks/:id with an allow-listed partial body.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.Update(c.Request().Context(), ownerID, c.Param("id"), toUpdateInput(req))
	if err != nil {
		return err
	}

	metrics.TaskLifecycleTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Delete handles DELETE /api/tasks/:id?permanent=. Without the permanent
// flag the task is moved to the trash; with permanent=true it is removed
// for good.
//
// @Summary      Delete a task (soft by default, permanent on request)
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      string  true   "Task id"
// @Param        permanent  query     string  false  "Set to true for an irreversible delete"
// @Success      200        {object}  messageResponse
// @Failure      401        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	taskID := c.Param("id")

	if c.QueryParam("permanent") == "true" {
		if err := h.service.HardDelete(c.Request().Context(), ownerID, taskID); err != nil {
			return err
		}
		metrics.TaskLifecycleTotal.WithLabelValues("hard_delete").Inc()
		return c.JSON(http.StatusOK, messageResponse{Message: "task permanently deleted"})
	}

	task, err := h.service.SoftDelete(c.Request().Context(), ownerID, taskID)
	if err != nil {
		return err
	}

	metrics.TaskLifecycleTotal.WithLabelValues("soft_delete").Inc()
	resp := toTaskResponse(task)
	return c.JSON(http.StatusOK, messageResponse{Message: "task moved to trash", Task: &resp})
}

// Restore handles PUT /api/tasks/:id/restore. Only a task currently in the
// trash can be restored; anything else answers 404.
//
// @Summary      Restore a soft-deleted task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/tasks/{id}/restore [put]
func (h *TaskHandler) Restore(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	task, err := h.service.Restore(c.Request().Context(), ownerID, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.TaskLifecycleTotal.WithLabelValues("restore").Inc()
	resp := toTaskResponse(task)
	return c.JSON(http.StatusOK, messageResponse{Message: "task restored", Task: &resp})
}
