package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/client-go/internal/core/domain"
	"github.com/taskdesk/client-go/internal/devserver/store"
)

// TaskHandler serves the tasks/reports/notifications/statistics endpoints
// against the fixture store.
type TaskHandler struct {
	store *store.Store
}

func NewTaskHandler(st *store.Store) *TaskHandler {
	return &TaskHandler{store: st}
}

type messageResponse struct {
	Message string `json:"message"`
}

type taskResponse struct {
	Message string       `json:"message"`
	Task    *domain.Task `json:"task"`
}

type reportResponse struct {
	Message string             `json:"message"`
	Report  *domain.TaskReport `json:"report"`
}

// List handles GET /api/tasks/: the full unfiltered list; clients filter.
func (h *TaskHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Tasks())
}

// Create handles POST /api/tasks/create/.
func (h *TaskHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req domain.CreateTaskData
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	task := h.store.CreateTask(req, userID)
	return c.JSON(http.StatusCreated, taskResponse{Message: "Tarea creada correctamente", Task: task})
}

// Get handles GET /api/tasks/:id/.
func (h *TaskHandler) Get(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	task, err := h.store.TaskByID(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Update handles PUT /api/tasks/:id/update/.
func (h *TaskHandler) Update(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	var req domain.UpdateTaskData
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	task, err := h.store.UpdateTask(id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, taskResponse{Message: "Tarea actualizada correctamente", Task: task})
}

// Delete handles DELETE /api/tasks/:id/delete/.
func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	if err := h.store.DeleteTask(id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Tarea eliminada correctamente"})
}

// Reject handles POST /api/tasks/:id/reject/: the assigned worker refuses.
func (h *TaskHandler) Reject(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req domain.TaskRejectionData
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := h.store.RejectTask(id, userID, req.Reason); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Tarea rechazada"})
}

// Complete handles POST /api/tasks/:id/complete/ and produces the report.
func (h *TaskHandler) Complete(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req domain.TaskCompletionData
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	report, err := h.store.CompleteTask(id, userID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reportResponse{Message: "Tarea completada", Report: report})
}

// Reports handles GET /api/tasks/reports/?status=, a server-side filter.
func (h *TaskHandler) Reports(c echo.Context) error {
	status := domain.ReportStatus(c.QueryParam("status"))
	return c.JSON(http.StatusOK, h.store.Reports(status))
}

// Review handles POST /api/tasks/reports/:id/review/.
func (h *TaskHandler) Review(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid report id")
	}
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req domain.ReviewReportData
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": `Acción no válida. Use "approve", "reject" o "needs_correction"`,
		})
	}
	if err := h.store.ReviewReport(id, req.Action, req.ReviewNotes, userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Reporte revisado"})
}

// Notifications handles GET /api/tasks/notifications/.
func (h *TaskHandler) Notifications(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.store.Notifications(userID))
}

type markReadRequest struct {
	NotificationIDs []int `json:"notification_ids"`
}

// MarkNotificationsRead handles POST /api/tasks/notifications/.
func (h *TaskHandler) MarkNotificationsRead(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req markReadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	h.store.MarkNotificationsRead(userID, req.NotificationIDs)
	return c.JSON(http.StatusOK, messageResponse{Message: "Notificaciones marcadas como leídas"})
}

// Statistics handles GET /api/tasks/statistics/.
func (h *TaskHandler) Statistics(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Statistics())
}

func taskID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}
	return id, nil
}
