package rest

import (
	"context"
	"fmt"
	"net/url"

	"github.com/taskdesk/client-go/internal/core/domain"
	"github.com/taskdesk/client-go/internal/core/ports"
)

// TaskAPI implements ports.TaskAPI against the backend's task resource family.
type TaskAPI struct {
	client *Client
}

var _ ports.TaskAPI = (*TaskAPI)(nil)

func NewTaskAPI(client *Client) *TaskAPI {
	return &TaskAPI{client: client}
}

// GetTasks returns the full unfiltered task list. Worker views filter
// by assignee client-side; this endpoint has no query parameters.
func (t *TaskAPI) GetTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := t.client.get(ctx, "/api/tasks/", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (t *TaskAPI) CreateTask(ctx context.Context, data domain.CreateTaskData) (*ports.TaskMutationResult, error) {
	if err := t.client.checkPayload(data); err != nil {
		return nil, err
	}
	var result ports.TaskMutationResult
	if err := t.client.post(ctx, "/api/tasks/create/", data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (t *TaskAPI) GetTask(ctx context.Context, taskID int) (*domain.Task, error) {
	var task domain.Task
	if err := t.client.get(ctx, fmt.Sprintf("/api/tasks/%d/", taskID), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (t *TaskAPI) UpdateTask(ctx context.Context, taskID int, data domain.UpdateTaskData) (*ports.TaskMutationResult, error) {
	if err := t.client.checkPayload(data); err != nil {
		return nil, err
	}
	var result ports.TaskMutationResult
	if err := t.client.put(ctx, fmt.Sprintf("/api/tasks/%d/update/", taskID), data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (t *TaskAPI) DeleteTask(ctx context.Context, taskID int) (string, error) {
	var result struct {
		Message string `json:"message"`
	}
	if err := t.client.delete(ctx, fmt.Sprintf("/api/tasks/%d/delete/", taskID), &result); err != nil {
		return "", err
	}
	return result.Message, nil
}

func (t *TaskAPI) RejectTask(ctx context.Context, taskID int, data domain.TaskRejectionData) error {
	if err := t.client.checkPayload(data); err != nil {
		return err
	}
	return t.client.post(ctx, fmt.Sprintf("/api/tasks/%d/reject/", taskID), data, nil)
}

func (t *TaskAPI) CompleteTask(ctx context.Context, taskID int, data domain.TaskCompletionData) (*ports.CompletionResult, error) {
	if err := t.client.checkPayload(data); err != nil {
		return nil, err
	}
	var result ports.CompletionResult
	if err := t.client.post(ctx, fmt.Sprintf("/api/tasks/%d/complete/", taskID), data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetReports filters server-side: a non-empty status becomes the ?status=
// query parameter and the result is returned without client re-filtering.
func (t *TaskAPI) GetReports(ctx context.Context, status domain.ReportStatus) ([]domain.TaskReport, error) {
	path := "/api/tasks/reports/"
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}
	var reports []domain.TaskReport
	if err := t.client.get(ctx, path, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (t *TaskAPI) ReviewReport(ctx context.Context, reportID int, data domain.ReviewReportData) error {
	if err := t.client.checkPayload(data); err != nil {
		return err
	}
	return t.client.post(ctx, fmt.Sprintf("/api/tasks/reports/%d/review/", reportID), data, nil)
}

func (t *TaskAPI) GetNotifications(ctx context.Context) (*domain.NotificationList, error) {
	var list domain.NotificationList
	if err := t.client.get(ctx, "/api/tasks/notifications/", &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (t *TaskAPI) MarkNotificationsAsRead(ctx context.Context, notificationIDs []int) error {
	body := map[string][]int{"notification_ids": notificationIDs}
	return t.client.post(ctx, "/api/tasks/notifications/", body, nil)
}

func (t *TaskAPI) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	var stats domain.Statistics
	if err := t.client.get(ctx, "/api/tasks/statistics/", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
