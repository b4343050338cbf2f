package ports

import (
	"context"

	"github.com/taskdesk/client-go/internal/core/domain"
)

// TaskMutationResult is the envelope task create/update endpoints return.
type TaskMutationResult struct {
	Message string       `json:"message"`
	Task    *domain.Task `json:"task"`
}

// CompletionResult is returned when a worker completes a task; the server
// creates the report and hands it back.
type CompletionResult struct {
	Message string             `json:"message"`
	Report  *domain.TaskReport `json:"report"`
}

// TaskAPI is the tasks/reports/notifications/statistics resource family.
//
// GetTasks returns the full unfiltered list; worker views filter
// client-side by assignee. GetReports filters server-side via the status
// query parameter, never client-side on top of that.
type TaskAPI interface {
	GetTasks(ctx context.Context) ([]domain.Task, error)
	CreateTask(ctx context.Context, data domain.CreateTaskData) (*TaskMutationResult, error)
	GetTask(ctx context.Context, taskID int) (*domain.Task, error)
	UpdateTask(ctx context.Context, taskID int, data domain.UpdateTaskData) (*TaskMutationResult, error)
	DeleteTask(ctx context.Context, taskID int) (string, error)
	RejectTask(ctx context.Context, taskID int, data domain.TaskRejectionData) error
	CompleteTask(ctx context.Context, taskID int, data domain.TaskCompletionData) (*CompletionResult, error)
	GetReports(ctx context.Context, status domain.ReportStatus) ([]domain.TaskReport, error)
	ReviewReport(ctx context.Context, reportID int, data domain.ReviewReportData) error
	GetNotifications(ctx context.Context) (*domain.NotificationList, error)
	MarkNotificationsAsRead(ctx context.Context, notificationIDs []int) error
	GetStatistics(ctx context.Context) (*domain.Statistics, error)
}
