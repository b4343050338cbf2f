package domain

// NotificationType classifies a notification for display purposes.
type NotificationType string

const (
	NotifyTaskAssigned    NotificationType = "task_assigned"
	NotifyTaskRejected    NotificationType = "task_rejected"
	NotifyTaskCompleted   NotificationType = "task_completed"
	NotifyReportSubmitted NotificationType = "report_submitted"
	NotifyTaskApproved    NotificationType = "task_approved"
	NotifySystemMessage   NotificationType = "system_message"
)

// Notification is a server-generated message addressed to one user.
type Notification struct {
	ID          int              `json:"id"`
	User        int              `json:"user"`
	Type        NotificationType `json:"notification_type"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	RelatedTask *int             `json:"related_task"`
	IsRead      bool             `json:"is_read"`
	CreatedAt   string           `json:"created_at"`
	TaskTitle   string           `json:"task_title,omitempty"`
}

// NotificationList is the envelope returned by the notifications endpoint.
type NotificationList struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unread_count"`
}
