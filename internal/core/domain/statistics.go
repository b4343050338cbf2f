package domain

// GeneralStatistics aggregates task counts across the whole system.
type GeneralStatistics struct {
	TotalTasks     int     `json:"total_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	PendingTasks   int     `json:"pending_tasks"`
	AssignedTasks  int     `json:"assigned_tasks"`
	CompletionRate float64 `json:"completion_rate"`
}

// RankedProfile is the trimmed profile embedded in leaderboard entries.
type RankedProfile struct {
	Role               Role `json:"role"`
	TasksCompleted     int  `json:"tasks_completed"`
	TasksRejected      int  `json:"tasks_rejected"`
	CurrentTaskCount   int  `json:"current_task_count"`
	CanAcceptMoreTasks bool `json:"can_accept_more_tasks"`
}

// RankedUser is a leaderboard entry in the statistics view.
type RankedUser struct {
	ID        int           `json:"id"`
	Username  string        `json:"username"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Email     string        `json:"email"`
	Profile   RankedProfile `json:"profile"`
}

// Statistics is the full payload of the statistics endpoint.
type Statistics struct {
	General       GeneralStatistics `json:"general"`
	TopCompleters []RankedUser      `json:"top_completers"`
	TopRejecters  []RankedUser      `json:"top_rejecters"`
}
