package domain

// TaskDifficulty restricts which workers a task can be assigned to.
type TaskDifficulty string

const (
	DifficultyAdiestrado   TaskDifficulty = "adiestrado"
	DifficultyRegular      TaskDifficulty = "regular"
	DifficultyEspecialista TaskDifficulty = "especialista"
)

// TaskStatus is the lifecycle state of a task as reported by the server.
// Transition rules live server-side; the client only reflects them.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskAssigned   TaskStatus = "assigned"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskRejected   TaskStatus = "rejected"
	TaskCancelled  TaskStatus = "cancelled"
)

// Task is a unit of work created by a manager and assigned to a worker.
type Task struct {
	ID                int             `json:"id"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Difficulty        TaskDifficulty  `json:"difficulty"`
	Status            TaskStatus      `json:"status"`
	CreatedBy         int             `json:"created_by"`
	AssignedTo        *int            `json:"assigned_to"`
	CreatedAt         string          `json:"created_at"`
	AssignedAt        *string         `json:"assigned_at"`
	CompletedAt       *string         `json:"completed_at"`
	Deadline          *string         `json:"deadline"`
	EstimatedHours    float64         `json:"estimated_hours"`
	Priority          int             `json:"priority"`
	CreatedByName     string          `json:"created_by_name,omitempty"`
	AssignedToName    string          `json:"assigned_to_name,omitempty"`
	CurrentAssignment *TaskAssignment `json:"current_assignment,omitempty"`
}

// AssignmentStatus is the state of a single task-to-worker assignment.
type AssignmentStatus string

const (
	AssignmentAssigned   AssignmentStatus = "assigned"
	AssignmentRejected   AssignmentStatus = "rejected"
	AssignmentInProgress AssignmentStatus = "in_progress"
	AssignmentCompleted  AssignmentStatus = "completed"
	AssignmentApproved   AssignmentStatus = "approved"
)

// TaskAssignment links a task to the worker currently responsible for it.
type TaskAssignment struct {
	ID             int              `json:"id"`
	Task           int              `json:"task"`
	AssignedTo     int              `json:"assigned_to"`
	AssignedBy     int              `json:"assigned_by"`
	Status         AssignmentStatus `json:"status"`
	AssignedAt     string           `json:"assigned_at"`
	RejectedAt     *string          `json:"rejected_at"`
	RejectedReason *string          `json:"rejected_reason"`
	StartedAt      *string          `json:"started_at"`
	CompletedAt    *string          `json:"completed_at"`
	ApprovedAt     *string          `json:"approved_at"`
	ApprovedBy     *int             `json:"approved_by"`
	TaskTitle      string           `json:"task_title,omitempty"`
	TaskDifficulty string           `json:"task_difficulty,omitempty"`
	AssignedToName string           `json:"assigned_to_name,omitempty"`
	AssignedByName string           `json:"assigned_by_name,omitempty"`
	ApprovedByName string           `json:"approved_by_name,omitempty"`
}

// CreateTaskData is the payload for creating a task. Deadline is optional.
type CreateTaskData struct {
	Title          string         `json:"title" validate:"required"`
	Description    string         `json:"description" validate:"required"`
	Difficulty     TaskDifficulty `json:"difficulty" validate:"required,oneof=adiestrado regular especialista"`
	Deadline       *string        `json:"deadline,omitempty"`
	EstimatedHours float64        `json:"estimated_hours" validate:"required,gt=0"`
	Priority       int            `json:"priority" validate:"required,min=1"`
}

// UpdateTaskData is a partial task update. Nil fields are left untouched.
type UpdateTaskData struct {
	Title          *string         `json:"title,omitempty"`
	Description    *string         `json:"description,omitempty"`
	Difficulty     *TaskDifficulty `json:"difficulty,omitempty" validate:"omitempty,oneof=adiestrado regular especialista"`
	Deadline       *string         `json:"deadline,omitempty"`
	EstimatedHours *float64        `json:"estimated_hours,omitempty" validate:"omitempty,gt=0"`
	Priority       *int            `json:"priority,omitempty" validate:"omitempty,min=1"`
}

// TaskRejectionData is the payload a worker submits to reject an assignment.
type TaskRejectionData struct {
	Reason string `json:"reason" validate:"required"`
}

// TaskCompletionData is the payload a worker submits when finishing a task.
// It produces a TaskReport server-side.
type TaskCompletionData struct {
	ReportText       string  `json:"report_text" validate:"required"`
	HoursWorked      float64 `json:"hours_worked" validate:"required,gt=0"`
	ChallengesFaced  string  `json:"challenges_faced,omitempty"`
	SolutionsApplied string  `json:"solutions_applied,omitempty"`
}
