package domain

// Role is the closed set of roles the backend assigns to a user profile.
type Role string

const (
	RoleAdiestrado   Role = "adiestrado"
	RoleRegular      Role = "regular"
	RoleEspecialista Role = "especialista"
	RoleAdmin        Role = "admin"
	RoleSuperuser    Role = "superuser"
)

// Profile carries the worker metrics the server computes for a user.
// All counters are advisory on the client; the server is the authority.
type Profile struct {
	Role               Role   `json:"role"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
	TasksAssigned      int    `json:"tasks_assigned"`
	TasksCompleted     int    `json:"tasks_completed"`
	TasksRejected      int    `json:"tasks_rejected"`
	IsActiveWorker     bool   `json:"is_active_worker"`
	MaxTasks           int    `json:"max_tasks"`
	CurrentTaskCount   int    `json:"current_task_count"`
	CanAcceptMoreTasks bool   `json:"can_accept_more_tasks"`
}

// User models an authenticated actor in the system.
type User struct {
	ID        int     `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Profile   Profile `json:"profile"`
}

// IsManager reports whether the user holds the manager capability set:
// task administration, report review and statistics.
func IsManager(u *User) bool {
	if u == nil {
		return false
	}
	return u.Profile.Role == RoleAdmin || u.Profile.Role == RoleSuperuser
}

// IsWorker reports whether the user holds the worker capability set:
// viewing and acting on their own assigned tasks.
func IsWorker(u *User) bool {
	if u == nil {
		return false
	}
	switch u.Profile.Role {
	case RoleAdiestrado, RoleRegular, RoleEspecialista:
		return true
	}
	return false
}

// CanManageUsers reports whether the user may create, edit and delete
// accounts. Only superusers may, and only they may assign elevated roles.
// These predicates gate UI surfaces only; the server enforces for real.
func CanManageUsers(u *User) bool {
	return u != nil && u.Profile.Role == RoleSuperuser
}

// CreateUserData is the payload for creating an account.
type CreateUserData struct {
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Role      Role   `json:"role" validate:"required,oneof=adiestrado regular especialista admin superuser"`
}

// UpdateUserData is the payload for editing an account. Pointer fields are
// omitted from the wire when nil, matching the backend's partial update.
type UpdateUserData struct {
	Username       string `json:"username" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	Role           Role   `json:"role" validate:"required,oneof=adiestrado regular especialista admin superuser"`
	IsActiveWorker *bool  `json:"is_active_worker,omitempty"`
	MaxTasks       *int   `json:"max_tasks,omitempty"`
}
