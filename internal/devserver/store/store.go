// Package store holds the dev server's in-memory fixture data. It backs
// the local fixture API so the client SDK can be exercised end-to-end
// without the real backend; it does not reproduce the production
// assignment engine, only plausible canned behaviour.
package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskdesk/client-go/internal/core/domain"
)

type account struct {
	user         domain.User
	passwordHash []byte
}

// Store is a mutex-guarded fixture dataset: users, tasks, assignments,
// reports and notifications, pre-seeded with one user per role.
type Store struct {
	mu            sync.Mutex
	accounts      map[int]*account
	tasks         map[int]*domain.Task
	assignments   map[int]*domain.TaskAssignment
	reports       map[int]*domain.TaskReport
	notifications map[int]*domain.Notification
	nextID        int
}

// New returns a Store seeded with fixture users and a handful of tasks.
// Every seeded account uses the password "taskdesk".
func New() *Store {
	s := &Store{
		accounts:      make(map[int]*account),
		tasks:         make(map[int]*domain.Task),
		assignments:   make(map[int]*domain.TaskAssignment),
		reports:       make(map[int]*domain.TaskReport),
		notifications: make(map[int]*domain.Notification),
		nextID:        1,
	}
	s.seed()
	return s
}

func (s *Store) seed() {
	seedUsers := []struct {
		username, first, last string
		role                  domain.Role
	}{
		{"root", "Rosa", "Ortiz", domain.RoleSuperuser},
		{"admin", "Andres", "Mora", domain.RoleAdmin},
		{"maria", "Maria", "Lopez", domain.RoleRegular},
		{"pedro", "Pedro", "Diaz", domain.RoleAdiestrado},
		{"lucia", "Lucia", "Vega", domain.RoleEspecialista},
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("taskdesk"), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("store: seed password hash: %v", err))
	}
	now := time.Now().UTC().Format(time.RFC3339)
	for _, u := range seedUsers {
		id := s.id()
		s.accounts[id] = &account{
			passwordHash: hash,
			user: domain.User{
				ID:        id,
				Username:  u.username,
				Email:     u.username + "@taskdesk.local",
				FirstName: u.first,
				LastName:  u.last,
				Profile: domain.Profile{
					Role:               u.role,
					CreatedAt:          now,
					UpdatedAt:          now,
					IsActiveWorker:     true,
					MaxTasks:           3,
					CanAcceptMoreTasks: true,
				},
			},
		}
	}

	adminID := s.userIDByUsername("admin")
	seedTasks := []struct {
		title      string
		difficulty domain.TaskDifficulty
		assignee   string
	}{
		{"Inventario de bodega", domain.DifficultyRegular, "maria"},
		{"Revisar cableado", domain.DifficultyEspecialista, "lucia"},
		{"Limpieza de patio", domain.DifficultyAdiestrado, ""},
	}
	for i, st := range seedTasks {
		id := s.id()
		task := &domain.Task{
			ID:             id,
			Title:          st.title,
			Description:    "Tarea de ejemplo para desarrollo local.",
			Difficulty:     st.difficulty,
			Status:         domain.TaskPending,
			CreatedBy:      adminID,
			CreatedAt:      now,
			EstimatedHours: float64(2 + i),
			Priority:       1 + i,
		}
		s.tasks[id] = task
		if st.assignee != "" {
			s.assign(task, s.userIDByUsername(st.assignee), adminID)
		}
	}
}

func (s *Store) id() int {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Store) userIDByUsername(username string) int {
	for id, acc := range s.accounts {
		if acc.user.Username == username {
			return id
		}
	}
	return 0
}

// assign marks a task assigned to a worker. Caller holds the lock.
func (s *Store) assign(task *domain.Task, workerID, byID int) {
	now := time.Now().UTC().Format(time.RFC3339)
	aid := s.id()
	s.assignments[aid] = &domain.TaskAssignment{
		ID:         aid,
		Task:       task.ID,
		AssignedTo: workerID,
		AssignedBy: byID,
		Status:     domain.AssignmentAssigned,
		AssignedAt: now,
		TaskTitle:  task.Title,
	}
	task.Status = domain.TaskAssigned
	task.AssignedTo = &workerID
	task.AssignedAt = &now
	if acc, ok := s.accounts[workerID]; ok {
		acc.user.Profile.TasksAssigned++
		acc.user.Profile.CurrentTaskCount++
		acc.user.Profile.CanAcceptMoreTasks = acc.user.Profile.CurrentTaskCount < acc.user.Profile.MaxTasks
		task.AssignedToName = acc.user.FirstName + " " + acc.user.LastName
	}
	s.notify(workerID, domain.NotifyTaskAssigned, "Nueva tarea asignada", task)
}

func (s *Store) notify(userID int, typ domain.NotificationType, title string, task *domain.Task) {
	nid := s.id()
	n := &domain.Notification{
		ID:        nid,
		User:      userID,
		Type:      typ,
		Title:     title,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if task != nil {
		n.RelatedTask = &task.ID
		n.TaskTitle = task.Title
		n.Message = task.Title
	}
	s.notifications[nid] = n
}

// Authenticate checks a credential pair against the fixture accounts.
func (s *Store) Authenticate(username, password string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.accounts {
		if acc.user.Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)) != nil {
			return nil, domain.ErrInvalidCredentials
		}
		u := acc.user
		return &u, nil
	}
	return nil, domain.ErrInvalidCredentials
}

// UserByID returns a copy of the stored user.
func (s *Store) UserByID(id int) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := acc.user
	return &u, nil
}

// Users returns all accounts ordered by id.
func (s *Store) Users() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]domain.User, 0, len(s.accounts))
	for _, acc := range s.accounts {
		users = append(users, acc.user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

// CreateUser adds an account.
func (s *Store) CreateUser(data domain.CreateUserData) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userIDByUsername(data.Username) != 0 {
		return nil, domain.ErrUserExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	id := s.id()
	acc := &account{
		passwordHash: hash,
		user: domain.User{
			ID:        id,
			Username:  data.Username,
			Email:     data.Email,
			FirstName: data.FirstName,
			LastName:  data.LastName,
			Profile: domain.Profile{
				Role:               data.Role,
				CreatedAt:          now,
				UpdatedAt:          now,
				IsActiveWorker:     true,
				MaxTasks:           3,
				CanAcceptMoreTasks: true,
			},
		},
	}
	s.accounts[id] = acc
	u := acc.user
	return &u, nil
}

// UpdateUser edits an account in place.
func (s *Store) UpdateUser(id int, data domain.UpdateUserData) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	acc.user.Username = data.Username
	acc.user.Email = data.Email
	acc.user.FirstName = data.FirstName
	acc.user.LastName = data.LastName
	acc.user.Profile.Role = data.Role
	if data.IsActiveWorker != nil {
		acc.user.Profile.IsActiveWorker = *data.IsActiveWorker
	}
	if data.MaxTasks != nil {
		acc.user.Profile.MaxTasks = *data.MaxTasks
	}
	acc.user.Profile.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	u := acc.user
	return &u, nil
}

// DeleteUser removes an account. Deleting your own account is refused,
// mirroring the backend guard.
func (s *Store) DeleteUser(id, requesterID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[id]; !ok {
		return domain.ErrUserNotFound
	}
	if id == requesterID {
		return domain.ErrSelfDelete
	}
	delete(s.accounts, id)
	return nil
}

// Tasks returns every task ordered by id.
func (s *Store) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := make([]domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, *t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}

// TaskByID returns a copy of one task.
func (s *Store) TaskByID(id int) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	copy := *t
	return &copy, nil
}

// CreateTask stores a task and assigns it to the first active worker whose
// role matches the difficulty and who can still accept work.
func (s *Store) CreateTask(data domain.CreateTaskData, creatorID int) *domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC().Format(time.RFC3339)
	id := s.id()
	task := &domain.Task{
		ID:             id,
		Title:          data.Title,
		Description:    data.Description,
		Difficulty:     data.Difficulty,
		Status:         domain.TaskPending,
		CreatedBy:      creatorID,
		CreatedAt:      now,
		Deadline:       data.Deadline,
		EstimatedHours: data.EstimatedHours,
		Priority:       data.Priority,
	}
	s.tasks[id] = task
	if workerID := s.eligibleWorker(data.Difficulty); workerID != 0 {
		s.assign(task, workerID, creatorID)
	}
	copy := *task
	return &copy
}

func (s *Store) eligibleWorker(difficulty domain.TaskDifficulty) int {
	ids := make([]int, 0, len(s.accounts))
	for id := range s.accounts {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		p := s.accounts[id].user.Profile
		if string(p.Role) == string(difficulty) && p.IsActiveWorker && p.CanAcceptMoreTasks {
			return id
		}
	}
	return 0
}

// UpdateTask applies a partial update.
func (s *Store) UpdateTask(id int, data domain.UpdateTaskData) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if data.Title != nil {
		t.Title = *data.Title
	}
	if data.Description != nil {
		t.Description = *data.Description
	}
	if data.Difficulty != nil {
		t.Difficulty = *data.Difficulty
	}
	if data.Deadline != nil {
		t.Deadline = data.Deadline
	}
	if data.EstimatedHours != nil {
		t.EstimatedHours = *data.EstimatedHours
	}
	if data.Priority != nil {
		t.Priority = *data.Priority
	}
	copy := *t
	return &copy, nil
}

// DeleteTask removes a task and its assignments.
func (s *Store) DeleteTask(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(s.tasks, id)
	for aid, a := range s.assignments {
		if a.Task == id {
			delete(s.assignments, aid)
		}
	}
	return nil
}

// RejectTask lets the assigned worker refuse a task with a reason.
func (s *Store) RejectTask(taskID, workerID int, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[taskID]
	if !ok {
		return domain.ErrTaskNotFound
	}
	a := s.activeAssignment(taskID, workerID)
	if a == nil {
		return domain.ErrTaskNotFound
	}
	now := time.Now().UTC().Format(time.RFC3339)
	a.Status = domain.AssignmentRejected
	a.RejectedAt = &now
	a.RejectedReason = &reason
	t.Status = domain.TaskRejected
	if acc, ok := s.accounts[workerID]; ok {
		acc.user.Profile.TasksRejected++
		acc.user.Profile.CurrentTaskCount--
		acc.user.Profile.CanAcceptMoreTasks = acc.user.Profile.CurrentTaskCount < acc.user.Profile.MaxTasks
	}
	s.notify(t.CreatedBy, domain.NotifyTaskRejected, "Tarea rechazada", t)
	return nil
}

// CompleteTask closes the worker's assignment and produces a report.
func (s *Store) CompleteTask(taskID, workerID int, data domain.TaskCompletionData) (*domain.TaskReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[taskID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	a := s.activeAssignment(taskID, workerID)
	if a == nil {
		return nil, domain.ErrTaskNotFound
	}
	now := time.Now().UTC().Format(time.RFC3339)
	a.Status = domain.AssignmentCompleted
	a.CompletedAt = &now
	t.Status = domain.TaskCompleted
	t.CompletedAt = &now
	if acc, ok := s.accounts[workerID]; ok {
		acc.user.Profile.TasksCompleted++
		acc.user.Profile.CurrentTaskCount--
		acc.user.Profile.CanAcceptMoreTasks = acc.user.Profile.CurrentTaskCount < acc.user.Profile.MaxTasks
	}

	rid := s.id()
	report := &domain.TaskReport{
		ID:               rid,
		TaskAssignment:   a.ID,
		ReportText:       data.ReportText,
		HoursWorked:      data.HoursWorked,
		ChallengesFaced:  data.ChallengesFaced,
		SolutionsApplied: data.SolutionsApplied,
		Status:           domain.ReportPendingReview,
		SubmittedAt:      now,
		TaskTitle:        t.Title,
	}
	s.reports[rid] = report
	s.notify(t.CreatedBy, domain.NotifyReportSubmitted, "Reporte enviado", t)
	copy := *report
	return &copy, nil
}

func (s *Store) activeAssignment(taskID, workerID int) *domain.TaskAssignment {
	for _, a := range s.assignments {
		if a.Task == taskID && a.AssignedTo == workerID && a.Status == domain.AssignmentAssigned {
			return a
		}
	}
	return nil
}

// Reports returns reports, filtered by status when non-empty.
func (s *Store) Reports(status domain.ReportStatus) []domain.TaskReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	reports := make([]domain.TaskReport, 0, len(s.reports))
	for _, r := range s.reports {
		if status != "" && r.Status != status {
			continue
		}
		reports = append(reports, *r)
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].ID < reports[j].ID })
	return reports
}

// ReviewReport records a manager's decision on a report.
func (s *Store) ReviewReport(reportID int, action domain.ReviewAction, notes string, reviewerID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[reportID]
	if !ok {
		return domain.ErrReportNotFound
	}
	now := time.Now().UTC().Format(time.RFC3339)
	switch action {
	case domain.ReviewApprove:
		r.Status = domain.ReportApproved
	case domain.ReviewReject:
		r.Status = domain.ReportRejected
	case domain.ReviewNeedsCorrection:
		r.Status = domain.ReportNeedsCorrection
	}
	r.ReviewedAt = &now
	r.ReviewedBy = &reviewerID
	r.ReviewNotes = notes
	if a, ok := s.assignments[r.TaskAssignment]; ok {
		if action == domain.ReviewApprove {
			a.Status = domain.AssignmentApproved
			a.ApprovedAt = &now
			a.ApprovedBy = &reviewerID
		}
		s.notify(a.AssignedTo, domain.NotifyTaskApproved, "Reporte revisado", s.tasks[a.Task])
	}
	return nil
}

// Notifications returns one user's notifications, newest first, plus the
// unread count.
func (s *Store) Notifications(userID int) domain.NotificationList {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := domain.NotificationList{Notifications: []domain.Notification{}}
	for _, n := range s.notifications {
		if n.User != userID {
			continue
		}
		list.Notifications = append(list.Notifications, *n)
		if !n.IsRead {
			list.UnreadCount++
		}
	}
	sort.Slice(list.Notifications, func(i, j int) bool {
		return list.Notifications[i].ID > list.Notifications[j].ID
	})
	return list
}

// MarkNotificationsRead flags the given ids read, scoped to one user.
func (s *Store) MarkNotificationsRead(userID int, ids []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if n, ok := s.notifications[id]; ok && n.User == userID {
			n.IsRead = true
		}
	}
}

// Statistics aggregates task counts and leaderboards from the fixtures.
func (s *Store) Statistics() domain.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := domain.Statistics{
		TopCompleters: []domain.RankedUser{},
		TopRejecters:  []domain.RankedUser{},
	}
	for _, t := range s.tasks {
		stats.General.TotalTasks++
		switch t.Status {
		case domain.TaskCompleted:
			stats.General.CompletedTasks++
		case domain.TaskPending:
			stats.General.PendingTasks++
		case domain.TaskAssigned:
			stats.General.AssignedTasks++
		}
	}
	if stats.General.TotalTasks > 0 {
		stats.General.CompletionRate = float64(stats.General.CompletedTasks) / float64(stats.General.TotalTasks) * 100
	}

	users := make([]domain.User, 0, len(s.accounts))
	for _, acc := range s.accounts {
		users = append(users, acc.user)
	}
	byCompleted := append([]domain.User(nil), users...)
	sort.Slice(byCompleted, func(i, j int) bool {
		return byCompleted[i].Profile.TasksCompleted > byCompleted[j].Profile.TasksCompleted
	})
	byRejected := append([]domain.User(nil), users...)
	sort.Slice(byRejected, func(i, j int) bool {
		return byRejected[i].Profile.TasksRejected > byRejected[j].Profile.TasksRejected
	})
	for i, u := range byCompleted {
		if i == 5 {
			break
		}
		stats.TopCompleters = append(stats.TopCompleters, rank(u))
	}
	for i, u := range byRejected {
		if i == 5 {
			break
		}
		stats.TopRejecters = append(stats.TopRejecters, rank(u))
	}
	return stats
}

func rank(u domain.User) domain.RankedUser {
	return domain.RankedUser{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Profile: domain.RankedProfile{
			Role:               u.Profile.Role,
			TasksCompleted:     u.Profile.TasksCompleted,
			TasksRejected:      u.Profile.TasksRejected,
			CurrentTaskCount:   u.Profile.CurrentTaskCount,
			CanAcceptMoreTasks: u.Profile.CanAcceptMoreTasks,
		},
	}
}
