package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskdesk/client-go/internal/core/domain"
	"github.com/taskdesk/client-go/internal/core/ports"
)

type stubTaskAPI struct {
	mu     sync.Mutex
	list   domain.NotificationList
	err    error
	polled int
}

func (s *stubTaskAPI) setUnread(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list.UnreadCount = n
}

func (s *stubTaskAPI) GetNotifications(_ context.Context) (*domain.NotificationList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polled++
	if s.err != nil {
		return nil, s.err
	}
	list := s.list
	return &list, nil
}

func (s *stubTaskAPI) GetTasks(_ context.Context) ([]domain.Task, error) { return nil, nil }
func (s *stubTaskAPI) CreateTask(_ context.Context, _ domain.CreateTaskData) (*ports.TaskMutationResult, error) {
	return nil, nil
}
func (s *stubTaskAPI) GetTask(_ context.Context, _ int) (*domain.Task, error) { return nil, nil }
func (s *stubTaskAPI) UpdateTask(_ context.Context, _ int, _ domain.UpdateTaskData) (*ports.TaskMutationResult, error) {
	return nil, nil
}
func (s *stubTaskAPI) DeleteTask(_ context.Context, _ int) (string, error) { return "", nil }
func (s *stubTaskAPI) RejectTask(_ context.Context, _ int, _ domain.TaskRejectionData) error {
	return nil
}
func (s *stubTaskAPI) CompleteTask(_ context.Context, _ int, _ domain.TaskCompletionData) (*ports.CompletionResult, error) {
	return nil, nil
}
func (s *stubTaskAPI) GetReports(_ context.Context, _ domain.ReportStatus) ([]domain.TaskReport, error) {
	return nil, nil
}
func (s *stubTaskAPI) ReviewReport(_ context.Context, _ int, _ domain.ReviewReportData) error {
	return nil
}
func (s *stubTaskAPI) MarkNotificationsAsRead(_ context.Context, _ []int) error { return nil }
func (s *stubTaskAPI) GetStatistics(_ context.Context) (*domain.Statistics, error) {
	return nil, nil
}

func TestWatcher_NotifiesOnUnreadChange(t *testing.T) {
	api := &stubTaskAPI{}
	api.setUnread(2)
	watcher := NewWatcher(api, 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var seen []int
	go watcher.Run(ctx, func(list domain.NotificationList) {
		mu.Lock()
		seen = append(seen, list.UnreadCount)
		mu.Unlock()
	})

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 1 && seen[0] == 2
	})

	api.setUnread(5)
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 2 && seen[1] == 5
	})

	// Unchanged count produces no further callbacks.
	time.Sleep(25 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 {
		t.Fatalf("expected exactly 2 notifications, got %v", seen)
	}
}

func TestWatcher_PollFailuresKeepPolling(t *testing.T) {
	api := &stubTaskAPI{err: errors.New("backend down")}
	watcher := NewWatcher(api, 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go watcher.Run(ctx, func(domain.NotificationList) {
		t.Errorf("callback must not fire on failed polls")
	})

	waitFor(t, func() bool {
		api.mu.Lock()
		defer api.mu.Unlock()
		return api.polled >= 3
	})
}

func TestWatcher_StopsOnCancel(t *testing.T) {
	api := &stubTaskAPI{}
	watcher := NewWatcher(api, time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		watcher.Run(ctx, func(domain.NotificationList) {})
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("watcher did not stop after cancel")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition never met")
}
