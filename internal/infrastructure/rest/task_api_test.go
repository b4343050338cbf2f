package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/taskdesk/client-go/internal/core/domain"
)

func newTaskAPIServer(t *testing.T, handler http.HandlerFunc) (*TaskAPI, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	api := NewTaskAPI(NewClient(srv.URL, newMemStore(), nil, zerolog.Nop()))
	return api, srv.Close
}

func TestTaskAPI_GetReports_StatusQueryParam(t *testing.T) {
	var gotQuery string
	api, done := newTaskAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode([]domain.TaskReport{{ID: 1, Status: domain.ReportPendingReview}})
	})
	defer done()

	reports, err := api.GetReports(context.Background(), domain.ReportPendingReview)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if gotQuery != "status=pending_review" {
		t.Fatalf("expected status query param, got %q", gotQuery)
	}
	if len(reports) != 1 || reports[0].ID != 1 {
		t.Fatalf("unexpected reports: %+v", reports)
	}
}

func TestTaskAPI_GetReports_NoFilterOmitsParam(t *testing.T) {
	var gotQuery string
	api, done := newTaskAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode([]domain.TaskReport{})
	})
	defer done()

	if _, err := api.GetReports(context.Background(), ""); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if gotQuery != "" {
		t.Fatalf("expected no query string, got %q", gotQuery)
	}
}

func TestTaskAPI_MarkNotificationsAsRead_Body(t *testing.T) {
	var gotBody map[string][]int
	api, done := newTaskAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(data, &gotBody); err != nil {
			t.Errorf("invalid body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message":"Notificaciones marcadas como leídas"}`))
	})
	defer done()

	if err := api.MarkNotificationsAsRead(context.Background(), []int{4, 7}); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	ids := gotBody["notification_ids"]
	if len(ids) != 2 || ids[0] != 4 || ids[1] != 7 {
		t.Fatalf("unexpected payload: %+v", gotBody)
	}
}

func TestTaskAPI_CompleteTask(t *testing.T) {
	api, done := newTaskAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tasks/5/complete/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"message":"Reporte enviado","report":{"id":12,"status":"pending_review"}}`))
	})
	defer done()

	result, err := api.CompleteTask(context.Background(), 5, domain.TaskCompletionData{
		ReportText:  "done",
		HoursWorked: 2.5,
	})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if result.Report.ID != 12 || result.Report.Status != domain.ReportPendingReview {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestTaskAPI_RejectTask_RequiresReason(t *testing.T) {
	called := false
	api, done := newTaskAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	defer done()

	if err := api.RejectTask(context.Background(), 5, domain.TaskRejectionData{}); err == nil {
		t.Fatalf("expected validation error for empty reason")
	}
	if called {
		t.Fatalf("invalid rejection must not reach the server")
	}
}

func TestTaskAPI_GetNotifications(t *testing.T) {
	api, done := newTaskAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"notifications":[{"id":1,"title":"Nueva tarea","is_read":false}],"unread_count":1}`))
	})
	defer done()

	list, err := api.GetNotifications(context.Background())
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if list.UnreadCount != 1 || len(list.Notifications) != 1 {
		t.Fatalf("unexpected list: %+v", list)
	}
	if list.Notifications[0].Title != "Nueva tarea" {
		t.Fatalf("unexpected notification: %+v", list.Notifications[0])
	}
}
