package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kozaktomas/companion-backend/internal/config"
	"github.com/kozaktomas/companion-backend/internal/database/mock"
)

func newTestServer() (*Server, *mock.MockStore) {
	store := mock.NewMockStore()
	cfg := config.Load()
	return NewServer(cfg, store), store
}

func postJSON(t *testing.T, s *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	s.Router().ServeHTTP(recorder, req)
	return recorder
}

func TestServer_HealthCheck(t *testing.T) {
	s, _ := newTestServer()

	req := httptest.NewRequest("GET", "/api/health", nil)
	recorder := httptest.NewRecorder()
	s.Router().ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", recorder.Code)
	}
}

func TestServer_TaskRoundTrip(t *testing.T) {
	s, _ := newTestServer()

	recorder := postJSON(t, s, "/api/store-task", map[string]string{"message": "walk the dog"})
	if recorder.Code != http.StatusOK {
		t.Fatalf("store-task status = %d, want 200", recorder.Code)
	}

	recorder = postJSON(t, s, "/api/process-input", map[string]string{"text": "I need to walk my dog"})
	if recorder.Code != http.StatusOK {
		t.Fatalf("process-input status = %d, want 200", recorder.Code)
	}

	var body struct {
		Response string   `json:"response"`
		Tasks    []string `json:"tasks"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Response != "walk the dog" {
		t.Errorf("response = %q, want %q", body.Response, "walk the dog")
	}
}

func TestServer_CompleteTaskScenario(t *testing.T) {
	s, store := newTestServer()

	postJSON(t, s, "/api/store-task", map[string]string{"message": "walk the dog"})

	recorder := postJSON(t, s, "/api/process-input", map[string]string{
		"text": "I completed the task walk the dog",
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("process-input status = %d, want 200", recorder.Code)
	}

	var body map[string]string
	json.Unmarshal(recorder.Body.Bytes(), &body)
	if body["response"] != "Task 'walk the dog' has been deleted." {
		t.Errorf("response = %q, want deletion confirmation", body["response"])
	}

	tasks, _ := store.ListTasks(context.Background())
	if len(tasks) != 0 {
		t.Errorf("tasks after completion = %v, want empty", tasks)
	}
}

func TestServer_CORSPreflight(t *testing.T) {
	s, _ := newTestServer()

	req := httptest.NewRequest("OPTIONS", "/api/store-task", nil)
	req.Header.Set("Origin", "http://app.example.com")
	recorder := httptest.NewRecorder()
	s.Router().ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("preflight status = %d, want 200", recorder.Code)
	}
	if got := recorder.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestServer_UnknownRouteReturns404(t *testing.T) {
	s, _ := newTestServer()

	req := httptest.NewRequest("GET", "/api/unknown", nil)
	recorder := httptest.NewRecorder()
	s.Router().ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", recorder.Code)
	}
}
