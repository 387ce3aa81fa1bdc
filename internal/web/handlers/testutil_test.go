package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kozaktomas/companion-backend/internal/config"
)

// testResponses returns the embedded reply phrases used by the handlers.
func testResponses() config.ResponsesConfig {
	return config.Load().Responses
}

// jsonRequest creates a POST request with a JSON body.
func jsonRequest(t *testing.T, path string, body any) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// rawRequest creates a POST request with a raw string body.
func rawRequest(path, body string) *http.Request {
	req := httptest.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// parseJSONResponse parses a JSON response body into the target type.
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code.
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// assertJSONField checks a single string field of a JSON object response.
func assertJSONField(t *testing.T, recorder *httptest.ResponseRecorder, field, expected string) {
	t.Helper()
	var body map[string]any
	parseJSONResponse(t, recorder, &body)
	got, _ := body[field].(string)
	if got != expected {
		t.Errorf("expected %s=%q, got %q\nBody: %s", field, expected, got, recorder.Body.String())
	}
}
