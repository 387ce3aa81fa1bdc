package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/kozaktomas/companion-backend/internal/config"
	"github.com/kozaktomas/companion-backend/internal/constants"
	"github.com/kozaktomas/companion-backend/internal/database"
	"github.com/kozaktomas/companion-backend/internal/intent"
)

// ProcessHandler answers natural-language task queries and completion reports.
type ProcessHandler struct {
	tasks     database.TaskStore
	matcher   *intent.Matcher
	responses config.ResponsesConfig
}

// NewProcessHandler creates a new process handler.
func NewProcessHandler(tasks database.TaskStore, matcher *intent.Matcher, responses config.ResponsesConfig) *ProcessHandler {
	return &ProcessHandler{
		tasks:     tasks,
		matcher:   matcher,
		responses: responses,
	}
}

// ProcessInputRequest is the request body for POST /api/process-input.
type ProcessInputRequest struct {
	Text string `json:"text"`
}

// completedTaskName extracts the task name from a completion report.
// The whole comparison runs on the lowercased utterance, so the recovered
// name is lowercased too; deletion matches whatever casing was stored.
func completedTaskName(text string) (string, bool) {
	lower := strings.ToLower(text)
	if !strings.Contains(lower, constants.CompletionPhrase) {
		return "", false
	}
	return strings.TrimSpace(strings.ReplaceAll(lower, constants.CompletionPrefix, "")), true
}

// Input handles POST /api/process-input. Completion reports ("I completed
// the task ...") delete the named task directly; anything else is matched
// against the stored tasks by lexical similarity.
func (h *ProcessHandler) Input(w http.ResponseWriter, r *http.Request) {
	var req ProcessInputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	if name, ok := completedTaskName(req.Text); ok {
		h.completeTask(w, r, name)
		return
	}

	tasks, err := h.tasks.ListTasks(r.Context())
	if err != nil {
		log.Printf("process-input: listing tasks: %v", err)
	}
	if len(tasks) == 0 {
		respondJSON(w, http.StatusOK, map[string]string{"response": h.responses.NoTasks})
		return
	}

	response := h.matcher.Match(req.Text, tasks)
	respondJSON(w, http.StatusOK, map[string]any{
		"response": response,
		"tasks":    tasks,
	})
}

// completeTask deletes the named task and reports the outcome.
func (h *ProcessHandler) completeTask(w http.ResponseWriter, r *http.Request, name string) {
	found, err := h.tasks.DeleteTask(r.Context(), name)
	if err != nil {
		log.Printf("process-input: deleting task %q: %v", sanitizeForLog(name), err)
	}
	if found {
		respondJSON(w, http.StatusOK, map[string]string{
			"response": fmt.Sprintf(h.responses.TaskDeleted, name),
		})
		return
	}
	respondJSON(w, http.StatusNotFound, map[string]string{
		"response": fmt.Sprintf(h.responses.TaskNotFound, name),
	})
}
