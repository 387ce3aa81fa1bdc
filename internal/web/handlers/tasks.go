package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/kozaktomas/companion-backend/internal/config"
	"github.com/kozaktomas/companion-backend/internal/database"
)

// TasksHandler handles task storage endpoints.
type TasksHandler struct {
	tasks     database.TaskStore
	responses config.ResponsesConfig
}

// NewTasksHandler creates a new tasks handler.
func NewTasksHandler(tasks database.TaskStore, responses config.ResponsesConfig) *TasksHandler {
	return &TasksHandler{
		tasks:     tasks,
		responses: responses,
	}
}

// StoreTaskRequest is the request body for POST /api/store-task.
type StoreTaskRequest struct {
	Message string `json:"message"`
}

// Store handles POST /api/store-task. The creation timestamp is assigned
// server-side; clients only supply the task text.
func (h *TasksHandler) Store(w http.ResponseWriter, r *http.Request) {
	var req StoreTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	if req.Message == "" {
		respondError(w, http.StatusBadRequest, "Task is required.")
		return
	}

	// Storage failures are logged but not surfaced; the companion app
	// treats the acknowledgment as best-effort.
	if err := h.tasks.AddTask(r.Context(), req.Message); err != nil {
		log.Printf("store-task: storing %q: %v", sanitizeForLog(req.Message), err)
	}

	respondMessage(w, http.StatusOK, h.responses.TaskStored)
}
