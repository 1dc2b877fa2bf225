package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gianfig/TecnicasReal/internal/task/domain"
	"github.com/gianfig/TecnicasReal/internal/task/usecase/command"
	"github.com/gianfig/TecnicasReal/internal/task/usecase/query"
)

// TaskHandler handles HTTP requests for the task service
type TaskHandler struct {
	createHandler *command.CreateTaskHandler
	updateHandler *command.UpdateTaskHandler
	deleteHandler *command.DeleteTaskHandler

	getHandler  *query.GetTaskHandler
	listHandler *query.ListTasksHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(repo domain.TaskRepository) *TaskHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_service_requests_total",
			Help: "Total number of requests to the task service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "task_service_request_duration_seconds",
			Help:    "Duration of task service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &TaskHandler{
		createHandler:  command.NewCreateTaskHandler(repo),
		updateHandler:  command.NewUpdateTaskHandler(repo),
		deleteHandler:  command.NewDeleteTaskHandler(repo),
		getHandler:     query.NewGetTaskHandler(repo),
		listHandler:    query.NewListTasksHandler(repo),
		requestCounter: requestCounter,
		requestLatency: requestLatency,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *TaskHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// Welcome handles GET /
func (h *TaskHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{
		"mensaje": "API de Tareas",
		"version": "1.0",
	})
}

// ListTasks handles GET /tasks
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	h.listWithFilter(w, domain.FilterAll)
}

// ListCompleted handles GET /tasks/completed
func (h *TaskHandler) ListCompleted(w http.ResponseWriter, r *http.Request) {
	h.listWithFilter(w, domain.FilterCompleted)
}

// ListPending handles GET /tasks/pending
func (h *TaskHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	h.listWithFilter(w, domain.FilterPending)
}

func (h *TaskHandler) listWithFilter(w http.ResponseWriter, filter domain.TaskFilter) {
	tasks, err := h.listHandler.Handle(filter)
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, tasks)
}

// GetTask handles GET /tasks/{id}
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.getHandler.Handle(mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, task)
}

// CreateTask handles POST /tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var cmd command.CreateTaskCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.createHandler.Handle(cmd)
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}
	h.respondJSON(w, http.StatusCreated, task)
}

// UpdateTask handles PUT /tasks/{id}
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var cmd command.UpdateTaskCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	cmd.ID = mux.Vars(r)["id"]

	task, err := h.updateHandler.Handle(cmd)
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/{id}, returning the deleted task
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.deleteHandler.Handle(mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, statusForError(err), err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, task)
}

// HealthCheck handles GET /health
func (h *TaskHandler) HealthCheck(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			h.respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}

		h.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}

// statusForError maps domain sentinel errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *TaskHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *TaskHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all task service routes. The fixed-path listings
// must register before /tasks/{id} so mux does not swallow them.
func (h *TaskHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/", h.metricsMiddleware("/", h.Welcome)).Methods("GET")

	router.HandleFunc("/tasks", h.metricsMiddleware("/tasks", h.ListTasks)).Methods("GET")
	router.HandleFunc("/tasks", h.metricsMiddleware("/tasks", h.CreateTask)).Methods("POST")
	router.HandleFunc("/tasks/completed", h.metricsMiddleware("/tasks/completed", h.ListCompleted)).Methods("GET")
	router.HandleFunc("/tasks/pending", h.metricsMiddleware("/tasks/pending", h.ListPending)).Methods("GET")
	router.HandleFunc("/tasks/{id}", h.metricsMiddleware("/tasks/{id}", h.GetTask)).Methods("GET")
	router.HandleFunc("/tasks/{id}", h.metricsMiddleware("/tasks/{id}", h.UpdateTask)).Methods("PUT")
	router.HandleFunc("/tasks/{id}", h.metricsMiddleware("/tasks/{id}", h.DeleteTask)).Methods("DELETE")
}

// RegisterHealthCheck registers the health check endpoint
func (h *TaskHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", h.HealthCheck(db)).Methods("GET")
}
