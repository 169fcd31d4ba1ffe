// Package tasks tracks agent task lifecycles: creation, progress,
// completion and failure, with SQLite persistence and in-memory access to
// the currently active set. A Tracker is an explicitly constructed
// dependency, not a process-wide singleton, so tests and services own
// their instances.
package tasks

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Type identifies the kind of agent activity a task records.
type Type string

const (
	TypeWebScraping        Type = "web_scraping"
	TypeEmailOutreach      Type = "email_outreach"
	TypeLinkedInResearch   Type = "linkedin_research"
	TypeLeadQualification  Type = "lead_qualification"
	TypeMarketAnalysis     Type = "market_analysis"
	TypeCompetitorResearch Type = "competitor_research"
)

// Task is a single tracked agent activity.
type Task struct {
	ID          string                 `json:"id"`
	Type        Type                   `json:"task_type"`
	Description string                 `json:"description"`
	Status      Status                 `json:"status"`
	CreatedAt   time.Time              `json:"created_at"`
	StartedAt   *time.Time             `json:"started_at,omitempty"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	Result      map[string]interface{} `json:"result,omitempty"`
	Error       string                 `json:"error,omitempty"`
	Progress    int                    `json:"progress_percentage"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// Stats summarizes tracked tasks.
type Stats struct {
	TotalTasks     int     `json:"total_tasks"`
	ActiveTasks    int     `json:"active_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	FailedTasks    int     `json:"failed_tasks"`
	SuccessRate    float64 `json:"success_rate"`
}

// Tracker records agent tasks in SQLite and keeps the active set in
// memory. Safe for concurrent use.
type Tracker struct {
	db      *sql.DB
	mu      sync.Mutex
	active  map[string]*Task
	history []*Task
}

// NewTracker opens (or creates) the task database at path and initializes
// the schema. Use ":memory:" for an ephemeral tracker in tests.
func NewTracker(path string) (*Tracker, error) {
	if path == "" {
		return nil, fmt.Errorf("task database path is required")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open task database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS agent_tasks (
		id                  TEXT PRIMARY KEY,
		task_type           TEXT NOT NULL,
		description         TEXT NOT NULL,
		status              TEXT NOT NULL,
		created_at          DATETIME NOT NULL,
		started_at          DATETIME,
		completed_at        DATETIME,
		result              TEXT,
		error               TEXT,
		progress_percentage INTEGER DEFAULT 0,
		metadata            TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_agent_tasks_created_at ON agent_tasks(created_at);
	CREATE INDEX IF NOT EXISTS idx_agent_tasks_status ON agent_tasks(status);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize task schema: %w", err)
	}

	log.Printf("[TaskTracker] Initialized task database: %s", path)

	return &Tracker{
		db:     db,
		active: make(map[string]*Task),
	}, nil
}

// Close closes the underlying database.
func (t *Tracker) Close() error {
	return t.db.Close()
}

// Create registers a new pending task and persists it.
func (t *Tracker) Create(taskType Type, description string, metadata map[string]interface{}) (*Task, error) {
	task := &Task{
		ID:          uuid.NewString(),
		Type:        taskType,
		Description: description,
		Status:      StatusPending,
		CreatedAt:   time.Now().UTC(),
		Metadata:    metadata,
	}

	if err := t.insert(task); err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.active[task.ID] = task
	t.mu.Unlock()

	log.Printf("[TaskTracker] Created task: type=%s, description=%s", taskType, description)
	return task, nil
}

// Start marks a task as running.
func (t *Tracker) Start(id string) error {
	return t.mutate(id, func(task *Task) {
		now := time.Now().UTC()
		task.Status = StatusRunning
		task.StartedAt = &now
		task.Progress = 10
		log.Printf("[TaskTracker] Started task: %s", task.Description)
	})
}

// UpdateProgress updates a running task's progress percentage, clamped to
// [0, 100]. An optional note is stored in the metadata.
func (t *Tracker) UpdateProgress(id string, progress int, note string) error {
	return t.mutate(id, func(task *Task) {
		if progress < 0 {
			progress = 0
		}
		if progress > 100 {
			progress = 100
		}
		task.Progress = progress
		if note != "" {
			if task.Metadata == nil {
				task.Metadata = make(map[string]interface{})
			}
			task.Metadata["status_update"] = note
		}
	})
}

// Complete marks a task as completed with its result and moves it from
// the active set to history.
func (t *Tracker) Complete(id string, result map[string]interface{}) error {
	return t.finish(id, func(task *Task) {
		now := time.Now().UTC()
		task.Status = StatusCompleted
		task.CompletedAt = &now
		task.Progress = 100
		task.Result = result
		log.Printf("[TaskTracker] Completed task: %s", task.Description)
	})
}

// Fail marks a task as failed and moves it to history.
func (t *Tracker) Fail(id string, errMsg string) error {
	return t.finish(id, func(task *Task) {
		now := time.Now().UTC()
		task.Status = StatusFailed
		task.CompletedAt = &now
		task.Error = errMsg
		log.Printf("[TaskTracker] Failed task: %s - %s", task.Description, errMsg)
	})
}

// Cancel marks a task as cancelled and moves it to history.
func (t *Tracker) Cancel(id string) error {
	return t.finish(id, func(task *Task) {
		now := time.Now().UTC()
		task.Status = StatusCancelled
		task.CompletedAt = &now
		log.Printf("[TaskTracker] Cancelled task: %s", task.Description)
	})
}

// Active returns a snapshot of all currently active tasks.
func (t *Tracker) Active() []Task {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Task, 0, len(t.active))
	for _, task := range t.active {
		out = append(out, *task)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// History returns up to limit finished tasks, most recent first.
func (t *Tracker) History(limit int) []Task {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Task, 0, len(t.history))
	for _, task := range t.history {
		out = append(out, *task)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Stats returns aggregate counts and the success rate (completed over all
// tracked, as a percentage rounded to one decimal).
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	stats := Stats{
		ActiveTasks: len(t.active),
		TotalTasks:  len(t.active) + len(t.history),
	}
	for _, task := range t.history {
		switch task.Status {
		case StatusCompleted:
			stats.CompletedTasks++
		case StatusFailed:
			stats.FailedTasks++
		}
	}
	if stats.TotalTasks > 0 {
		rate := float64(stats.CompletedTasks) / float64(stats.TotalTasks) * 100
		stats.SuccessRate = float64(int(rate*10+0.5)) / 10
	}
	return stats
}

// mutate applies fn to an active task under the lock and persists it.
func (t *Tracker) mutate(id string, fn func(*Task)) error {
	t.mu.Lock()
	task, ok := t.active[id]
	if !ok {
		t.mu.Unlock()
		return fmt.Errorf("no active task with id %s", id)
	}
	fn(task)
	snapshot := *task
	t.mu.Unlock()

	return t.update(&snapshot)
}

// finish applies fn, moves the task from active to history and persists.
func (t *Tracker) finish(id string, fn func(*Task)) error {
	t.mu.Lock()
	task, ok := t.active[id]
	if !ok {
		t.mu.Unlock()
		return fmt.Errorf("no active task with id %s", id)
	}
	fn(task)
	delete(t.active, id)
	t.history = append(t.history, task)
	snapshot := *task
	t.mu.Unlock()

	return t.update(&snapshot)
}

func (t *Tracker) insert(task *Task) error {
	result, metadata, err := encodePayloads(task)
	if err != nil {
		return err
	}

	_, err = t.db.Exec(
		`INSERT INTO agent_tasks (id, task_type, description, status, created_at, started_at, completed_at, result, error, progress_percentage, metadata)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, string(task.Type), task.Description, string(task.Status),
		task.CreatedAt, task.StartedAt, task.CompletedAt,
		result, nullable(task.Error), task.Progress, metadata,
	)
	if err != nil {
		return fmt.Errorf("failed to save task %s: %w", task.ID, err)
	}
	return nil
}

func (t *Tracker) update(task *Task) error {
	result, metadata, err := encodePayloads(task)
	if err != nil {
		return err
	}

	_, err = t.db.Exec(
		`UPDATE agent_tasks SET status = ?, started_at = ?, completed_at = ?, result = ?, error = ?, progress_percentage = ?, metadata = ?
		 WHERE id = ?`,
		string(task.Status), task.StartedAt, task.CompletedAt,
		result, nullable(task.Error), task.Progress, metadata, task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task %s: %w", task.ID, err)
	}
	return nil
}

// encodePayloads JSON-encodes the result and metadata maps for storage.
func encodePayloads(task *Task) (result, metadata interface{}, err error) {
	if task.Result != nil {
		data, err := json.Marshal(task.Result)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode task result: %w", err)
		}
		result = string(data)
	}
	if task.Metadata != nil {
		data, err := json.Marshal(task.Metadata)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode task metadata: %w", err)
		}
		metadata = string(data)
	}
	return result, metadata, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
