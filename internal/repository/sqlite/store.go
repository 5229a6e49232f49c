package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"task-hunter/internal/domain"
	"task-hunter/internal/errors"
	"task-hunter/internal/logging"

	_ "modernc.org/sqlite"
)

// timeNow is a variable so tests can control the clock.
var timeNow = time.Now

// updatableTaskFields is the whitelist for UpdateTaskField. Field names are
// interpolated into SQL and must never come from user input unchecked.
var updatableTaskFields = map[string]bool{
	"name":        true,
	"estimate":    true,
	"description": true,
	"status":      true,
}

// Store implements the task store over a sqlite database.
// Every operation is a single self-contained statement, except task removal
// which deletes the task and its history in one transaction.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the sqlite database at dbPath without requiring the
// schema to exist. Used by the init workflow; everything else should use
// OpenExisting.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// One connection so the LIKE pragma applies to every statement.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA case_sensitive_like = ON"); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("configure connection", err)
	}

	return &Store{db: db}, nil
}

// OpenExisting opens the database at dbPath and fails with a not-initialized
// error if the schema has not been created yet.
func OpenExisting(dbPath string) (*Store, error) {
	store, err := Open(dbPath)
	if err != nil {
		return nil, err
	}

	initialized, err := store.Initialized(context.Background())
	if err != nil {
		store.Close()
		return nil, err
	}
	if !initialized {
		store.Close()
		return nil, errors.NewNotInitializedError()
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Initialize creates the tasks and history tables.
func (s *Store) Initialize(ctx context.Context) error {
	createTasks := `
	CREATE TABLE tasks (
		id INTEGER PRIMARY KEY,
		name TEXT,
		estimate INTEGER,
		description TEXT,
		status TEXT,
		last_modified INTEGER
	)`
	if _, err := s.db.ExecContext(ctx, createTasks); err != nil {
		return errors.NewDatabaseError("create tasks table", err)
	}

	createHistory := `
	CREATE TABLE history (
		id INTEGER PRIMARY KEY,
		taskid INTEGER,
		is_start BOOLEAN,
		time INTEGER
	)`
	if _, err := s.db.ExecContext(ctx, createHistory); err != nil {
		return errors.NewDatabaseError("create history table", err)
	}

	return nil
}

// Initialized reports whether the schema exists.
func (s *Store) Initialized(ctx context.Context) (bool, error) {
	query := `
	SELECT count(*) FROM sqlite_master
	WHERE type = 'table' AND name IN ('tasks', 'history')`

	var count int
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return false, errors.NewDatabaseError("check schema", err)
	}
	return count == 2, nil
}

// GetTask resolves a single task by identifier. A numeric identifier is an
// exact id match; anything else is a case-sensitive name prefix match. An
// empty identifier resolves to the current task. A non-empty statuses set is
// ANDed with the identifier match.
func (s *Store) GetTask(ctx context.Context, identifier string, statuses []domain.Status) (domain.Task, error) {
	if identifier == "" {
		current, err := s.GetCurrentTask(ctx)
		if err != nil {
			return domain.Task{}, err
		}
		if current == nil {
			return domain.Task{}, errors.NewTaskNotFoundError("No Current task found.")
		}
		return *current, nil
	}

	var conditions []string
	var args []interface{}
	if isNumeric(identifier) {
		conditions = append(conditions, "id = ?")
		args = append(args, identifier)
	} else {
		conditions = append(conditions, "name LIKE ?")
		args = append(args, identifier+"%")
	}
	if len(statuses) > 0 {
		conditions = append(conditions, "status IN ("+placeholders(len(statuses))+")")
		for _, status := range statuses {
			args = append(args, status.String())
		}
	}

	query := `
	SELECT id, name, estimate, description, status, last_modified
	FROM tasks
	WHERE ` + strings.Join(conditions, " AND ") + `
	ORDER BY last_modified DESC`

	logging.Debugf("get task %q: %s\n", identifier, query)
	tasks, err := QueryMultiple(ctx, s.db, query, ScanTasks, "tasks", args...)
	if err != nil {
		return domain.Task{}, err
	}

	if len(tasks) == 0 {
		return domain.Task{}, errors.NewTaskNotFoundError(
			fmt.Sprintf("Could not find task for identifier: %s", identifier))
	}
	if len(tasks) > 1 {
		return domain.Task{}, errors.NewMultipleTasksFoundError(identifier)
	}

	return tasks[0], nil
}

// GetTaskByID retrieves a task by its id.
func (s *Store) GetTaskByID(ctx context.Context, id int64) (domain.Task, error) {
	query := `
	SELECT id, name, estimate, description, status, last_modified
	FROM tasks
	WHERE id = ?`

	task, err := QuerySingle(ctx, s.db, query, ScanTask, "task", fmt.Sprintf("%d", id), id)
	if err != nil {
		return domain.Task{}, err
	}
	return *task, nil
}

// GetTasks retrieves tasks matching every supplied filter, in canonical order.
// startsWith and contains both apply to the task name.
func (s *Store) GetTasks(ctx context.Context, statuses []domain.Status, startsWith, contains string) ([]domain.Task, error) {
	var conditions []string
	var args []interface{}
	if startsWith != "" {
		conditions = append(conditions, "name LIKE ?")
		args = append(args, startsWith+"%")
	}
	if contains != "" {
		conditions = append(conditions, "name LIKE ?")
		args = append(args, "%"+contains+"%")
	}
	if len(statuses) > 0 {
		conditions = append(conditions, "status IN ("+placeholders(len(statuses))+")")
		for _, status := range statuses {
			args = append(args, status.String())
		}
	}

	query := `
	SELECT id, name, estimate, description, status, last_modified
	FROM tasks`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	tasks, err := QueryMultiple(ctx, s.db, query, ScanTasks, "tasks", args...)
	if err != nil {
		return nil, err
	}

	domain.SortTasks(tasks)
	return tasks, nil
}

// GetCurrentTask returns the single task with status Current, or nil if there
// is none. Finding more than one is an internal consistency fault.
func (s *Store) GetCurrentTask(ctx context.Context) (*domain.Task, error) {
	query := `
	SELECT id, name, estimate, description, status, last_modified
	FROM tasks
	WHERE status = ?`

	tasks, err := QueryMultiple(ctx, s.db, query, ScanTasks, "tasks", domain.StatusCurrent.String())
	if err != nil {
		return nil, err
	}

	switch len(tasks) {
	case 0:
		return nil, nil
	case 1:
		return &tasks[0], nil
	default:
		return nil, errors.NewInternalError("found more than one Current task")
	}
}

// CreateTask inserts a new task and returns its freshly stored snapshot.
func (s *Store) CreateTask(ctx context.Context, name string, estimate *int64, description *string, status domain.Status) (domain.Task, error) {
	query := `
	INSERT INTO tasks (name, estimate, description, status, last_modified)
	VALUES (?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, s.db, query,
		name, nullableInt(estimate), nullableString(description), status.String(), timeNow().Unix())
	if err != nil {
		return domain.Task{}, err
	}

	return s.GetTaskByID(ctx, id)
}

// UpdateTaskField updates a single task field and refreshes last_modified.
func (s *Store) UpdateTaskField(ctx context.Context, id int64, field string, value interface{}) error {
	if !updatableTaskFields[field] {
		return errors.NewInternalError(fmt.Sprintf("task field %q is not updatable", field))
	}

	query := fmt.Sprintf("UPDATE tasks SET %s = ?, last_modified = ? WHERE id = ?", field)
	return ExecuteWithRowsAffected(ctx, s.db, query, "task", fmt.Sprintf("%d", id),
		value, timeNow().Unix(), id)
}

// RemoveTask deletes the task and all its history rows as one logical unit.
func (s *Store) RemoveTask(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewDatabaseError("begin remove task", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id); err != nil {
		return errors.NewDatabaseError("delete task", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM history WHERE taskid = ?", id); err != nil {
		return errors.NewDatabaseError("delete task history", err)
	}

	if err := tx.Commit(); err != nil {
		return errors.NewDatabaseError("commit remove task", err)
	}
	return nil
}

// GetHistory retrieves all history records for the given task ids, in
// canonical order.
func (s *Store) GetHistory(ctx context.Context, taskIDs []int64) ([]domain.HistoryRecord, error) {
	if len(taskIDs) == 0 {
		return nil, nil
	}

	query := `
	SELECT id, taskid, is_start, time
	FROM history
	WHERE taskid IN (` + placeholders(len(taskIDs)) + `)`

	args := make([]interface{}, 0, len(taskIDs))
	for _, id := range taskIDs {
		args = append(args, id)
	}

	records, err := QueryMultiple(ctx, s.db, query, ScanHistoryRecords, "history records", args...)
	if err != nil {
		return nil, err
	}

	domain.SortHistory(records)
	return records, nil
}

// InsertHistory appends one history record. No validation happens here; the
// lifecycle operations and the text-format parser are responsible for
// supplying well-formed sequences.
func (s *Store) InsertHistory(ctx context.Context, taskID int64, isStart bool, eventTime int64) error {
	query := `INSERT INTO history (taskid, is_start, time) VALUES (?, ?, ?)`
	_, err := ExecuteWithLastInsertID(ctx, s.db, query, taskID, isStart, eventTime)
	return err
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func nullableInt(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableString(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
