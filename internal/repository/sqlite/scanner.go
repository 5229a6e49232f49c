package sqlite

import (
	"database/sql"

	"task-hunter/internal/domain"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanTask scans a single task row into a domain Task
func ScanTask(scanner Scanner) (*domain.Task, error) {
	task := &domain.Task{}
	var estimate sql.NullInt64
	var description sql.NullString
	var status string

	err := scanner.Scan(
		&task.ID,
		&task.Name,
		&estimate,
		&description,
		&status,
		&task.LastModified,
	)
	if err != nil {
		return nil, err
	}

	if estimate.Valid {
		task.Estimate = &estimate.Int64
	}
	if description.Valid {
		task.Description = &description.String
	}
	task.Status, err = domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	return task, nil
}

// ScanTasks scans multiple task rows into domain Tasks
func ScanTasks(rows Rows) ([]domain.Task, error) {
	var tasks []domain.Task
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

// ScanHistoryRecord scans a single history row into a domain HistoryRecord
func ScanHistoryRecord(scanner Scanner) (*domain.HistoryRecord, error) {
	record := &domain.HistoryRecord{}
	err := scanner.Scan(&record.ID, &record.TaskID, &record.IsStart, &record.Time)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ScanHistoryRecords scans multiple history rows into domain HistoryRecords
func ScanHistoryRecords(rows Rows) ([]domain.HistoryRecord, error) {
	var records []domain.HistoryRecord
	for rows.Next() {
		record, err := ScanHistoryRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
