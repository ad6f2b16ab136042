package runstore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/relicworks/archeologist/schema"
)

// RecordScan persists a completed report and returns its run ID.
func (s *StoreImpl) RecordScan(report *schema.ArcheologistAnalysis) (int64, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return 0, nil
	}

	runsTable := quoteTableName(scanRunsTable, s.backend)

	var runID int64
	var err error
	switch s.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (scan_time, duration_ms, project_root, total_files, total_anti_patterns)
			VALUES ($1, $2, $3, $4, $5) RETURNING run_id`, runsTable)
		err = s.db.QueryRow(query, report.ScanTime, report.DurationMs, report.ProjectRoot,
			report.TotalFiles, report.TotalAntiPatterns).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (scan_time, duration_ms, project_root, total_files, total_anti_patterns)
			VALUES (?, ?, ?, ?, ?)`, runsTable)
		var result sql.Result
		result, err = s.db.Exec(query, formatTime(report.ScanTime, s.backend), report.DurationMs,
			report.ProjectRoot, report.TotalFiles, report.TotalAntiPatterns)
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert scan run: %w", err)
	}

	if err := s.recordBacklog(runID, report.RefactoringBacklog); err != nil {
		return runID, err
	}
	return runID, nil
}

// recordBacklog inserts all backlog rows for a run.
func (s *StoreImpl) recordBacklog(runID int64, items []schema.RefactoringItem) error {
	itemsTable := quoteTableName(backlogItemsTable, s.backend)

	var query string
	switch s.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (run_id, file_path, score, anti_patterns, churn, top_category, top_severity)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`, itemsTable)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`INSERT INTO %s (run_id, file_path, score, anti_patterns, churn, top_category, top_severity)
			VALUES (?, ?, ?, ?, ?, ?, ?)`, itemsTable)
	}

	for _, item := range items {
		if _, err := s.db.Exec(query, runID, item.File, item.Score, item.AntiPatterns,
			item.Churn, string(item.TopCategory), string(item.TopSeverity)); err != nil {
			return fmt.Errorf("failed to insert backlog item %s: %w", item.File, err)
		}
	}
	return nil
}

// Runs retrieves all persisted scan runs in insertion order.
func (s *StoreImpl) Runs() ([]schema.ScanRunRecord, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}

	runsTable := quoteTableName(scanRunsTable, s.backend)
	query := fmt.Sprintf(`SELECT run_id, scan_time, duration_ms, project_root, total_files, total_anti_patterns
		FROM %s ORDER BY run_id`, runsTable)

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query scan runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ScanRunRecord
	for rows.Next() {
		var record schema.ScanRunRecord

		switch s.backend {
		case schema.SQLiteBackend:
			var scanTimeStr string
			if err := rows.Scan(&record.RunID, &scanTimeStr, &record.DurationMs, &record.ProjectRoot,
				&record.TotalFiles, &record.TotalAntiPatterns); err != nil {
				return nil, fmt.Errorf("failed to scan run row: %w", err)
			}
			scanTime, err := time.Parse(time.RFC3339Nano, scanTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse scan_time: %w", err)
			}
			record.ScanTime = scanTime
		default: // MySQL and PostgreSQL store native datetimes
			if err := rows.Scan(&record.RunID, &record.ScanTime, &record.DurationMs, &record.ProjectRoot,
				&record.TotalFiles, &record.TotalAntiPatterns); err != nil {
				return nil, fmt.Errorf("failed to scan run row: %w", err)
			}
		}

		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scan runs: %w", err)
	}
	return results, nil
}

// GetStatus returns status information about the scan store.
func (s *StoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:    string(s.backend),
		Connected:  s.db != nil,
		TableSizes: make(map[string]int64),
	}

	if s.backend == schema.NoneBackend || s.db == nil {
		return status, nil
	}

	runsTable := quoteTableName(scanRunsTable, s.backend)

	row := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable))
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		lastQuery := fmt.Sprintf("SELECT run_id, scan_time FROM %s ORDER BY run_id DESC LIMIT 1", runsTable)
		if err := s.scanRunTime(s.db.QueryRow(lastQuery), &status.LastRunID, &status.LastRunTime); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}

		oldestQuery := fmt.Sprintf("SELECT run_id, scan_time FROM %s ORDER BY run_id ASC LIMIT 1", runsTable)
		var oldestID int64
		if err := s.scanRunTime(s.db.QueryRow(oldestQuery), &oldestID, &status.OldestRunTime); err != nil {
			return status, fmt.Errorf("failed to get oldest run info: %w", err)
		}

		filesQuery := fmt.Sprintf("SELECT COALESCE(SUM(total_files), 0) FROM %s", runsTable)
		if err := s.db.QueryRow(filesQuery).Scan(&status.TotalFilesSeen); err != nil {
			return status, fmt.Errorf("failed to get total files seen: %w", err)
		}
	}

	for _, table := range []string{scanRunsTable, backlogItemsTable} {
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, s.backend))
		var count int64
		if err := s.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// scanRunTime scans a (run_id, scan_time) row, handling SQLite's text timestamps.
func (s *StoreImpl) scanRunTime(row *sql.Row, id *int64, ts *time.Time) error {
	switch s.backend {
	case schema.SQLiteBackend:
		var timeStr string
		if err := row.Scan(id, &timeStr); err != nil {
			return err
		}
		parsed, err := time.Parse(time.RFC3339Nano, timeStr)
		if err != nil {
			return fmt.Errorf("failed to parse scan_time: %w", err)
		}
		*ts = parsed
		return nil
	default:
		return row.Scan(id, ts)
	}
}

// Clear removes all persisted runs and backlog rows.
func (s *StoreImpl) Clear() error {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}

	for _, table := range []string{backlogItemsTable, scanRunsTable} {
		query := fmt.Sprintf("DELETE FROM %s", quoteTableName(table, s.backend))
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

// Close closes the underlying connection.
func (s *StoreImpl) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
