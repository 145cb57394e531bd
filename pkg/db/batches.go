package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Batch is one directory run.
type Batch struct {
	BatchID       int64
	CreatedAt     time.Time
	FinishedAt    *time.Time
	InputDir      string
	OutputDir     string
	Profile       string
	DocumentCount int
	SuccessCount  int
	FailedCount   int
}

// CreateBatch opens a batch record before its documents are processed.
func (db *DB) CreateBatch(inputDir, outputDir, profile string, documentCount int) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO batches (input_dir, output_dir, profile, document_count)
		VALUES (?, ?, ?, ?)
	`, inputDir, outputDir, profile, documentCount)
	if err != nil {
		return 0, fmt.Errorf("failed to create batch: %w", err)
	}

	batchID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get batch ID: %w", err)
	}
	return batchID, nil
}

// FinishBatch stores the final success and failed counts for a batch
func (db *DB) FinishBatch(batchID int64, successCount, failedCount int) error {
	result, err := db.Exec(`
		UPDATE batches
		SET success_count = ?, failed_count = ?, finished_at = ?
		WHERE batch_id = ?
	`, successCount, failedCount, time.Now().UTC(), batchID)
	if err != nil {
		return fmt.Errorf("failed to finish batch: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("batch %d: %w", batchID, ErrNotFound)
	}
	return nil
}

const batchColumns = `batch_id, created_at, finished_at, input_dir, output_dir, profile,
	document_count, success_count, failed_count`

func scanBatch(row rowScanner) (Batch, error) {
	var b Batch
	var finished sql.NullTime
	err := row.Scan(&b.BatchID, &b.CreatedAt, &finished, &b.InputDir, &b.OutputDir, &b.Profile,
		&b.DocumentCount, &b.SuccessCount, &b.FailedCount)
	if err != nil {
		return b, err
	}
	if finished.Valid {
		t := finished.Time
		b.FinishedAt = &t
	}
	return b, nil
}

// GetBatch retrieves a batch by its ID
func (db *DB) GetBatch(batchID int64) (*Batch, error) {
	b, err := scanBatch(db.QueryRow(`SELECT `+batchColumns+` FROM batches WHERE batch_id = ?`, batchID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("batch %d: %w", batchID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get batch: %w", err)
	}
	return &b, nil
}

// ListBatches retrieves batches ordered by most recent first
func (db *DB) ListBatches(limit int) ([]Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches ORDER BY batch_id DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	defer rows.Close()

	var batches []Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	return batches, nil
}
