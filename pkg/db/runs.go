package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dtnitsch/llm-doc-processor/models"
)

// ErrNotFound is returned when a run or batch id does not exist.
var ErrNotFound = errors.New("not found")

// Run is one processed document as recorded in the history.
type Run struct {
	RunID          int64
	BatchID        int64 // 0 when the document was processed on its own
	CreatedAt      time.Time
	InputPath      string
	OutputPath     string
	Profile        string
	DocumentType   string
	Engine         string
	Model          string
	Success        bool
	QualityScore   float64
	Metrics        models.QualityMetrics
	Language       string
	ProcessingTime float64
	ErrorCount     int
	WarningCount   int
	FirstError     string
	TopKeywords    []string // "word:count"
}

// NewRun builds a history row from a processing result.
func NewRun(result models.ProcessingResult, profile models.Profile, engine string, batchID int64, topKeywords []string) Run {
	run := Run{
		BatchID:        batchID,
		InputPath:      result.InputPath,
		OutputPath:     result.OutputPath,
		Profile:        profile.Name,
		DocumentType:   string(profile.DocumentType),
		Engine:         engine,
		Model:          profile.ModelName,
		Success:        result.Success,
		QualityScore:   result.QualityScore,
		Metrics:        result.Metrics,
		Language:       result.Language,
		ProcessingTime: result.ProcessingTime,
		ErrorCount:     len(result.Errors),
		WarningCount:   len(result.Warnings),
		TopKeywords:    topKeywords,
	}
	if len(result.Errors) > 0 {
		run.FirstError = result.Errors[0]
	}
	return run
}

// InsertRun records a processed document, returning the run_id.
func (db *DB) InsertRun(r Run) (int64, error) {
	keywords := "[]"
	if len(r.TopKeywords) > 0 {
		data, err := json.Marshal(r.TopKeywords)
		if err != nil {
			return 0, fmt.Errorf("failed to encode keywords: %w", err)
		}
		keywords = string(data)
	}

	m := r.Metrics
	result, err := db.Exec(`
		INSERT INTO runs (batch_id, input_path, output_path, profile, document_type, engine, model,
		                  success, quality_score, pages_processed, lines_processed, paragraphs_merged,
		                  headers_removed, formatting_fixes, tables_detected, figures_detected,
		                  references_detected, word_count, language, processing_time,
		                  error_count, warning_count, first_error, top_keywords)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, nullID(r.BatchID), r.InputPath, r.OutputPath, r.Profile, r.DocumentType, r.Engine, r.Model,
		r.Success, r.QualityScore, m.PagesProcessed, m.LinesProcessed, m.ParagraphsMerged,
		m.HeadersRemoved, m.FormattingFixes, m.TablesDetected, m.FiguresDetected,
		m.ReferencesDetected, m.WordCount, r.Language, r.ProcessingTime,
		r.ErrorCount, r.WarningCount, r.FirstError, keywords)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

const runColumns = `
	run_id, batch_id, created_at, input_path, output_path, profile, document_type, engine, model,
	success, quality_score, pages_processed, lines_processed, paragraphs_merged, headers_removed,
	formatting_fixes, tables_detected, figures_detected, references_detected, word_count,
	language, processing_time, error_count, warning_count, first_error, top_keywords`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var r Run
	var batchID sql.NullInt64
	var outputPath, model, language, firstError, keywords sql.NullString
	m := &r.Metrics
	err := row.Scan(
		&r.RunID, &batchID, &r.CreatedAt, &r.InputPath, &outputPath, &r.Profile, &r.DocumentType,
		&r.Engine, &model, &r.Success, &r.QualityScore, &m.PagesProcessed, &m.LinesProcessed,
		&m.ParagraphsMerged, &m.HeadersRemoved, &m.FormattingFixes, &m.TablesDetected,
		&m.FiguresDetected, &m.ReferencesDetected, &m.WordCount, &language, &r.ProcessingTime,
		&r.ErrorCount, &r.WarningCount, &firstError, &keywords,
	)
	if err != nil {
		return r, err
	}
	r.BatchID = batchID.Int64
	r.OutputPath = outputPath.String
	r.Model = model.String
	r.Language = language.String
	r.FirstError = firstError.String
	r.Metrics.ProcessingTimeSeconds = r.ProcessingTime
	r.TopKeywords = parseTopKeywords(keywords.String)
	return r, nil
}

// GetRun retrieves a run by its ID
func (db *DB) GetRun(runID int64) (*Run, error) {
	row := db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d: %w", runID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &r, nil
}

// ListRuns retrieves runs ordered by most recent first
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY run_id DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	return db.queryRuns(query)
}

// GetBatchRuns retrieves every run recorded for a batch, in processing order
func (db *DB) GetBatchRuns(batchID int64) ([]Run, error) {
	return db.queryRuns(`SELECT `+runColumns+` FROM runs WHERE batch_id = ? ORDER BY run_id`, batchID)
}

func (db *DB) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// parseTopKeywords decodes the stored JSON array, tolerating legacy or
// hand-edited values by falling back to an empty list.
func parseTopKeywords(jsonStr string) []string {
	if jsonStr == "" || jsonStr == "[]" {
		return nil
	}
	var keywords []string
	if err := json.Unmarshal([]byte(jsonStr), &keywords); err != nil {
		return nil
	}
	return keywords
}

// KeywordNames strips the ":count" suffix from stored keywords.
func KeywordNames(keywords []string, limit int) []string {
	names := []string{}
	for i, kw := range keywords {
		if limit > 0 && i >= limit {
			break
		}
		if idx := strings.LastIndex(kw, ":"); idx > 0 {
			kw = kw[:idx]
		}
		names = append(names, kw)
	}
	return names
}

func nullID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
