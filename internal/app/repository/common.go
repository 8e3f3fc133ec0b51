package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"yt2t/internal/app/model"
)

// CommonDB provides shared database functionality
type CommonDB struct {
	db           *sql.DB
	driverName   string
	placeholders PlaceholderFunc
}

// PlaceholderFunc generates parameter placeholders for different SQL dialects
type PlaceholderFunc func(n int) string

// NewCommonDB creates a new CommonDB instance
func NewCommonDB(db *sql.DB, driverName string) *CommonDB {
	var placeholders PlaceholderFunc

	switch driverName {
	case "postgres":
		placeholders = func(n int) string { return fmt.Sprintf("$%d", n) }
	default:
		placeholders = func(n int) string { return "?" }
	}

	return &CommonDB{
		db:           db,
		driverName:   driverName,
		placeholders: placeholders,
	}
}

// DB exposes the underlying handle for schema setup.
func (c *CommonDB) DB() *sql.DB {
	return c.db
}

// Close closes the database connection
func (c *CommonDB) Close() error {
	return c.db.Close()
}

var recordColumns = []string{
	"source_url", "video_id", "title", "format", "sample_rate", "channels",
	"file_path", "status", "error_code", "error_message", "duration_ms", "created_at",
}

// Record inserts one extraction outcome.
func (c *CommonDB) Record(ctx context.Context, rec *model.ExtractionRecord) error {
	marks := make([]string, len(recordColumns))
	for i := range marks {
		marks[i] = c.placeholders(i + 1)
	}
	query := fmt.Sprintf("INSERT INTO extractions (%s) VALUES (%s)",
		strings.Join(recordColumns, ", "), strings.Join(marks, ", "))

	args := []interface{}{
		rec.SourceURL, rec.VideoID, rec.Title, string(rec.Format), rec.SampleRate, rec.Channels,
		rec.FilePath, string(rec.Status), rec.ErrorCode, rec.ErrorMessage, rec.DurationMs, rec.CreatedAt,
	}

	if c.driverName == "postgres" {
		if err := c.db.QueryRowContext(ctx, query+" RETURNING id", args...).Scan(&rec.ID); err != nil {
			return fmt.Errorf("insert extraction: %w", err)
		}
		return nil
	}

	result, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert extraction: %w", err)
	}
	if id, err := result.LastInsertId(); err == nil {
		rec.ID = id
	}
	return nil
}

// ListRecent retrieves the newest records first
func (c *CommonDB) ListRecent(ctx context.Context, limit int) ([]model.ExtractionRecord, error) {
	query := fmt.Sprintf(
		`SELECT id, %s
		 FROM extractions
		 ORDER BY created_at DESC, id DESC
		 LIMIT %s`,
		strings.Join(recordColumns, ", "), c.placeholders(1),
	)

	rows, err := c.db.QueryContext(ctx, query, ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	records := make([]model.ExtractionRecord, 0)
	for rows.Next() {
		var rec model.ExtractionRecord
		var format, status string
		if err := rows.Scan(&rec.ID, &rec.SourceURL, &rec.VideoID, &rec.Title, &format,
			&rec.SampleRate, &rec.Channels, &rec.FilePath, &status, &rec.ErrorCode,
			&rec.ErrorMessage, &rec.DurationMs, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		rec.Format = model.AudioFormat(format)
		rec.Status = model.ExtractionStatus(status)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return records, nil
}
