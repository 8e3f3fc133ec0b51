package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"yt2t/internal/app/repository"
	"yt2t/internal/app/util/files"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS extractions (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	source_url    TEXT    NOT NULL,
	video_id      TEXT    NOT NULL DEFAULT '',
	title         TEXT    NOT NULL DEFAULT '',
	format        TEXT    NOT NULL,
	sample_rate   INTEGER NOT NULL,
	channels      INTEGER NOT NULL,
	file_path     TEXT    NOT NULL DEFAULT '',
	status        TEXT    NOT NULL,
	error_code    TEXT    NOT NULL DEFAULT '',
	error_message TEXT    NOT NULL DEFAULT '',
	duration_ms   INTEGER NOT NULL DEFAULT 0,
	created_at    DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_extractions_created_at ON extractions (created_at);`

// SQLiteDB stores extraction history in a local SQLite file.
type SQLiteDB struct {
	*repository.CommonDB
}

// NewSQLiteDB opens (creating if needed) the database at dbFilePath and
// ensures the schema exists.
func NewSQLiteDB(dbFilePath string) (*SQLiteDB, error) {
	if err := files.EnsureDir(filepath.Dir(dbFilePath)); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc&_busy_timeout=5000", dbFilePath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// go-sqlite3 serializes writers; one connection avoids SQLITE_BUSY under load.
	db.SetMaxOpenConns(1)

	return newWithDB(db)
}

func newWithDB(db *sql.DB) (*SQLiteDB, error) {
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return &SQLiteDB{CommonDB: repository.NewCommonDB(db, "sqlite3")}, nil
}

var _ repository.ExtractionDAO = (*SQLiteDB)(nil)
