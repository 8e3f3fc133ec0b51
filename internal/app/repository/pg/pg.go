package pg

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"yt2t/internal/app/repository"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS extractions (
	id            BIGSERIAL PRIMARY KEY,
	source_url    TEXT        NOT NULL,
	video_id      TEXT        NOT NULL DEFAULT '',
	title         TEXT        NOT NULL DEFAULT '',
	format        TEXT        NOT NULL,
	sample_rate   INTEGER     NOT NULL,
	channels      INTEGER     NOT NULL,
	file_path     TEXT        NOT NULL DEFAULT '',
	status        TEXT        NOT NULL,
	error_code    TEXT        NOT NULL DEFAULT '',
	error_message TEXT        NOT NULL DEFAULT '',
	duration_ms   BIGINT      NOT NULL DEFAULT 0,
	created_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_extractions_created_at ON extractions (created_at);`

// PostgresDB stores extraction history in PostgreSQL.
type PostgresDB struct {
	*repository.CommonDB
}

// NewPostgresDB connects using connectionString and ensures the schema exists.
func NewPostgresDB(connectionString string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return newWithDB(db)
}

func newWithDB(db *sql.DB) (*PostgresDB, error) {
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return &PostgresDB{CommonDB: repository.NewCommonDB(db, "postgres")}, nil
}

var _ repository.ExtractionDAO = (*PostgresDB)(nil)
