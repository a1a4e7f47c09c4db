package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	recordout "healthlog/internal/modules/record/port/out"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type sqlDialect struct {
	driver string
	ddl    string
	load   string
	upsert string
}

var (
	sqliteDialect = sqlDialect{
		driver: "sqlite",
		ddl: `
CREATE TABLE IF NOT EXISTS record_blobs (
  key TEXT PRIMARY KEY,
  payload BLOB NOT NULL,
  updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
		load: `SELECT payload FROM record_blobs WHERE key = ?`,
		upsert: `
INSERT INTO record_blobs (key, payload, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET
  payload=excluded.payload,
  updated_at=excluded.updated_at;
`,
	}
	postgresDialect = sqlDialect{
		driver: "pgx",
		ddl: `
CREATE TABLE IF NOT EXISTS record_blobs (
  key TEXT PRIMARY KEY,
  payload JSONB NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`,
		load: `SELECT payload FROM record_blobs WHERE key = $1`,
		upsert: `
INSERT INTO record_blobs (key, payload, updated_at)
VALUES ($1, $2, now())
ON CONFLICT(key) DO UPDATE SET
  payload=EXCLUDED.payload,
  updated_at=EXCLUDED.updated_at;
`,
	}
)

// SQLBlobStorage stores the document as one row keyed by blob key, in SQLite
// or Postgres.
type SQLBlobStorage struct {
	db      *sql.DB
	dialect sqlDialect
	key     string
}

var _ recordout.BlobStorage = (*SQLBlobStorage)(nil)

func NewSQLiteBlobStorage(dbPath, key string) (*SQLBlobStorage, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	return openSQLBlobStorage(sqliteDialect, dbPath, key)
}

func NewPostgresBlobStorage(dsn, key string) (*SQLBlobStorage, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	return openSQLBlobStorage(postgresDialect, dsn, key)
}

func openSQLBlobStorage(dialect sqlDialect, dsn, key string) (*SQLBlobStorage, error) {
	db, err := sql.Open(dialect.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect.driver, err)
	}
	storage := &SQLBlobStorage{db: db, dialect: dialect, key: key}
	if err := storage.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return storage, nil
}

func (s *SQLBlobStorage) ensureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.ddl); err != nil {
		return fmt.Errorf("create record_blobs table: %w", err)
	}
	return nil
}

func (s *SQLBlobStorage) Save(ctx context.Context, payload []byte) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.upsert, s.key, payload); err != nil {
		return fmt.Errorf("upsert record blob %s: %w", s.key, err)
	}
	return nil
}

func (s *SQLBlobStorage) Load(ctx context.Context) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, s.dialect.load, s.key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load record blob %s: %w", s.key, err)
	}
	return payload, true, nil
}

func (s *SQLBlobStorage) Close() error {
	return s.db.Close()
}
