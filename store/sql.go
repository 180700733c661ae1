package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

const DefaultStateName = "default"

const createStateTable = `CREATE TABLE IF NOT EXISTS seating_state (
	name VARCHAR(64) NOT NULL PRIMARY KEY,
	payload LONGBLOB NOT NULL,
	updated_at DATETIME NOT NULL
)`

// SQLBackend keeps the state document as one row of the seating_state table.
type SQLBackend struct {
	db   *sql.DB
	name string
	now  func() time.Time
}

func NewSQLBackend(db *sql.DB, name string) *SQLBackend {
	if name == "" {
		name = DefaultStateName
	}
	return &SQLBackend{db: db, name: name, now: time.Now}
}

// EnsureSchema creates the state table when it does not exist yet.
func (b *SQLBackend) EnsureSchema(ctx context.Context) error {
	_, err := b.db.ExecContext(ctx, createStateTable)
	return err
}

func (b *SQLBackend) Read(ctx context.Context) ([]byte, error) {
	const q = `SELECT payload FROM seating_state WHERE name = ?`
	var payload []byte
	if err := b.db.QueryRowContext(ctx, q, b.name).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStateNotFound
		}
		return nil, err
	}
	return payload, nil
}

func (b *SQLBackend) Write(ctx context.Context, payload []byte) error {
	const q = `INSERT INTO seating_state (name, payload, updated_at) VALUES (?, ?, ?)
	           ON DUPLICATE KEY UPDATE payload = VALUES(payload), updated_at = VALUES(updated_at)`
	_, err := b.db.ExecContext(ctx, q, b.name, payload, b.now().UTC())
	return err
}

// OpenMySQL connects using a go-sql-driver DSN and verifies the connection.
func OpenMySQL(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
