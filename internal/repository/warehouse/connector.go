package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const (
	DriverSnowflake = "snowflake"
	DriverSQLite    = "sqlite"
)

// Session is a live channel to the warehouse held for one operation.
// *sql.Conn satisfies it.
type Session interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	Close() error
}

// Connector hands out sessions. Callers close every session they obtain.
type Connector interface {
	Connect(ctx context.Context) (Session, error)
	Close() error
}

// ConnectorConfig describes how to reach the warehouse.
type ConnectorConfig struct {
	Driver string
	DSN    string
	Pooled bool
}

// NewConnector validates the connection settings and returns a per-operation
// connector, or a pooled one when cfg.Pooled is set.
func NewConnector(cfg ConnectorConfig) (Connector, error) {
	driverName := strings.ToLower(strings.TrimSpace(cfg.Driver))
	dsn, err := normalizeDSN(driverName, strings.TrimSpace(cfg.DSN))
	if err != nil {
		return nil, err
	}

	if !cfg.Pooled {
		return &DirectConnector{driverName: driverName, dsn: dsn}, nil
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s pool: %w", driverName, err)
	}
	if driverName == DriverSQLite {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}
	return NewPooledConnector(db), nil
}

func normalizeDSN(driverName, dsn string) (string, error) {
	if dsn == "" {
		return "", fmt.Errorf("warehouse connection string is required")
	}

	switch driverName {
	case DriverSnowflake:
		return snowflakeDSN(dsn)
	case DriverSQLite:
		if err := ensureSQLiteDir(dsn); err != nil {
			return "", err
		}
		return dsn, nil
	default:
		return "", fmt.Errorf("unsupported warehouse driver %q", driverName)
	}
}

func ensureSQLiteDir(dsn string) error {
	if strings.HasPrefix(dsn, "file:") || strings.Contains(dsn, ":memory:") {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	return nil
}

// DirectConnector opens a fresh driver connection for every session and
// tears it down when the session closes.
type DirectConnector struct {
	driverName string
	dsn        string
}

func (c *DirectConnector) Connect(ctx context.Context) (Session, error) {
	db, err := sql.Open(c.driverName, c.dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s connection: %w", c.driverName, err)
	}
	// keep nothing around once the session is released
	db.SetMaxIdleConns(0)

	conn, err := db.Conn(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect %s: %w", c.driverName, err)
	}
	return &directSession{Conn: conn, db: db}, nil
}

func (c *DirectConnector) Close() error { return nil }

type directSession struct {
	*sql.Conn
	db *sql.DB
}

func (s *directSession) Close() error {
	connErr := s.Conn.Close()
	dbErr := s.db.Close()
	if connErr != nil {
		return connErr
	}
	return dbErr
}

// PooledConnector borrows connections from a shared *sql.DB. Closing a
// session returns its connection to the pool.
type PooledConnector struct {
	db *sql.DB
}

func NewPooledConnector(db *sql.DB) *PooledConnector {
	return &PooledConnector{db: db}
}

func (c *PooledConnector) Connect(ctx context.Context) (Session, error) {
	conn, err := c.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire pooled connection: %w", err)
	}
	return conn, nil
}

func (c *PooledConnector) Close() error {
	return c.db.Close()
}
