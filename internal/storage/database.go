package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

/**
 * Name: Store
 * Description: users / analyses 테이블에 대한 SQL 접근 계층
 * Workflow:
 *	1. ParseDatabaseURL로 드라이버와 DSN 결정 (sqlite / postgres / mysql)
 *	2. Open에서 커넥션 풀 설정 후 Ping
 *	3. MigrateUp으로 스키마 적용 (golang-migrate, 내장 마이그레이션)
 */
type Store struct {
	db     *sql.DB
	target Target
	logger *zap.Logger
	now    func() time.Time
}

// Open connects to the database named by databaseURL and verifies it with a ping.
func Open(ctx context.Context, databaseURL string, logger *zap.Logger) (*Store, error) {
	target, err := ParseDatabaseURL(databaseURL)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open(target.DriverName(), target.DSN)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", target.Dialect, err)
	}
	configurePool(db, target.Dialect)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: ping %s: %w", target.Dialect, err)
	}

	logger.Info("Open(): database connected", zap.String("dialect", string(target.Dialect)))
	return &Store{db: db, target: target, logger: logger, now: time.Now}, nil
}

func configurePool(db *sql.DB, d Dialect) {
	if d == DialectSQLite {
		// 단일 writer: 동시 쓰기 시 SQLITE_BUSY 방지
		db.SetMaxOpenConns(1)
		return
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
}

// Dialect reports which backend the store talks to.
func (s *Store) Dialect() Dialect { return s.target.Dialect }

// Ping checks the connection; used by the readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) timestamp() time.Time {
	// UTC + 마이크로초 단위로 맞춰야 세 드라이버 모두 같은 값으로 왕복함
	return s.now().UTC().Truncate(time.Microsecond)
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// insertReturningID runs an INSERT and returns the generated id.
// query must not carry a RETURNING clause; it is added where the dialect supports it.
func (s *Store) insertReturningID(ctx context.Context, q execer, query string, args ...any) (int64, error) {
	if s.target.Dialect.supportsReturning() {
		var id int64
		err := q.QueryRowContext(ctx, s.target.Dialect.rebind(query+" RETURNING id"), args...).Scan(&id)
		return id, err
	}
	res, err := q.ExecContext(ctx, s.target.Dialect.rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
