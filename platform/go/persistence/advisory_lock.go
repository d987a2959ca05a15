package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AdvisoryLocker hands out session-level Postgres advisory locks so that only one
// process works on a given key at a time. Each held lock pins one pool connection.
type AdvisoryLocker struct {
	pool      *pgxpool.Pool
	namespace string
}

// NewAdvisoryLocker returns a locker whose keys are hashed together with namespace.
func NewAdvisoryLocker(pool *pgxpool.Pool, namespace string) (*AdvisoryLocker, error) {
	if pool == nil {
		return nil, errors.New("pool is required")
	}
	return &AdvisoryLocker{pool: pool, namespace: namespace}, nil
}

// TryLock attempts to take the lock for key without waiting. When ok is true the
// caller must invoke release exactly once.
func (l *AdvisoryLocker) TryLock(ctx context.Context, key string) (release func(), ok bool, err error) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("acquire conn: %w", err)
	}

	lockKey := l.namespace + ":" + key
	var locked bool
	if err := conn.QueryRow(ctx, "SELECT pg_try_advisory_lock(hashtextextended($1, 0))", lockKey).Scan(&locked); err != nil {
		conn.Release()
		return nil, false, fmt.Errorf("try advisory lock: %w", err)
	}
	if !locked {
		conn.Release()
		return nil, false, nil
	}

	release = func() {
		// Unlock on a fresh context so a cancelled caller still frees the lock.
		if _, err := conn.Exec(context.Background(), "SELECT pg_advisory_unlock(hashtextextended($1, 0))", lockKey); err != nil {
			// Dropping the connection ends the session and with it the lock.
			_ = conn.Conn().Close(context.Background())
		}
		conn.Release()
	}
	return release, true, nil
}
