package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/im7mortal/kmutex"
)

// LocalLocker serializes sites within one process. It waits for the current
// holder instead of reporting busy; the wait ends when ctx is done.
type LocalLocker struct {
	km *kmutex.Kmutex
}

// NewLocalLocker returns an in-process per-site lock.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{km: kmutex.New()}
}

func (l *LocalLocker) TryLock(ctx context.Context, siteID uuid.UUID) (func(), bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	acquired := make(chan struct{})
	go func() {
		l.km.Lock(siteID)
		close(acquired)
	}()

	select {
	case <-acquired:
		return func() { l.km.Unlock(siteID) }, true, nil
	case <-ctx.Done():
		// the pending acquisition still completes; hand the lock straight back
		go func() {
			<-acquired
			l.km.Unlock(siteID)
		}()
		return nil, false, ctx.Err()
	}
}
