package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/zenGate-Global/palmyra-hosting/domains/sites/be/service"
	"github.com/zenGate-Global/palmyra-hosting/platform/go/persistence"
)

// advisoryLocker serializes a site across processes with a Postgres session lock.
type advisoryLocker struct {
	locker *persistence.AdvisoryLocker
}

// NewAdvisoryLocker exposes a persistence.AdvisoryLocker as a site Locker.
func NewAdvisoryLocker(locker *persistence.AdvisoryLocker) service.Locker {
	if locker == nil {
		panic("advisory locker is required")
	}
	return &advisoryLocker{locker: locker}
}

func (l *advisoryLocker) TryLock(ctx context.Context, siteID uuid.UUID) (func(), bool, error) {
	return l.locker.TryLock(ctx, siteID.String())
}
