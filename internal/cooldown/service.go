// Package cooldown tracks per-account command throttling. A cooldown
// is an absolute expiry keyed on (account, community, command); an
// expired entry is equivalent to no entry.
package cooldown

import (
	"context"
	"fmt"
	"time"
)

// Service is the cooldown tracker contract. TryAcquire must be atomic
// per key: under concurrent calls for the same key at most one caller
// acquires.
type Service interface {
	// TryAcquire starts a cooldown of the given duration if the key
	// is idle. Returns acquired=false and the remaining wait when the
	// key is still cooling down.
	TryAcquire(ctx context.Context, accountID, communityID, command string, duration time.Duration) (acquired bool, remaining time.Duration, err error)

	// Remaining reports the time left on an active cooldown, zero
	// when idle.
	Remaining(ctx context.Context, accountID, communityID, command string) (time.Duration, error)

	// Reset clears a cooldown regardless of expiry.
	Reset(ctx context.Context, accountID, communityID, command string) error
}

// Pruner is implemented by backends that accumulate expired entries
// needing periodic cleanup.
type Pruner interface {
	// PruneExpired deletes expired entries and reports how many were
	// removed.
	PruneExpired(ctx context.Context) (int64, error)
}

// ErrOnCooldown is returned by callers of TryAcquire when a command is
// throttled. Remaining reports how long until the command is available
// again.
type ErrOnCooldown struct {
	Command   string
	Remaining time.Duration
}

func (e *ErrOnCooldown) Error() string {
	return fmt.Sprintf("%s is on cooldown for %s", e.Command, e.Remaining.Round(time.Millisecond))
}

// Is lets errors.Is match any ErrOnCooldown regardless of fields.
func (e *ErrOnCooldown) Is(target error) bool {
	_, ok := target.(*ErrOnCooldown)
	return ok
}

// key builds the storage key shared by the redis and memory backends.
func key(accountID, communityID, command string) string {
	return fmt.Sprintf("cooldown:%s:%s:%s", communityID, accountID, command)
}
