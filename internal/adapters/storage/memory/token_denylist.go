package memory

import (
	"context"
	"sync"
	"time"
)

// TokenDenylist guarda token IDs revocados hasta su expiración.
// Es por proceso: con varias réplicas habría que moverlo a Postgres.
type TokenDenylist struct {
	mu    sync.Mutex
	until map[string]time.Time
	now   func() time.Time
}

func NewTokenDenylist() *TokenDenylist {
	return &TokenDenylist{
		until: make(map[string]time.Time),
		now:   time.Now,
	}
}

func (d *TokenDenylist) Add(ctx context.Context, tokenID string, until time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pruneLocked()
	d.until[tokenID] = until
	return nil
}

func (d *TokenDenylist) Contains(ctx context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	exp, ok := d.until[tokenID]
	if !ok {
		return false, nil
	}
	if !d.now().Before(exp) {
		delete(d.until, tokenID)
		return false, nil
	}
	return true, nil
}

func (d *TokenDenylist) pruneLocked() {
	now := d.now()
	for id, exp := range d.until {
		if !now.Before(exp) {
			delete(d.until, id)
		}
	}
}
