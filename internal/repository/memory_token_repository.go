package repository

import (
	"context"
	"sync"
	"time"
)

// MemoryTokenRepo keeps the active refresh-token set in process memory behind
// a mutex. All mutations hold the lock, and TakeRefreshToken does its
// check-then-delete under a single lock acquisition.
//
// Entries are not swept when their recorded expiry passes; only an explicit
// take removes them. The expiry is still recorded so a swept variant could be
// added without changing the interface.
type MemoryTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]time.Time
}

func NewMemoryTokenRepo() *MemoryTokenRepo {
	return &MemoryTokenRepo{
		tokens: make(map[string]time.Time),
	}
}

func (r *MemoryTokenRepo) SaveRefreshToken(_ context.Context, token string, exp time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens[token] = time.Now().Add(exp)

	return nil
}

func (r *MemoryTokenRepo) HasRefreshToken(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.tokens[token]

	return ok, nil
}

func (r *MemoryTokenRepo) TakeRefreshToken(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tokens[token]; !ok {
		return false, nil
	}

	delete(r.tokens, token)

	return true, nil
}

// Len reports the current size of the active set. Used by tests.
func (r *MemoryTokenRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.tokens)
}
