package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeCache is an in-memory sessionCache with injectable failures.
type fakeCache struct {
	values map[string][]byte
	sets   map[string][]string

	getErr      error
	setErr      error
	deleteErr   error
	sAddErr     error
	sMembersErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		values: map[string][]byte{},
		sets:   map[string][]string{},
	}
}

func (f *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.values[key], nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.values, key)
	delete(f.sets, key)
	return nil
}

func (f *fakeCache) SAdd(ctx context.Context, key, member string, ttl time.Duration) error {
	if f.sAddErr != nil {
		return f.sAddErr
	}
	f.sets[key] = append(f.sets[key], member)
	return nil
}

func (f *fakeCache) SMembers(ctx context.Context, key string) ([]string, error) {
	if f.sMembersErr != nil {
		return nil, f.sMembersErr
	}
	return f.sets[key], nil
}

func TestSessionStore_RevokeAll(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes every token of the user", func(t *testing.T) {
		cache := newFakeCache()
		store := NewSessionStore(cache)

		assert.NoError(t, store.StoreSession(ctx, "token-a", 42, time.Hour))
		assert.NoError(t, store.StoreSession(ctx, "token-b", 42, time.Hour))

		active, err := store.IsSessionActive(ctx, "token-a")
		assert.NoError(t, err)
		assert.True(t, active)

		assert.NoError(t, store.RevokeAll(ctx, 42))

		for _, tokenID := range []string{"token-a", "token-b"} {
			active, err := store.IsSessionActive(ctx, tokenID)
			assert.NoError(t, err)
			assert.False(t, active)
		}
	})

	t.Run("surfaces a failed member listing", func(t *testing.T) {
		cache := newFakeCache()
		cache.sMembersErr = errors.New("connection refused")
		store := NewSessionStore(cache)

		err := store.RevokeAll(ctx, 42)

		assert.Error(t, err)
	})

	t.Run("surfaces a failed key deletion and keeps the index", func(t *testing.T) {
		cache := newFakeCache()
		store := NewSessionStore(cache)
		assert.NoError(t, store.StoreSession(ctx, "token-a", 42, time.Hour))

		cache.deleteErr = errors.New("connection refused")
		err := store.RevokeAll(ctx, 42)

		assert.Error(t, err)

		// The session index survives so a retry can still find the token.
		cache.deleteErr = nil
		assert.NoError(t, store.RevokeAll(ctx, 42))
		active, err := store.IsSessionActive(ctx, "token-a")
		assert.NoError(t, err)
		assert.False(t, active)
	})
}

func TestSessionStore_StoreSession(t *testing.T) {
	ctx := context.Background()

	t.Run("surfaces a failed session write", func(t *testing.T) {
		cache := newFakeCache()
		cache.setErr = errors.New("connection refused")
		store := NewSessionStore(cache)

		assert.Error(t, store.StoreSession(ctx, "token-a", 42, time.Hour))
	})

	t.Run("surfaces a failed index write", func(t *testing.T) {
		cache := newFakeCache()
		cache.sAddErr = errors.New("connection refused")
		store := NewSessionStore(cache)

		assert.Error(t, store.StoreSession(ctx, "token-a", 42, time.Hour))
	})
}

func TestSessionStore_IsSessionActive(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown token is inactive", func(t *testing.T) {
		store := NewSessionStore(newFakeCache())

		active, err := store.IsSessionActive(ctx, "never-issued")

		assert.NoError(t, err)
		assert.False(t, active)
	})

	t.Run("lookup failure reads as inactive", func(t *testing.T) {
		cache := newFakeCache()
		cache.getErr = errors.New("connection refused")
		store := NewSessionStore(cache)

		active, err := store.IsSessionActive(ctx, "token-a")

		assert.Error(t, err)
		assert.False(t, active)
	})
}
