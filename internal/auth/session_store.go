package auth

import (
	"context"
	"strconv"
	"time"
)

const (
	sessionKeyPrefix      = "session:"
	userSessionsKeyPrefix = "user_sessions:"
)

// SessionStoreInterface defines the interface for session storage operations.
type SessionStoreInterface interface {
	StoreSession(ctx context.Context, tokenID string, userID uint, ttl time.Duration) error
	IsSessionActive(ctx context.Context, tokenID string) (bool, error)
	RevokeAll(ctx context.Context, userID uint) error
}

// sessionCache is the slice of the cache client the session store uses.
type sessionCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	SAdd(ctx context.Context, key, member string, ttl time.Duration) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

// SessionStore tracks live token IDs in Redis. Each issued token is keyed
// individually and indexed under its user, so logout can revoke every token
// of a user at once with no grace window. Liveness lookups fail closed: an
// unreachable Redis reads as inactive. Writes and revocation propagate their
// errors, so a logout that could not delete the session keys fails loudly
// instead of reporting success.
type SessionStore struct {
	cache sessionCache
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(cache sessionCache) *SessionStore {
	return &SessionStore{cache: cache}
}

// StoreSession registers an issued token ID for the user with TTL.
func (s *SessionStore) StoreSession(ctx context.Context, tokenID string, userID uint, ttl time.Duration) error {
	if err := s.cache.Set(ctx, sessionKeyPrefix+tokenID, []byte(strconv.FormatUint(uint64(userID), 10)), ttl); err != nil {
		return err
	}
	return s.cache.SAdd(ctx, userSessionsKey(userID), tokenID, ttl)
}

// IsSessionActive reports whether a token ID is still live.
func (s *SessionStore) IsSessionActive(ctx context.Context, tokenID string) (bool, error) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+tokenID)
	if err != nil {
		return false, err
	}
	return data != nil, nil
}

// RevokeAll invalidates every live token of the user immediately. Any
// failure to delete a key is returned; callers must not report the logout
// as successful in that case.
func (s *SessionStore) RevokeAll(ctx context.Context, userID uint) error {
	key := userSessionsKey(userID)
	tokenIDs, err := s.cache.SMembers(ctx, key)
	if err != nil {
		return err
	}
	for _, tokenID := range tokenIDs {
		if err := s.cache.Delete(ctx, sessionKeyPrefix+tokenID); err != nil {
			return err
		}
	}
	return s.cache.Delete(ctx, key)
}

func userSessionsKey(userID uint) string {
	return userSessionsKeyPrefix + strconv.FormatUint(uint64(userID), 10)
}
