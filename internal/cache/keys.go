package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache key inventory. Every cached read and its invalidation points go
// through these helpers so the key space stays discoverable in one place.
const (
	petKeyPrefix  = "pet:"
	userKeyPrefix = "user:"

	// PetTTL bounds staleness for individual pet reads.
	PetTTL = 5 * time.Minute
	// UserTTL bounds staleness for individual user reads.
	UserTTL = 10 * time.Minute
)

// PetKey returns the cache key for a single pet by ID.
func PetKey(id uint) string {
	return fmt.Sprintf("%s%d", petKeyPrefix, id)
}

// UserKey returns the cache key for a single user by ID.
func UserKey(id uint) string {
	return fmt.Sprintf("%s%d", userKeyPrefix, id)
}

// InvalidatePet removes the cached entry for a pet after a write.
func InvalidatePet(ctx context.Context, id uint) {
	if client == nil {
		return
	}
	client.Del(ctx, PetKey(id))
}

// InvalidateUser removes the cached entry for a user after a write.
func InvalidateUser(ctx context.Context, id uint) {
	if client == nil {
		return
	}
	client.Del(ctx, UserKey(id))
}
