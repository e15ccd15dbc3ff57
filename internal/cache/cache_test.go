package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedPet struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAsideMissLoadsAndCaches(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	loads := 0
	var got cachedPet
	err := Aside(ctx, PetKey(1), &got, PetTTL, func() error {
		loads++
		got = cachedPet{ID: 1, Name: "Biscuit"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, loads)
	assert.Equal(t, "Biscuit", got.Name)
	assert.True(t, mr.Exists(PetKey(1)))

	// Second read should hit the cache and skip the loader.
	var again cachedPet
	err = Aside(ctx, PetKey(1), &again, PetTTL, func() error {
		loads++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, loads)
	assert.Equal(t, "Biscuit", again.Name)
}

func TestAsideLoaderErrorNotCached(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	wantErr := errors.New("db down")
	var got cachedPet
	err := Aside(ctx, PetKey(2), &got, PetTTL, func() error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.False(t, mr.Exists(PetKey(2)))
}

func TestAsideCorruptEntryFallsThrough(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(PetKey(3), "not json"))

	var got cachedPet
	err := Aside(ctx, PetKey(3), &got, PetTTL, func() error {
		got = cachedPet{ID: 3, Name: "Mochi"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Mochi", got.Name)
}

func TestAsideWithoutClient(t *testing.T) {
	SetClient(nil)

	var got cachedPet
	err := Aside(context.Background(), PetKey(4), &got, time.Minute, func() error {
		got = cachedPet{ID: 4, Name: "Pepper"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Pepper", got.Name)
}

func TestInvalidatePet(t *testing.T) {
	mr := setupMiniredis(t)
	require.NoError(t, mr.Set(PetKey(5), `{"id":5}`))

	InvalidatePet(context.Background(), 5)
	assert.False(t, mr.Exists(PetKey(5)))
}

func TestInvalidateUser(t *testing.T) {
	mr := setupMiniredis(t)
	require.NoError(t, mr.Set(UserKey(7), `{"id":7}`))

	InvalidateUser(context.Background(), 7)
	assert.False(t, mr.Exists(UserKey(7)))
}
