package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkshorter/linkshorter/internal/keygen"
	"github.com/linkshorter/linkshorter/internal/store"
)

func setupService(uniqueLink bool) (*ShortenerService, *store.MemoryStore) {
	st := store.NewMemoryStore()
	return NewShortenerService(st, keygen.New(), uniqueLink), st
}

// stubKeygen always returns the same key, to exercise the retry budget.
type stubKeygen struct {
	key string
}

func (s stubKeygen) NewKey() (string, error) {
	return s.key, nil
}

func TestCreateAndResolve(t *testing.T) {
	svc, _ := setupService(false)
	ctx := context.Background()

	key, err := svc.Create(ctx, "https://example.com/some/long/path", "")
	require.NoError(t, err)
	require.Len(t, key, keygen.DefaultLength)
	for _, c := range key {
		require.True(t, strings.ContainsRune(keygen.Alphabet, c), "key %q outside alphabet", key)
	}

	target, err := svc.Resolve(ctx, key, "")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/some/long/path", target)
}

func TestResolveAppendsQuery(t *testing.T) {
	svc, _ := setupService(false)
	ctx := context.Background()

	key, err := svc.Create(ctx, "https://example.com/search", "")
	require.NoError(t, err)

	target, err := svc.Resolve(ctx, key, "q=go&page=2")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/search?q=go&page=2", target)
}

func TestCreateInvalidURL(t *testing.T) {
	svc, st := setupService(false)
	ctx := context.Background()

	for _, rawURL := range []string{"", "example.com", "ftp://example.com", "not a url", "http://"} {
		_, err := svc.Create(ctx, rawURL, "")
		assert.ErrorIs(t, err, ErrInvalidURL, "url %q", rawURL)
	}
	assert.Equal(t, 0, st.Len(), "invalid URLs must never touch the store")
}

func TestCustomKey(t *testing.T) {
	svc, _ := setupService(false)
	ctx := context.Background()

	key, err := svc.Create(ctx, "https://example.com", "my-link")
	require.NoError(t, err)
	assert.Equal(t, "my-link", key)

	// Taken keys are rejected and the original binding survives
	_, err = svc.Create(ctx, "https://other.com", "my-link")
	assert.ErrorIs(t, err, ErrKeyTaken)

	target, err := svc.Resolve(ctx, "my-link", "")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", target)
}

func TestCustomKeyRejections(t *testing.T) {
	svc, st := setupService(false)
	ctx := context.Background()

	_, err := svc.Create(ctx, "https://example.com", "api-auth")
	assert.ErrorIs(t, err, ErrKeyReserved)

	_, err = svc.Create(ctx, "https://example.com", "a")
	assert.ErrorIs(t, err, ErrKeyFormat)

	_, err = svc.Create(ctx, "https://example.com", "has space")
	assert.ErrorIs(t, err, ErrKeyFormat)

	assert.Equal(t, 0, st.Len())
}

func TestUniqueLinkReusesKey(t *testing.T) {
	svc, st := setupService(true)
	ctx := context.Background()

	first, err := svc.Create(ctx, "https://example.com", "")
	require.NoError(t, err)

	second, err := svc.Create(ctx, "https://example.com", "")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// one primary record plus one dedup-index record
	assert.Equal(t, 2, st.Len())
}

func TestUniqueLinkIndexesCustomKey(t *testing.T) {
	svc, _ := setupService(true)
	ctx := context.Background()

	_, err := svc.Create(ctx, "https://example.com", "my-link")
	require.NoError(t, err)

	key, err := svc.Create(ctx, "https://example.com", "")
	require.NoError(t, err)
	assert.Equal(t, "my-link", key)
}

func TestDelete(t *testing.T) {
	svc, _ := setupService(false)
	ctx := context.Background()

	key, err := svc.Create(ctx, "https://example.com", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, key))

	_, err = svc.Resolve(ctx, key, "")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, key), ErrKeyNotFound)
}

func TestDeleteCleansDedupIndex(t *testing.T) {
	svc, st := setupService(true)
	ctx := context.Background()

	key, err := svc.Create(ctx, "https://example.com", "")
	require.NoError(t, err)
	require.Equal(t, 2, st.Len())

	require.NoError(t, svc.Delete(ctx, key))
	assert.Equal(t, 0, st.Len(), "dedup-index entry must go with the key")

	// A re-created link gets a live key, not the stale index target
	fresh, err := svc.Create(ctx, "https://example.com", "")
	require.NoError(t, err)
	target, err := svc.Resolve(ctx, fresh, "")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", target)
}

func TestKeyGenerationRetryBudget(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewShortenerService(st, stubKeygen{key: "stuck1"}, false)
	ctx := context.Background()

	require.NoError(t, st.Put(ctx, "stuck1", "https://taken.example.com"))

	_, err := svc.Create(ctx, "https://example.com", "")
	assert.ErrorIs(t, err, ErrKeySpaceExhausted)

	// The colliding key keeps its original binding
	target, err := svc.Resolve(ctx, "stuck1", "")
	require.NoError(t, err)
	assert.Equal(t, "https://taken.example.com", target)
}

// The availability check and the write are not atomic, so concurrent
// claims of the same custom key may all pass the check; last write wins.
// This pins down that the race never corrupts the store: the final value
// is one of the submitted URLs.
func TestConcurrentCustomKeyClaims(t *testing.T) {
	svc, _ := setupService(false)
	ctx := context.Background()

	urls := []string{
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/c",
		"https://example.com/d",
	}

	var wg sync.WaitGroup
	for _, u := range urls {
		u := u
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Create(ctx, u, "contested")
		}()
	}
	wg.Wait()

	target, err := svc.Resolve(ctx, "contested", "")
	require.NoError(t, err, "at least one claim must have won")
	assert.Contains(t, urls, target)
}
