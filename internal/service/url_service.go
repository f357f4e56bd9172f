package service

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"errors"

	"github.com/linkshorter/linkshorter/internal/store"
	"github.com/linkshorter/linkshorter/internal/validator"
)

// Custom errors for the service layer
var (
	ErrInvalidURL        = errors.New("invalid URL format")
	ErrKeyReserved       = errors.New("custom key is reserved")
	ErrKeyFormat         = errors.New("custom key has invalid format")
	ErrKeyTaken          = errors.New("custom key already exists")
	ErrKeyNotFound       = errors.New("short key not found")
	ErrKeySpaceExhausted = errors.New("could not generate an unused key")
)

// maxKeyAttempts bounds the collision-retry loop in Create. Exhausting it
// means the key space is saturated or the run was exceptionally unlucky;
// either way it is an internal failure, not caller fault.
const maxKeyAttempts = 10

// KeyGenerator produces candidate short keys.
type KeyGenerator interface {
	NewKey() (string, error)
}

// ShortenerService holds the business logic for creating, resolving and
// deleting short links. It keeps no state of its own; everything lives in
// the store.
type ShortenerService struct {
	store      store.Store
	keygen     KeyGenerator
	uniqueLink bool
}

// NewShortenerService creates a new service instance. With uniqueLink
// enabled, repeated submissions of the same URL reuse the key already
// minted for it instead of creating duplicates.
func NewShortenerService(st store.Store, gen KeyGenerator, uniqueLink bool) *ShortenerService {
	return &ShortenerService{
		store:      st,
		keygen:     gen,
		uniqueLink: uniqueLink,
	}
}

// Create binds a short key to rawURL and returns the key. When customKey
// is non-empty it is validated (reserved set, format rule, availability)
// and claimed; otherwise a key is generated, honoring unique-link mode.
//
// The availability check and the write are separate store operations, so
// two concurrent requests can both pass the check before either writes.
// The store resolves that race as last write wins.
func (s *ShortenerService) Create(ctx context.Context, rawURL, customKey string) (string, error) {
	if !validator.CheckURL(rawURL) {
		return "", ErrInvalidURL
	}

	if customKey != "" {
		return s.claimCustomKey(ctx, rawURL, customKey)
	}

	if s.uniqueLink {
		existing, err := s.store.Get(ctx, hashKey(rawURL))
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return "", err
		}
	}

	return s.generateKey(ctx, rawURL)
}

func (s *ShortenerService) claimCustomKey(ctx context.Context, rawURL, customKey string) (string, error) {
	if validator.IsReservedKey(customKey) {
		return "", ErrKeyReserved
	}
	if !validator.CheckCustomKeyFormat(customKey) {
		return "", ErrKeyFormat
	}

	_, err := s.store.Get(ctx, customKey)
	if err == nil {
		return "", ErrKeyTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", err
	}

	if err := s.store.Put(ctx, customKey, rawURL); err != nil {
		return "", err
	}
	if s.uniqueLink {
		if err := s.store.Put(ctx, hashKey(rawURL), customKey); err != nil {
			return "", err
		}
	}
	return customKey, nil
}

// generateKey mints a fresh random key with a bounded retry loop.
func (s *ShortenerService) generateKey(ctx context.Context, rawURL string) (string, error) {
	for i := 0; i < maxKeyAttempts; i++ {
		key, err := s.keygen.NewKey()
		if err != nil {
			return "", err
		}

		_, err = s.store.Get(ctx, key)
		if err == nil {
			continue // collision, try again
		}
		if !errors.Is(err, store.ErrNotFound) {
			return "", err
		}

		if err := s.store.Put(ctx, key, rawURL); err != nil {
			return "", err
		}
		if s.uniqueLink {
			if err := s.store.Put(ctx, hashKey(rawURL), key); err != nil {
				return "", err
			}
		}
		return key, nil
	}
	return "", ErrKeySpaceExhausted
}

// Resolve returns the target URL for key, with the lookup request's raw
// query string appended when present.
func (s *ShortenerService) Resolve(ctx context.Context, key, rawQuery string) (string, error) {
	target, err := s.store.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}

	if rawQuery != "" {
		target += "?" + rawQuery
	}
	return target, nil
}

// Delete removes the binding for key. When unique-link mode is on, the
// dedup-index entry pointing at key is removed alongside it so a stale
// hash can never resolve to a reused key.
func (s *ShortenerService) Delete(ctx context.Context, key string) error {
	target, err := s.store.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return ErrKeyNotFound
	}
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, key); err != nil {
		return err
	}

	if s.uniqueLink {
		indexed, err := s.store.Get(ctx, hashKey(target))
		if err == nil && indexed == key {
			return s.store.Delete(ctx, hashKey(target))
		}
	}
	return nil
}

// hashKey derives the dedup-index key for a target URL. The hex digest is
// 128 characters, far past the 20-character key limit, so index entries
// can never collide with short keys in the shared namespace.
func hashKey(rawURL string) string {
	sum := sha512.Sum512([]byte(rawURL))
	return hex.EncodeToString(sum[:])
}
