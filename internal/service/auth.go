package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/akulikov/timelimit/internal/store"
)

// AuthService issues and revokes auth keys against a record's credential.
type AuthService struct {
	store RecordStore
	locks *store.KeyLock
}

// NewAuthService constructs an AuthService. locks must be the same KeyLock
// the SyncService uses, so that key issuance and sync writes against one
// record never interleave.
func NewAuthService(st RecordStore, locks *store.KeyLock) *AuthService {
	return &AuthService{store: st, locks: locks}
}

// Authorize verifies password against the record's bcrypt credential and, on
// success, issues a fresh auth key. Previously issued keys are never removed.
// Returns ErrNotFound if no record exists and ErrUnauthorized on mismatch; a
// record whose credential was never set rejects every password.
func (s *AuthService) Authorize(ctx context.Context, id, password string) (string, error) {
	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	rec, err := loadRecord(ctx, s.store, id)
	if err != nil {
		return "", err
	}
	if rec.HashedPassword == "" {
		return "", ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.HashedPassword), []byte(password)) != nil {
		return "", ErrUnauthorized
	}

	key := uuid.NewString()
	rec.AuthKeys = append(rec.AuthKeys, key)
	if err := saveRecord(ctx, s.store, id, rec); err != nil {
		return "", err
	}
	return key, nil
}

// Deauthorize deletes the whole record, revoking every issued key at once.
// There is no single-key revocation. Returns ErrNotFound if no record exists
// and ErrUnauthorized if authKey was never issued for it.
func (s *AuthService) Deauthorize(ctx context.Context, id, authKey string) error {
	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	rec, err := loadRecord(ctx, s.store, id)
	if err != nil {
		return err
	}
	if !rec.HasKey(authKey) {
		return ErrUnauthorized
	}
	return s.store.Delete(ctx, id)
}
