package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/akulikov/timelimit/internal/models"
	"github.com/akulikov/timelimit/internal/store"
)

// SyncResult is the outcome of a reconcile attempt.
type SyncResult struct {
	// Accepted reports whether the patch was applied.
	Accepted bool
	// AuthKey carries the newly issued key when the record was created by
	// this call. Empty otherwise.
	AuthKey string
	// Delta carries the current record when the write was rejected as
	// stale, so the caller can reconcile and retry. Nil otherwise.
	Delta *models.ClientRecord
}

// SyncService implements the conflict-detecting synchronization protocol.
type SyncService struct {
	store RecordStore
	locks *store.KeyLock
}

// NewSyncService constructs a SyncService sharing locks with the AuthService.
func NewSyncService(st RecordStore, locks *store.KeyLock) *SyncService {
	return &SyncService{store: st, locks: locks}
}

// Reconcile decides whether the submitted patch may be applied to the record
// for id.
//
// An unknown id takes the creation path: the patch must validate as a
// complete record, a fresh auth key is issued, and that key becomes both the
// sole entry of the record's key set and its sync author.
//
// For an existing record the caller's key must have been issued for it, and
// the write is accepted when any of these hold:
//   - parentMode is set (explicit override),
//   - the caller's key is already the record's sync author, or
//   - the patch's syncAuthor matches the record's, proving the caller has
//     seen the latest accepted write.
//
// An accepted patch is applied as a unit over the stored fields and the
// caller becomes the new sync author. A rejected write mutates nothing and
// returns the current record as Delta. Rejection is a normal protocol
// outcome, not an error.
func (s *SyncService) Reconcile(ctx context.Context, id, authKey string, patch models.RecordPatch, parentMode bool) (SyncResult, error) {
	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	rec, err := loadRecord(ctx, s.store, id)
	if errors.Is(err, ErrNotFound) {
		return s.create(ctx, id, patch)
	}
	if err != nil {
		return SyncResult{}, err
	}

	if !rec.HasKey(authKey) {
		return SyncResult{}, ErrUnauthorized
	}

	clientAuthor := ""
	if patch.SyncAuthor != nil {
		clientAuthor = *patch.SyncAuthor
	}
	if !parentMode && authKey != rec.SyncAuthor && clientAuthor != rec.SyncAuthor {
		// The caller has not seen the latest accepted write.
		delta := rec.Client()
		return SyncResult{Accepted: false, Delta: &delta}, nil
	}

	rec.Apply(patch)
	rec.SyncAuthor = authKey
	if err := saveRecord(ctx, s.store, id, rec); err != nil {
		return SyncResult{}, err
	}
	return SyncResult{Accepted: true}, nil
}

// create handles the Absent → Active transition. The creating key is issued
// here rather than through Authorize, so a record may exist before any
// credential is set.
func (s *SyncService) create(ctx context.Context, id string, patch models.RecordPatch) (SyncResult, error) {
	if err := patch.ValidateComplete(); err != nil {
		return SyncResult{}, err
	}

	key := uuid.NewString()
	rec := &models.SecureRecord{
		SyncAuthor: key,
		AuthKeys:   []string{key},
	}
	rec.Apply(patch)
	if err := saveRecord(ctx, s.store, id, rec); err != nil {
		return SyncResult{}, err
	}
	return SyncResult{Accepted: true, AuthKey: key}, nil
}

// Fetch returns the client-facing projection of the record for id. The
// credential hash and the key list never leave the server.
func (s *SyncService) Fetch(ctx context.Context, id, authKey string) (models.ClientRecord, error) {
	rec, err := loadRecord(ctx, s.store, id)
	if err != nil {
		return models.ClientRecord{}, err
	}
	if !rec.HasKey(authKey) {
		return models.ClientRecord{}, ErrUnauthorized
	}
	return rec.Client(), nil
}
