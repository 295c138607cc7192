package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/akulikov/timelimit/internal/models"
	"github.com/akulikov/timelimit/internal/store"
)

// RecordStore is the subset of the store contract the services need.
type RecordStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// loadRecord fetches and decodes the record for id. Returns ErrNotFound when
// the store has no entry. A record that fails to decode or validate is an
// integrity fault: it is surfaced as an error and never repaired in place.
func loadRecord(ctx context.Context, st RecordStore, id string) (*models.SecureRecord, error) {
	raw, err := st.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load record %s: %w", id, err)
	}
	var rec models.SecureRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", id, err)
	}
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("stored record %s is corrupt: %w", id, err)
	}
	return &rec, nil
}

// saveRecord validates, encodes, and persists the record under id.
func saveRecord(ctx context.Context, st RecordStore, id string, rec *models.SecureRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", id, err)
	}
	if err := st.Put(ctx, id, string(raw)); err != nil {
		return fmt.Errorf("persist record %s: %w", id, err)
	}
	return nil
}
