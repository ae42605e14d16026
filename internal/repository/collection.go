package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"clinic-agenda/internal/infrastructure/storage"
)

// loadCollection reads a whole serialized collection. A missing key reads
// as an empty collection, and so does a corrupted payload: availability
// wins over strictness for locally stored data.
func loadCollection[T any](ctx context.Context, store storage.Store, key string) ([]T, error) {
	raw, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return []T{}, nil
		}
		return nil, err
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// saveCollection overwrites the whole serialized collection in one write.
func saveCollection[T any](ctx context.Context, store storage.Store, key string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}
	return store.Set(ctx, key, raw)
}

// nextID assigns ids as max(existing)+1, or 1 for an empty collection.
// Ids are monotonic per collection but not gap-free after deletions.
func nextID[T any](items []T, id func(T) int) int {
	maxID := 0
	for _, item := range items {
		if v := id(item); v > maxID {
			maxID = v
		}
	}
	return maxID + 1
}

// Initialize writes an empty collection under any key that has never been
// written, so first reads see a well-formed empty array.
func Initialize(ctx context.Context, store storage.Store) error {
	for _, key := range []string{storage.PatientsKey, storage.AppointmentsKey} {
		_, err := store.Get(ctx, key)
		if err == nil {
			continue
		}
		if !errors.Is(err, storage.ErrKeyNotFound) {
			return err
		}
		if err := store.Set(ctx, key, []byte("[]")); err != nil {
			return err
		}
	}
	return nil
}
