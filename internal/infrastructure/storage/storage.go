package storage

import (
	"context"
	"errors"
)

// Storage keys for the two persisted collections.
const (
	PatientsKey     = "medical_patients"
	AppointmentsKey = "medical_appointments"
)

// ErrKeyNotFound is returned by Get when a key has never been written
// (or was removed). Callers treat a missing collection as empty.
var ErrKeyNotFound = errors.New("storage: key not found")

// Store is a flat key-value store holding whole serialized collections.
// Every Set replaces the full value for a key; there are no partial writes.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
