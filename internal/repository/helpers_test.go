package repository

import (
	"testing"

	"clinic-agenda/internal/infrastructure/storage"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := storage.NewFileStore(afero.NewMemMapFs(), "data")
	assert.NoError(t, err)
	return store
}
