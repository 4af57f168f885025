package reportmem

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigval/internal/domain"
)

func record(id string) domain.ValidationRecord {
	return domain.ValidationRecord{
		ID:         id,
		PolicyName: "default",
		Report:     &domain.SimpleReport{ID: id},
	}
}

func TestStore_SaveGet(t *testing.T) {
	store := New(0)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, record("a")))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.Report.ID)

	_, err = store.Get(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_RejectsDuplicatesAndEmptyIDs(t *testing.T) {
	store := New(0)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, record("a")))
	require.Error(t, store.Save(ctx, record("a")))
	require.Error(t, store.Save(ctx, record("")))
}

func TestStore_EvictsOldest(t *testing.T) {
	store := New(2)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Save(ctx, record(id)))
	}
	assert.Equal(t, 2, store.Len())
	_, err := store.Get(ctx, "a")
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.Get(ctx, "c")
	require.NoError(t, err)
}
