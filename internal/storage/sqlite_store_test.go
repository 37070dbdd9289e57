package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/benmeehan/location-base/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "locations.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.EnsureSchema(context.Background()))
	return store
}

func TestSQLiteStore_EmptyTable(t *testing.T) {
	store := newTestStore(t)

	records, err := store.SelectAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	id, err := store.Insert(ctx, "12.345678", "-98.765432")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	records, err := store.SelectAll(ctx)
	require.NoError(t, err)

	want := []models.LocationRecord{{ID: 1, Latitude: "12.345678", Longitude: "-98.765432"}}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("SelectAll mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteStore_AppendOnlyGrowth(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	var want []models.LocationRecord
	for i := 0; i < 5; i++ {
		lat := fmt.Sprintf("%d.5", i)
		lon := fmt.Sprintf("-%d.25", i)
		id, err := store.Insert(ctx, lat, lon)
		require.NoError(t, err)
		want = append(want, models.LocationRecord{ID: id, Latitude: lat, Longitude: lon})

		records, err := store.SelectAll(ctx)
		require.NoError(t, err)
		if diff := cmp.Diff(want, records); diff != "" {
			t.Fatalf("after insert %d (-want +got):\n%s", i, diff)
		}
	}

	for i := 1; i < len(want); i++ {
		assert.Greater(t, want[i].ID, want[i-1].ID)
	}
}

func TestSQLiteStore_IdempotentRead(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Insert(ctx, "1", "2")
	require.NoError(t, err)
	_, err = store.Insert(ctx, "3", "4")
	require.NoError(t, err)

	first, err := store.SelectAll(ctx)
	require.NoError(t, err)
	second, err := store.SelectAll(ctx)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(first, second))
}

func TestSQLiteStore_SchemaIdempotence(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Insert(ctx, "1", "2")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.EnsureSchema(ctx))
	}

	records, err := store.SelectAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "locations.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.EnsureSchema(ctx))
	_, err = store.Insert(ctx, "48.8584", "2.2945")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.EnsureSchema(ctx))

	records, err := reopened.SelectAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.LocationRecord{{ID: 1, Latitude: "48.8584", Longitude: "2.2945"}}, records)
	assert.Equal(t, path, reopened.Path())
}

func TestSQLiteStore_IDsNotReusedAfterReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "locations.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.EnsureSchema(ctx))
	_, err = store.Insert(ctx, "1", "1")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	id, err := reopened.Insert(ctx, "2", "2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)
}

func TestSQLiteStore_InMemory(t *testing.T) {
	ctx := context.Background()

	store, err := NewSQLiteStore(MemoryPath)
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.EnsureSchema(ctx))

	_, err = store.Insert(ctx, "1", "2")
	require.NoError(t, err)

	records, err := store.SelectAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSQLiteStore_InsertRejectsEmptyCoordinate(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Insert(ctx, "", "2")
	assert.ErrorIs(t, err, ErrEmptyCoordinate)
	_, err = store.Insert(ctx, "1", "")
	assert.ErrorIs(t, err, ErrEmptyCoordinate)

	records, err := store.SelectAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSQLiteStore_SelectWithoutSchemaFails(t *testing.T) {
	store, err := NewSQLiteStore(MemoryPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.SelectAll(context.Background())
	assert.Error(t, err)
}

func TestSQLiteStore_ConcurrentInsertsGetUniqueIDs(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	const writers = 16
	ids := make([]int64, writers)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < writers; i++ {
		g.Go(func() error {
			id, err := store.Insert(gctx, fmt.Sprintf("%d", i), fmt.Sprintf("%d", -i))
			ids[i] = id
			return err
		})
	}
	require.NoError(t, g.Wait())

	seen := make(map[int64]struct{}, writers)
	for _, id := range ids {
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %d", id)
		seen[id] = struct{}{}
	}

	records, err := store.SelectAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, writers)
}
