package tasks

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-service/backend/internal/db"
)

func storesUnderTest(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()

	conn, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "tasks.db"), 4)
	require.NoError(t, err)

	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": NewSQLiteStore(conn),
	}

	if url := os.Getenv("TEST_DATABASE_URL"); url != "" {
		pool, err := db.Connect(ctx, db.Options{URL: url, MaxConns: 4})
		require.NoError(t, err)
		_, err = pool.Exec(ctx, `TRUNCATE task RESTART IDENTITY`)
		require.NoError(t, err)
		stores["postgres"] = NewPostgresStore(pool)
	}

	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func TestStoreCreateListDelete(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			list, err := store.List(ctx)
			require.NoError(t, err)
			assert.NotNil(t, list)
			assert.Empty(t, list)

			id, err := store.Create(ctx, "Buy milk")
			require.NoError(t, err)
			assert.Greater(t, id, int64(0))

			list, err = store.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []Task{{TaskID: id, Task: "Buy milk"}}, list)

			require.NoError(t, store.Delete(ctx, id))

			list, err = store.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestStoreCreateRejectsEmptyName(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := store.Create(ctx, "")
			assert.ErrorIs(t, err, ErrNameRequired)

			list, err := store.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestStoreDeleteMissing(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := store.Create(ctx, "keep me")
			require.NoError(t, err)

			assert.ErrorIs(t, store.Delete(ctx, 999), ErrNotFound)

			list, err := store.List(ctx)
			require.NoError(t, err)
			assert.Len(t, list, 1)
		})
	}
}

func TestStoreNeverReusesIDs(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			first, err := store.Create(ctx, "a")
			require.NoError(t, err)
			second, err := store.Create(ctx, "b")
			require.NoError(t, err)
			require.NoError(t, store.Delete(ctx, second))

			third, err := store.Create(ctx, "c")
			require.NoError(t, err)
			assert.Greater(t, second, first)
			assert.Greater(t, third, second)
		})
	}
}

func TestStoreConcurrentCreates(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			const n = 20

			var (
				wg  sync.WaitGroup
				mu  sync.Mutex
				ids = make(map[int64]bool)
			)
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					id, err := store.Create(ctx, "parallel")
					if !assert.NoError(t, err) {
						return
					}
					mu.Lock()
					ids[id] = true
					mu.Unlock()
				}()
			}
			wg.Wait()

			assert.Len(t, ids, n)
			list, err := store.List(ctx)
			require.NoError(t, err)
			assert.Len(t, list, n)
		})
	}
}

func TestStorePing(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, store.Ping(context.Background()))
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "1.5", " 1", "1 ", "9999999999999999999999"} {
		_, err := ParseID(raw)
		assert.ErrorIs(t, err, ErrInvalidID, raw)
	}
}

func TestMemoryStoreZeroValue(t *testing.T) {
	var store MemoryStore
	ctx := context.Background()

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.ErrorIs(t, store.Delete(ctx, 1), ErrNotFound)

	id, err := store.Create(ctx, "first")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, 1, store.Len())
}
