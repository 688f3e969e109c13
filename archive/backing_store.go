package archive

import (
	"github.com/dgraph-io/ristretto"

	"mmreport/core"
	"mmreport/storage"
)

// BackingStore decodes runs from a backend and keeps decoded runs in a
// read cache. Run IDs are never reused, so cached entries cannot go stale.
type BackingStore struct {
	backend      storage.Backend
	cacheEnabled bool
	runCache     *ristretto.Cache
}

func NewBackingStore(backend storage.Backend, cacheEnabled bool) (*BackingStore, error) {
	store := &BackingStore{
		backend:      backend,
		cacheEnabled: cacheEnabled,
	}
	if cacheEnabled {
		// Cost is counted in rows.
		runCache, err := ristretto.NewCache(&ristretto.Config{
			NumCounters: 1e4,
			MaxCost:     1 << 24,
			BufferItems: 64,
		})
		if err != nil {
			return nil, err
		}
		store.runCache = runCache
	}
	return store, nil
}

func (store *BackingStore) PutRun(runID int64, set *core.ResultSet) error {
	rows := make([][]byte, set.Len())
	for i, row := range set.Rows {
		rows[i] = RowToBytes(row)
	}
	return store.backend.PutRun(runID, rows)
}

// GetRun returns a copy of the run's rows.
func (store *BackingStore) GetRun(runID int64) (*core.ResultSet, error) {
	if store.cacheEnabled {
		cached, found := store.runCache.Get(uint64(runID))
		if found {
			return core.Concat(cached.(*core.ResultSet)), nil
		}
	}

	set := core.NewResultSet()
	err := store.backend.IterateRun(runID, func(_ int64, buf []byte) error {
		row, err := BytesToRow(buf)
		if err != nil {
			return err
		}
		set.Append(row)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if store.cacheEnabled {
		store.runCache.Set(uint64(runID), set, int64(set.Len())+1)
	}
	return core.Concat(set), nil
}

func (store *BackingStore) DeleteRun(runID int64) error {
	if store.cacheEnabled {
		store.runCache.Del(uint64(runID))
	}
	return store.backend.DeleteRun(runID)
}

func (store *BackingStore) Close() error {
	if store.cacheEnabled {
		store.runCache.Close()
	}
	return store.backend.Close()
}
