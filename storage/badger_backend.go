package storage

import (
	"errors"

	"github.com/dgraph-io/badger/v2"
)

type BadgerBackendConfig struct {
	Path     string
	InMemory bool
	Logger   badger.Logger
}

func TestBadgerBackendConfig() *BadgerBackendConfig {
	return &BadgerBackendConfig{InMemory: true}
}

func OpenBadger(config *BadgerBackendConfig) (*badger.DB, error) {
	options := badger.DefaultOptions(config.Path).
		WithTruncate(true).
		WithLogger(config.Logger)
	if config.InMemory {
		options = options.WithInMemory(true).WithDir("").WithValueDir("")
	}
	return badger.Open(options)
}

type BadgerBackend struct {
	db *badger.DB
}

func NewBadgerBacked(db *badger.DB) *BadgerBackend {
	return &BadgerBackend{db: db}
}

func (backend *BadgerBackend) Close() error {
	return backend.db.Close()
}

func txnGet(db *badger.DB, key []byte) ([]byte, error) {
	var buf []byte
	err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		buf, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return buf, err
}

func txnPut(db *badger.DB, key, buf []byte) error {
	return db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, buf)
	})
}

// PutRun goes through a write batch; a run can exceed one transaction.
func (backend *BadgerBackend) PutRun(runID int64, rows [][]byte) error {
	batch := backend.db.NewWriteBatch()
	defer batch.Cancel()

	for rowID, buf := range rows {
		if err := batch.Set(GetKey(runID, int64(rowID)), buf); err != nil {
			return err
		}
	}
	return batch.Flush()
}

func (backend *BadgerBackend) DeleteRun(runID int64) error {
	keys := make([][]byte, 0)
	prefix := GetRunPrefix(runID)
	err := backend.db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Prefix = prefix
		iterOpts.PrefetchValues = false
		iter := txn.NewIterator(iterOpts)
		defer iter.Close()

		for iter.Seek(prefix); iter.ValidForPrefix(prefix); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return err
	}

	batch := backend.db.NewWriteBatch()
	defer batch.Cancel()
	for _, key := range keys {
		if err := batch.Delete(key); err != nil {
			return err
		}
	}
	return batch.Flush()
}

func (backend *BadgerBackend) IterateRun(runID int64, lambda func(int64, []byte) error) error {
	prefix := GetRunPrefix(runID)
	return backend.db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Prefix = prefix
		iter := txn.NewIterator(iterOpts)
		defer iter.Close()

		for iter.Seek(prefix); iter.ValidForPrefix(prefix); iter.Next() {
			item := iter.Item()
			buf, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := lambda(GetRowIDFromKey(item.Key()), buf); err != nil {
				return err
			}
		}
		return nil
	})
}
