package storage

import (
	"encoding/binary"
	"errors"

	"github.com/dgraph-io/badger/v2"
)

const (
	NextRunIDKey = "meta/next_run_id"
	RunKeyPrefix = "meta/run/"
)

type BadgerMetadataStore struct {
	db *badger.DB
}

func NewBadgerMetadataStore(db *badger.DB) *BadgerMetadataStore {
	return &BadgerMetadataStore{db: db}
}

func GetRunKey(label string) []byte {
	return []byte(RunKeyPrefix + label)
}

func (bms *BadgerMetadataStore) NextRunID() (int64, error) {
	var id int64
	err := bms.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(NextRunIDKey))
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			id = 0
		case err != nil:
			return err
		default:
			buf, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			id = int64(binary.BigEndian.Uint64(buf))
		}
		next := make([]byte, 8)
		binary.BigEndian.PutUint64(next, uint64(id+1))
		return txn.Set([]byte(NextRunIDKey), next)
	})
	return id, err
}

func (bms *BadgerMetadataStore) PutRun(label string, buf []byte) error {
	return txnPut(bms.db, GetRunKey(label), buf)
}

func (bms *BadgerMetadataStore) GetRun(label string) ([]byte, error) {
	return txnGet(bms.db, GetRunKey(label))
}

func (bms *BadgerMetadataStore) DeleteRun(label string) error {
	return bms.db.Update(func(txn *badger.Txn) error {
		key := GetRunKey(label)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return txn.Delete(key)
	})
}

func (bms *BadgerMetadataStore) IterateRuns(lambda func(string, []byte) error) error {
	prefix := []byte(RunKeyPrefix)
	return bms.db.View(func(txn *badger.Txn) error {
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
			label := string(item.Key()[len(prefix):])
			if err := lambda(label, buf); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close is a no-op; the badger handle is owned by the row backend.
func (bms *BadgerMetadataStore) Close() error {
	return nil
}
