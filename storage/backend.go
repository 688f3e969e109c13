package storage

import (
	"encoding/binary"
	"errors"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("key not found")

// Row keys sort by run, then row. Big-endian keeps badger's lexicographic
// iteration in row order.
const rowKeyTag = byte(0x01)

func GetRunPrefix(runID int64) []byte {
	buf := make([]byte, 9)
	buf[0] = rowKeyTag
	binary.BigEndian.PutUint64(buf[1:], uint64(runID))
	return buf
}

func GetKey(runID, rowID int64) []byte {
	buf := make([]byte, 17)

	// <1 byte tag> <8 bytes run ID> <8 bytes row ID>
	buf[0] = rowKeyTag
	binary.BigEndian.PutUint64(buf[1:9], uint64(runID))
	binary.BigEndian.PutUint64(buf[9:], uint64(rowID))

	return buf
}

func GetRunIDFromKey(buf []byte) int64 {
	return int64(binary.BigEndian.Uint64(buf[1:9]))
}

func GetRowIDFromKey(buf []byte) int64 {
	return int64(binary.BigEndian.Uint64(buf[9:]))
}

type Backend interface {
	// PutRun writes rows 0..n-1 of a run in one batch.
	PutRun(int64, [][]byte) error
	DeleteRun(int64) error

	// IterateRun visits the rows of a run in row order.
	IterateRun(int64, func(int64, []byte) error) error

	Close() error
}

type InMemoryBackend struct {
	rowMap      map[string][]byte
	rowMapMutex sync.Mutex
}

func NewInMemoryBackend() *InMemoryBackend {
	return &InMemoryBackend{
		rowMap: make(map[string][]byte),
	}
}

func (backend *InMemoryBackend) PutRun(runID int64, rows [][]byte) error {
	backend.rowMapMutex.Lock()
	defer backend.rowMapMutex.Unlock()
	for rowID, buf := range rows {
		backend.rowMap[string(GetKey(runID, int64(rowID)))] = buf
	}
	return nil
}

func (backend *InMemoryBackend) DeleteRun(runID int64) error {
	backend.rowMapMutex.Lock()
	defer backend.rowMapMutex.Unlock()
	for k := range backend.rowMap {
		if GetRunIDFromKey([]byte(k)) == runID {
			delete(backend.rowMap, k)
		}
	}
	return nil
}

func (backend *InMemoryBackend) IterateRun(runID int64, lambda func(int64, []byte) error) error {
	backend.rowMapMutex.Lock()
	rowIDs := make([]int64, 0)
	bufs := make(map[int64][]byte)
	for k, buf := range backend.rowMap {
		key := []byte(k)
		if GetRunIDFromKey(key) != runID {
			continue
		}
		rowID := GetRowIDFromKey(key)
		rowIDs = append(rowIDs, rowID)
		bufs[rowID] = buf
	}
	backend.rowMapMutex.Unlock()

	sort.Slice(rowIDs, func(i, j int) bool { return rowIDs[i] < rowIDs[j] })
	for _, rowID := range rowIDs {
		if err := lambda(rowID, bufs[rowID]); err != nil {
			return err
		}
	}
	return nil
}

func (backend *InMemoryBackend) Close() error {
	backend.rowMapMutex.Lock()
	defer backend.rowMapMutex.Unlock()
	backend.rowMap = nil
	return nil
}
