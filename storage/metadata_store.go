package storage

import (
	"sort"
	"sync"
)

// MetadataStore keeps one opaque record per run label and the run ID counter.
type MetadataStore interface {
	NextRunID() (int64, error)

	PutRun(string, []byte) error
	GetRun(string) ([]byte, error)
	DeleteRun(string) error
	IterateRuns(func(string, []byte) error) error

	Close() error
}

type SimpleMetadataStore struct {
	nextRunID int64
	runs      map[string][]byte
	mu        sync.Mutex
}

func NewSimpleMetadataStore() *SimpleMetadataStore {
	return &SimpleMetadataStore{
		nextRunID: 0,
		runs:      make(map[string][]byte),
	}
}

func (smm *SimpleMetadataStore) NextRunID() (int64, error) {
	smm.mu.Lock()
	defer smm.mu.Unlock()
	id := smm.nextRunID
	smm.nextRunID++
	return id, nil
}

func (smm *SimpleMetadataStore) PutRun(label string, buf []byte) error {
	smm.mu.Lock()
	defer smm.mu.Unlock()
	smm.runs[label] = buf
	return nil
}

func (smm *SimpleMetadataStore) GetRun(label string) ([]byte, error) {
	smm.mu.Lock()
	defer smm.mu.Unlock()
	buf, ok := smm.runs[label]
	if !ok {
		return nil, ErrNotFound
	}
	return buf, nil
}

func (smm *SimpleMetadataStore) DeleteRun(label string) error {
	smm.mu.Lock()
	defer smm.mu.Unlock()
	if _, ok := smm.runs[label]; !ok {
		return ErrNotFound
	}
	delete(smm.runs, label)
	return nil
}

func (smm *SimpleMetadataStore) IterateRuns(lambda func(string, []byte) error) error {
	smm.mu.Lock()
	labels := make([]string, 0, len(smm.runs))
	for label := range smm.runs {
		labels = append(labels, label)
	}
	runs := make(map[string][]byte, len(smm.runs))
	for label, buf := range smm.runs {
		runs[label] = buf
	}
	smm.mu.Unlock()

	sort.Strings(labels)
	for _, label := range labels {
		if err := lambda(label, runs[label]); err != nil {
			return err
		}
	}
	return nil
}

func (smm *SimpleMetadataStore) Close() error {
	return nil
}
