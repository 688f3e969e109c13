package archive

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"mmreport/core"
	"mmreport/storage"
)

var (
	ErrRunNotFound  = errors.New("run not found")
	ErrInvalidLabel = errors.New("invalid run label")
)

// ValidateLabel rejects labels that cannot double as a file name prefix.
func ValidateLabel(label string) error {
	switch {
	case label == "":
		return fmt.Errorf("%w: empty", ErrInvalidLabel)
	case label == "." || label == "..":
		return fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	case strings.ContainsAny(label, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidLabel, label)
	}
	return nil
}

// DB archives imported result sets under a label so that reports can be
// regenerated after the CSV files are gone.
type DB struct {
	store *BackingStore
	mds   storage.MetadataStore
	mu    sync.Mutex
	now   func() time.Time
}

func newDB(backend storage.Backend, mds storage.MetadataStore, cacheEnabled bool) (*DB, error) {
	store, err := NewBackingStore(backend, cacheEnabled)
	if err != nil {
		return nil, err
	}
	return &DB{
		store: store,
		mds:   mds,
		now:   time.Now,
	}, nil
}

// Open opens or creates a badger-backed archive in path.
func Open(path string, cacheEnabled bool) (*DB, error) {
	badgerDb, err := storage.OpenBadger(&storage.BadgerBackendConfig{
		Path:   path,
		Logger: log.WithField("component", "badger"),
	})
	if err != nil {
		return nil, err
	}
	db, err := newDB(
		storage.NewBadgerBacked(badgerDb),
		storage.NewBadgerMetadataStore(badgerDb),
		cacheEnabled)
	if err != nil {
		badgerDb.Close()
		return nil, err
	}
	return db, nil
}

func NewInMemory() *DB {
	db, err := newDB(storage.NewInMemoryBackend(), storage.NewSimpleMetadataStore(), false)
	if err != nil {
		panic(err)
	}
	return db
}

// Import stores set under label, replacing any earlier run with that label.
func (db *DB) Import(label string, set *core.ResultSet) (*Run, error) {
	if err := ValidateLabel(label); err != nil {
		return nil, err
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	previous, err := db.getRun(label)
	if err != nil && !errors.Is(err, ErrRunNotFound) {
		return nil, err
	}

	runID, err := db.mds.NextRunID()
	if err != nil {
		return nil, err
	}
	run := &Run{
		Label:    label,
		ID:       runID,
		Rows:     int64(set.Len()),
		Imported: db.now().UTC(),
	}
	if err := db.store.PutRun(runID, set); err != nil {
		return nil, fmt.Errorf("writing rows of %s: %w", label, err)
	}
	if err := db.mds.PutRun(label, RunToBytes(run)); err != nil {
		return nil, err
	}

	if previous != nil {
		if err := db.store.DeleteRun(previous.ID); err != nil {
			log.WithError(err).Warnf("Could not drop rows of replaced run %s", label)
		}
	}
	log.Infof("Archived %d rows as run %s", run.Rows, label)
	return run, nil
}

func (db *DB) getRun(label string) (*Run, error) {
	buf, err := db.mds.GetRun(label)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, label)
	}
	if err != nil {
		return nil, err
	}
	return BytesToRun(label, buf)
}

func (db *DB) GetRun(label string) (*Run, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.getRun(label)
}

// Load returns the rows archived under label in import order.
func (db *DB) Load(label string) (*core.ResultSet, error) {
	run, err := db.GetRun(label)
	if err != nil {
		return nil, err
	}
	return db.store.GetRun(run.ID)
}

// Runs lists archived runs ordered by label.
func (db *DB) Runs() ([]*Run, error) {
	runs := make([]*Run, 0)
	err := db.mds.IterateRuns(func(label string, buf []byte) error {
		run, err := BytesToRun(label, buf)
		if err != nil {
			return err
		}
		runs = append(runs, run)
		return nil
	})
	return runs, err
}

func (db *DB) Delete(label string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	run, err := db.getRun(label)
	if err != nil {
		return err
	}
	if err := db.mds.DeleteRun(label); err != nil {
		return err
	}
	return db.store.DeleteRun(run.ID)
}

func (db *DB) Close() error {
	err := db.mds.Close()
	if closeErr := db.store.Close(); err == nil {
		err = closeErr
	}
	return err
}
