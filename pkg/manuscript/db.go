package manuscript

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/xiaomi388/manuscripts/pkg/persistence"
	"github.com/xiaomi388/manuscripts/pkg/types"
)

// DB is the in-memory record list backed by a persistence.Store. Every
// mutation rewrites the whole store. Records are kept exactly as loaded,
// including keys this package knows nothing about. DB is not safe for
// concurrent use.
type DB struct {
	store   persistence.Store
	records []types.Record
}

// Open loads all records from store. A corrupt store is an error the caller
// is expected to treat as fatal.
func Open(store persistence.Store) (*DB, error) {
	records, err := store.LoadRecords()
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	if records == nil {
		records = []types.Record{}
	}

	logrus.Debugf("loaded %d records", len(records))
	return &DB{store: store, records: records}, nil
}

func (db *DB) Close() error {
	return db.store.Close()
}

func (db *DB) save() error {
	if err := db.store.DumpRecords(db.records); err != nil {
		return fmt.Errorf("failed to dump records: %w", err)
	}

	return nil
}

func (db *DB) checkIndex(index int) error {
	if index < 0 || index >= len(db.records) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(db.records))
	}

	return nil
}

// Add appends record and persists the list.
func (db *DB) Add(record types.Record) error {
	db.records = append(db.records, record.Clone())
	logrus.Debugf("added record %d %q", len(db.records)-1, record.Title())
	return db.save()
}

// Edit shallow-merges patch into the record at index and persists the list.
func (db *DB) Edit(index int, patch types.RecordPatch) error {
	if err := db.checkIndex(index); err != nil {
		return err
	}

	db.records[index] = patch.Apply(db.records[index])
	logrus.Debugf("edited record %d %q", index, db.records[index].Title())
	return db.save()
}

// Delete removes the record at index. Later records shift down by one.
func (db *DB) Delete(index int) error {
	if err := db.checkIndex(index); err != nil {
		return err
	}

	title := db.records[index].Title()
	db.records = append(db.records[:index], db.records[index+1:]...)
	logrus.Debugf("deleted record %d %q", index, title)
	return db.save()
}

// Get returns a copy of the record at index, or ErrIndexOutOfRange.
func (db *DB) Get(index int) (types.Record, error) {
	if err := db.checkIndex(index); err != nil {
		return types.Record{}, err
	}

	return db.records[index].Clone(), nil
}

// List returns copies of the records in insertion order. Changing them does
// not change the store.
func (db *DB) List() []types.Record {
	records := make([]types.Record, 0, len(db.records))
	for _, record := range db.records {
		records = append(records, record.Clone())
	}

	return records
}

// Len is the number of records.
func (db *DB) Len() int {
	return len(db.records)
}

// ListFields collects the distinct non-empty model, dataset and metric names
// across all records, each sorted.
func (db *DB) ListFields() types.Fields {
	models := map[string]struct{}{}
	datasets := map[string]struct{}{}
	metrics := map[string]struct{}{}

	for _, record := range db.records {
		collect(models, record.Methods(), types.KeyModelName)
		collect(datasets, record.Datasets(), types.KeyName)
		collect(metrics, record.Metrics(), types.KeyName)
	}

	return types.Fields{
		Models:   sortedKeys(models),
		Datasets: sortedKeys(datasets),
		Metrics:  sortedKeys(metrics),
	}
}

// collect adds the string value of key from each entry. Missing, empty and
// non-string names are skipped.
func collect(set map[string]struct{}, entries []types.Object, key string) {
	for _, e := range entries {
		if name := e.StringValue(key); name != "" {
			set[name] = struct{}{}
		}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Filter returns the records matching every non-empty field of q, in order.
func (db *DB) Filter(q types.Query) []types.Record {
	results := []types.Record{}
	for _, record := range db.records {
		if q.Model != "" && !record.HasModel(q.Model) {
			continue
		}
		if q.Dataset != "" && !record.HasDataset(q.Dataset) {
			continue
		}
		if q.Metric != "" && !record.HasMetric(q.Metric) {
			continue
		}
		results = append(results, record.Clone())
	}

	return results
}

// OpenStorage opens the configured backend and loads it.
func OpenStorage(cfg types.StorageConfig) (*DB, error) {
	store, err := persistence.NewStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	db, err := Open(store)
	if err != nil {
		store.Close()
		return nil, err
	}

	return db, nil
}
