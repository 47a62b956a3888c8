package engine

import "cerealdash/internal/models"

// DatasetStore holds the loaded records and the current filtered subset.
// Records are never modified after construction.
type DatasetStore struct {
	records  []models.Record
	index    map[string]int
	filtered []models.Record
}

// NewDatasetStore indexes records by name. Later duplicates of a name are ignored.
func NewDatasetStore(records []models.Record) *DatasetStore {
	ds := &DatasetStore{
		records: make([]models.Record, 0, len(records)),
		index:   make(map[string]int, len(records)),
	}
	for _, r := range records {
		if _, dup := ds.index[r.Name]; dup {
			continue
		}
		ds.index[r.Name] = len(ds.records)
		ds.records = append(ds.records, r)
	}
	ds.filtered = ds.records
	return ds
}

func (ds *DatasetStore) All() []models.Record {
	return ds.records
}

func (ds *DatasetStore) Len() int {
	return len(ds.records)
}

func (ds *DatasetStore) Filtered() []models.Record {
	return ds.filtered
}

func (ds *DatasetStore) SetFiltered(subset []models.Record) {
	ds.filtered = subset
}

func (ds *DatasetStore) Has(name string) bool {
	_, ok := ds.index[name]
	return ok
}

func (ds *DatasetStore) Lookup(name string) (models.Record, bool) {
	i, ok := ds.index[name]
	if !ok {
		return models.Record{}, false
	}
	return ds.records[i], true
}

// Select returns the records whose names are in keys, in dataset order.
func (ds *DatasetStore) Select(keys models.KeySet) []models.Record {
	out := make([]models.Record, 0, len(keys))
	for _, r := range ds.records {
		if keys.Has(r.Name) {
			out = append(out, r)
		}
	}
	return out
}
