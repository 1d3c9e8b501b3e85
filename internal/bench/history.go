package bench

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var bucketRuns = []byte("runs")

// History persists measurement results in a local bbolt file so runs can be
// compared across working-tree states.
type History struct {
	db *bbolt.DB
}

// OpenHistory opens or creates the history database.
func OpenHistory(path string) (*History, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening history %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRuns)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing history %s: %w", path, err)
	}

	return &History{db: db}, nil
}

// Save appends one result. Keys sort chronologically: timestamp first, run
// id as tiebreaker.
func (h *History) Save(res *Result) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encoding result %s: %w", res.ID, err)
	}

	key := res.Timestamp.UTC().Format(time.RFC3339Nano) + "/" + res.ID
	err = h.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRuns).Put([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("saving result %s: %w", res.ID, err)
	}
	return nil
}

// List returns every stored result in key order, oldest first.
func (h *History) List() ([]*Result, error) {
	var results []*Result
	err := h.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRuns).ForEach(func(k, v []byte) error {
			var r Result
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("decoding history entry %s: %w", k, err)
			}
			results = append(results, &r)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Close releases the underlying database file.
func (h *History) Close() error {
	if h.db == nil {
		return nil
	}
	return h.db.Close()
}
