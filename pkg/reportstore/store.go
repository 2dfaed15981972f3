// Package reportstore persists certification reports in a bbolt database.
//
// Reports are stored as JSON passed through a transform pipeline (zstd by
// default) in the "reports" bucket, keyed by their UUIDv7 so that key order
// is creation order. The "fingerprints" bucket maps a configuration
// fingerprint to the ID of the latest report for that configuration.
package reportstore

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"randcert-go/pkg/congruential"
	"randcert-go/pkg/randtest"
	"randcert-go/pkg/transform"
)

var (
	reportsBucket      = []byte("reports")
	fingerprintsBucket = []byte("fingerprints")

	ErrNotFound = errors.New("reportstore: report not found")
)

// Report is the persisted result of certifying one configuration. Failure is
// set when no sample could be generated. Machine identifies the installation
// that produced it.
type Report struct {
	ID          uuid.UUID           `json:"id"`
	Fingerprint uint64              `json:"fingerprint,string"`
	CreatedAt   time.Time           `json:"createdAt"`
	Config      congruential.Config `json:"config"`
	Count       int                 `json:"count"`
	Width       int                 `json:"width,omitempty"`
	Verdicts    randtest.Verdicts   `json:"verdicts"`
	Outcomes    []randtest.Outcome  `json:"outcomes,omitempty"`
	Usable      bool                `json:"usable"`
	Failure     string              `json:"failure,omitempty"`
	Machine     string              `json:"machine,omitempty"`
}

type Store struct {
	db    *bolt.DB
	codec *transform.Pipeline
}

// Open opens or creates the store at path. A nil codec selects zstd.
func Open(path string, codec *transform.Pipeline) (*Store, error) {
	if codec == nil {
		var err error
		if codec, err = transform.ForStore(transform.StoreOptions{Compression: transform.CompressionZstd}); err != nil {
			return nil, err
		}
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bbolt database: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{reportsBucket, fingerprintsBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}
	return &Store{db: db, codec: codec}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func fingerprintKey(fp uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, fp)
}

// Put stores r, assigning its ID, fingerprint and creation time when unset.
func (s *Store) Put(r *Report) error {
	if r.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to allocate report id: %w", err)
		}
		r.ID = id
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	r.Fingerprint = Fingerprint(r.Config)

	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	value, err := s.codec.Encode(raw)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(reportsBucket).Put(r.ID[:], value); err != nil {
			return err
		}
		return tx.Bucket(fingerprintsBucket).Put(fingerprintKey(r.Fingerprint), r.ID[:])
	})
}

func (s *Store) decode(value []byte) (*Report, error) {
	raw, err := s.codec.Decode(value)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &r, nil
}

// get copies the stored value, which is only valid inside the transaction.
func get(tx *bolt.Tx, bucket, key []byte) []byte {
	v := tx.Bucket(bucket).Get(key)
	if v == nil {
		return nil
	}
	return append([]byte(nil), v...)
}

func (s *Store) Get(id uuid.UUID) (*Report, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		value = get(tx, reportsBucket, id[:])
		return nil
	})
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.decode(value)
}

// Lookup returns the latest report certified for exactly cfg.
func (s *Store) Lookup(cfg congruential.Config) (*Report, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if id := tx.Bucket(fingerprintsBucket).Get(fingerprintKey(Fingerprint(cfg))); id != nil {
			value = get(tx, reportsBucket, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, ErrNotFound
	}
	r, err := s.decode(value)
	if err != nil {
		return nil, err
	}
	if r.Config != cfg {
		return nil, ErrNotFound
	}
	return r, nil
}

// List returns up to limit reports, newest first. A limit <= 0 returns all.
func (s *Store) List(limit int) ([]*Report, error) {
	var values [][]byte
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(reportsBucket).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(values) == limit {
				break
			}
			values = append(values, append([]byte(nil), v...))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	reports := make([]*Report, 0, len(values))
	for _, v := range values {
		r, err := s.decode(v)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}
