// Package motifdb is a library of named motifs stored in a bolt
// database.
package motifdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/op/go-logging"

	bolt "go.etcd.io/bbolt"

	"bitbucket.org/Davydov/seqlogo/alphabet"
	"bitbucket.org/Davydov/seqlogo/pm"
	"bitbucket.org/Davydov/seqlogo/pwm"
)

// log is the global logging variable.
var log = logging.MustGetLogger("motifdb")

// MOTIFS is the bucket name for all the motifs.
var MOTIFS = []byte("motifs")

// ErrNoMotif is returned when there is no motif with a given name.
var ErrNoMotif = errors.New("no such motif")

// openTimeout is how long Open waits for the database lock.
const openTimeout = 5 * time.Second

// Record is a stored motif.
type Record struct {
	// Alphabet is the alphabet name.
	Alphabet string `json:"alphabet"`
	// Consensus is the consensus sequence, it is not used on load.
	Consensus string `json:"consensus,omitempty"`
	// Weights are the weight matrix rows.
	Weights [][]float64 `json:"weights"`
	// Counts are the frequency matrix rows.
	Counts [][]float64 `json:"counts"`
	// Weight are the per-position multipliers.
	Weight []float64 `json:"weight"`
	// Saved is the time the motif was saved.
	Saved time.Time `json:"saved"`
}

// NewRecord creates a record for a motif.
func NewRecord(p *pwm.Pwm) *Record {
	return &Record{
		Alphabet:  p.Alphabet().String(),
		Consensus: p.Consensus(),
		Weights:   p.Matrix().Rows(),
		Counts:    p.Counts().Rows(),
		Weight:    p.Weight(),
		Saved:     time.Now().UTC(),
	}
}

// Motif recreates the motif model from a record.
func (r *Record) Motif() (*pwm.Pwm, error) {
	id, err := alphabet.Parse(r.Alphabet)
	if err != nil {
		return nil, err
	}
	w, err := pm.New(r.Weights, pm.Weight, id)
	if err != nil {
		return nil, fmt.Errorf("weights: %w", err)
	}
	counts, err := pm.New(r.Counts, pm.Frequency, id)
	if err != nil {
		return nil, fmt.Errorf("counts: %w", err)
	}
	p, err := pwm.NewWithCounts(w, counts)
	if err != nil {
		return nil, err
	}
	if r.Weight == nil {
		return p, nil
	}
	return p.WithWeight(r.Weight)
}

// DB is a motif library.
type DB struct {
	db *bolt.DB
}

// Open opens or creates a motif library file.
func Open(path string) (*DB, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, err
	}
	log.Debugf("opened motif library %s", path)
	return &DB{db: db}, nil
}

// Close closes the library.
func (d *DB) Close() error {
	return d.db.Close()
}

// Save stores a motif under a name, replacing the motif with the same
// name.
func (d *DB) Save(name string, p *pwm.Pwm) error {
	if name == "" {
		return errors.New("empty motif name")
	}
	data, err := json.Marshal(NewRecord(p))
	if err != nil {
		log.Error("Error serializing motif", err)
		return err
	}
	err = saveData(d.db, []byte(name), data)
	if err != nil {
		log.Error("Error saving motif", err)
		return err
	}
	log.Infof("saved motif %s (%s, %d positions)", name, p.Alphabet(), p.Width())
	return nil
}

// Record returns the stored record of a motif.
func (d *DB) Record(name string) (*Record, error) {
	data, err := loadData(d.db, []byte(name))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoMotif, name)
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("motif %s: %w", name, err)
	}
	return &r, nil
}

// Load returns a stored motif.
func (d *DB) Load(name string) (*pwm.Pwm, error) {
	r, err := d.Record(name)
	if err != nil {
		return nil, err
	}
	p, err := r.Motif()
	if err != nil {
		return nil, fmt.Errorf("motif %s: %w", name, err)
	}
	return p, nil
}

// List returns the names of all the motifs in lexicographic order.
func (d *DB) List() ([]string, error) {
	var names []string
	err := d.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(MOTIFS)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}

// Delete removes a motif.
func (d *DB) Delete(name string) error {
	return d.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(MOTIFS)
		if b == nil || b.Get([]byte(name)) == nil {
			return fmt.Errorf("%w: %s", ErrNoMotif, name)
		}
		return b.Delete([]byte(name))
	})
}

// saveData saves values in bolt database.
func saveData(db *bolt.DB, key []byte, data []byte) error {
	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(MOTIFS)
		if err != nil {
			return err
		}
		return b.Put(key, data)
	})
}

// loadData loads data from bolt database. It returns nil if there is
// no such key.
func loadData(db *bolt.DB, key []byte) ([]byte, error) {
	var data []byte
	err := db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(MOTIFS)
		if b == nil {
			return nil
		}
		// the value is only valid during the transaction
		if v := b.Get(key); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}
