// Package journal persists observed startup-notification events.
//
// The monitor feeds every reassembled message into a Badger-backed
// journal keyed by ULID, so entries iterate in arrival order. The
// journal is append-only from the monitor's point of view; retention
// is handled by Prune.
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/oklog/ulid/v2"

	"github.com/yndnr/snotify-go/internal/core/domain"
	"github.com/yndnr/snotify-go/internal/telemetry/logger"
)

// recordPrefix namespaces event keys inside the database.
const recordPrefix = "ev/"

// Record is one journaled startup-notification message.
type Record struct {
	// ID is a ULID assigned on append. Lexicographic order on IDs
	// matches arrival order.
	ID string `json:"id"`

	ObservedAt time.Time         `json:"observed_at"`
	Origin     uint32            `json:"origin"`
	Verb       string            `json:"verb"`
	Token      string            `json:"token"`
	Params     map[string]string `json:"params,omitempty"`
}

// Journal is a Badger-backed event log.
type Journal struct {
	db  *badger.DB
	log logger.Logger
}

// Option configures a Journal.
type Option func(*Journal)

// WithLogger replaces the logger.
func WithLogger(l logger.Logger) Option {
	return func(j *Journal) { j.log = l }
}

// Open opens (or creates) a journal in dir.
func Open(dir string, opts ...Option) (*Journal, error) {
	if dir == "" {
		return nil, fmt.Errorf("journal: dir is required")
	}

	j := &Journal{log: logger.Default()}
	for _, opt := range opts {
		opt(j)
	}

	o := badger.DefaultOptions(dir)
	o.Logger = &badgerLogger{log: j.log}

	db, err := badger.Open(o)
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", dir, err)
	}
	j.db = db

	j.log.Debug("journal opened", "dir", dir)
	return j, nil
}

// Append stores a record. ID and ObservedAt are assigned here; values
// already present are overwritten.
func (j *Journal) Append(rec Record) error {
	now := time.Now().UTC()
	rec.ID = ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String()
	rec.ObservedAt = now

	value, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("journal: encode record: %w", err)
	}

	key := []byte(recordPrefix + rec.ID)
	err = j.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
	if err != nil {
		return fmt.Errorf("journal: append: %w", err)
	}
	return nil
}

// Recent returns up to n records, newest first.
func (j *Journal) Recent(ctx context.Context, n int) ([]Record, error) {
	if n <= 0 {
		return nil, nil
	}

	var out []Record
	err := j.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(recordPrefix)
		// Seek past the last possible record key, then walk backwards.
		seek := append(append([]byte{}, prefix...), 0xff)
		for it.Seek(seek); it.ValidForPrefix(prefix) && len(out) < n; it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			value, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			var rec Record
			if err := json.Unmarshal(value, &rec); err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("journal: recent: %w", err)
	}
	return out, nil
}

// Scan iterates all records oldest first. Returning false from fn
// stops the scan.
func (j *Journal) Scan(ctx context.Context, fn func(Record) bool) error {
	err := j.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(recordPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			value, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			var rec Record
			if err := json.Unmarshal(value, &rec); err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			if !fn(rec) {
				break
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("journal: scan: %w", err)
	}
	return nil
}

// Prune deletes records observed before cutoff and returns how many
// were removed.
func (j *Journal) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	// ULIDs embed their timestamp, so the cutoff maps to a key bound.
	bound := recordPrefix + ulid.MustNew(ulid.Timestamp(cutoff.UTC()), zeroEntropy{}).String()

	deleted := 0
	err := j.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(recordPrefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			key := it.Item().KeyCopy(nil)
			if string(key) >= bound {
				break
			}
			if err := txn.Delete(key); err != nil {
				return err
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return deleted, fmt.Errorf("journal: prune: %w", err)
	}

	if deleted > 0 {
		j.log.Info("journal pruned", "deleted", deleted, "cutoff", cutoff)
	}
	return deleted, nil
}

// Close shuts the journal down.
func (j *Journal) Close() error {
	if err := j.db.Close(); err != nil {
		return fmt.Errorf("journal: close: %w", err)
	}
	return nil
}

// zeroEntropy makes Prune's boundary ULID sort before any real ULID
// sharing its timestamp.
type zeroEntropy struct{}

func (zeroEntropy) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

// badgerLogger adapts our Logger to Badger's Logger interface.
type badgerLogger struct {
	log logger.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, args...))
}

// FromEvent builds a Record from monitor output without importing the
// monitor package here.
func FromEvent(origin domain.WindowID, verb, token string, params map[string]string) Record {
	return Record{
		Origin: uint32(origin),
		Verb:   verb,
		Token:  token,
		Params: params,
	}
}
