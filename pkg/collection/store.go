package collection

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"tableflip.dev/bizdesk/pkg/logging"
	"tableflip.dev/bizdesk/pkg/record"
	"tableflip.dev/bizdesk/pkg/store"
)

// Store is one named collection persisted as a JSON array under a single KV
// key. Every mutation rewrites the whole array; there are no partial writes.
//
// Writes are optimistic: when the KV write fails the returned collection
// still carries the attempted change and the error is returned alongside it.
// Call Load to reconcile with what is actually stored.
type Store struct {
	kv            store.KV
	key           string
	idField       string
	reseedOnEmpty bool
	log           logging.Logger
	now           func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithIDField names the field holding the record id (default "id").
func WithIDField(field string) Option {
	return func(s *Store) {
		if field != "" {
			s.idField = field
		}
	}
}

// WithReseedOnEmpty makes Load replace a stored empty array with the seed.
func WithReseedOnEmpty(reseed bool) Option {
	return func(s *Store) {
		s.reseedOnEmpty = reseed
	}
}

// WithLogger sets the logger used for storage fallbacks and write failures.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the clock used to mint record ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New binds a Store to key in kv.
func New(kv store.KV, key string, opts ...Option) *Store {
	s := &Store{
		kv:      kv,
		key:     key,
		idField: record.DefaultIDField,
		log:     logging.Nop(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Key is the KV key the collection lives under.
func (s *Store) Key() string { return s.key }

// IDField is the name of the id field.
func (s *Store) IDField() string { return s.idField }

// Load returns the stored collection. A missing key, a read failure or
// unparsable contents fall back to seed, which is then written to the store;
// with a nil seed the fallback is an empty collection and nothing is written.
// Load never fails.
func (s *Store) Load(ctx context.Context, seed []record.Record) []record.Record {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.log.Warn("collection read failed, using fallback", "key", s.key, "err", err)
		return s.fallback(ctx, seed)
	}
	if !ok {
		s.log.Debug("collection not initialized", "key", s.key, "seeded", seed != nil)
		return s.fallback(ctx, seed)
	}

	items, err := decode(raw)
	if err != nil {
		s.log.Warn("collection unreadable, using fallback", "key", s.key, "err", err)
		return s.fallback(ctx, seed)
	}
	if len(items) == 0 && seed != nil && s.reseedOnEmpty {
		s.log.Debug("collection empty, reseeding", "key", s.key)
		return s.fallback(ctx, seed)
	}
	return items
}

func (s *Store) fallback(ctx context.Context, seed []record.Record) []record.Record {
	if seed == nil {
		return []record.Record{}
	}
	items := record.CloneAll(seed)
	// persist logs its own failure; the seed is returned either way.
	_ = s.persist(ctx, items)
	return items
}

// Upsert replaces the record with r's id in place, or appends r when the id is
// new. A record without an id is given one from the clock. items is not
// modified.
func (s *Store) Upsert(ctx context.Context, items []record.Record, r record.Record) ([]record.Record, error) {
	next := r.Clone()
	if next == nil {
		next = record.Record{}
	}
	id := next.ID(s.idField)
	if id == "" {
		id = record.NewID(s.now())
		next[s.idField] = id
	}

	out := make([]record.Record, 0, len(items)+1)
	replaced := false
	for _, it := range items {
		if !replaced && it.ID(s.idField) == id {
			out = append(out, next)
			replaced = true
			continue
		}
		out = append(out, it)
	}
	if !replaced {
		out = append(out, next)
	}

	return out, s.persist(ctx, out)
}

// Remove drops the record with id. An unknown id leaves the collection as is.
func (s *Store) Remove(ctx context.Context, items []record.Record, id string) ([]record.Record, error) {
	out := make([]record.Record, 0, len(items))
	for _, it := range items {
		if it.ID(s.idField) == id {
			continue
		}
		out = append(out, it)
	}
	return out, s.persist(ctx, out)
}

// ReplaceAll writes items as the whole collection.
func (s *Store) ReplaceAll(ctx context.Context, items []record.Record) error {
	if items == nil {
		items = []record.Record{}
	}
	return s.persist(ctx, items)
}

// Find returns the record with id.
func (s *Store) Find(items []record.Record, id string) (record.Record, bool) {
	for _, it := range items {
		if it.ID(s.idField) == id {
			return it, true
		}
	}
	return nil, false
}

func (s *Store) persist(ctx context.Context, items []record.Record) error {
	b, err := json.Marshal(items)
	if err != nil {
		s.log.Error("collection encode failed", "key", s.key, "err", err)
		return &WriteError{Key: s.key, Err: err}
	}
	if err := s.kv.Set(ctx, s.key, string(b)); err != nil {
		s.log.Error("collection write failed", "key", s.key, "err", err)
		return &WriteError{Key: s.key, Err: err}
	}
	return nil
}

// Valid reports whether raw is a stored collection: a JSON array of objects.
func Valid(raw string) bool {
	_, err := decode(raw)
	return err == nil
}

// decode accepts only a JSON array of objects.
func decode(raw string) ([]record.Record, error) {
	if !gjson.Valid(raw) {
		return nil, errors.Wrap(ErrCorrupt, "invalid json")
	}
	parsed := gjson.Parse(raw)
	if !parsed.IsArray() {
		return nil, errors.Wrapf(ErrCorrupt, "expected array, got %s", parsed.Type)
	}
	var bad error
	parsed.ForEach(func(_, value gjson.Result) bool {
		if !value.IsObject() {
			bad = errors.Wrapf(ErrCorrupt, "expected object element, got %s", value.Type)
			return false
		}
		return true
	})
	if bad != nil {
		return nil, bad
	}

	items := make([]record.Record, 0)
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, errors.Wrap(ErrCorrupt, err.Error())
	}
	return items, nil
}

// Owned returns the records tagged as created by owner.
func Owned(items []record.Record, owner string) []record.Record {
	out := make([]record.Record, 0, len(items))
	for _, it := range items {
		if it.CreatedBy() == owner {
			out = append(out, it)
		}
	}
	return out
}
