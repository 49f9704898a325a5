package app

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"tableflip.dev/bizdesk/pkg/auth"
	"tableflip.dev/bizdesk/pkg/collection"
	"tableflip.dev/bizdesk/pkg/deadline"
	"tableflip.dev/bizdesk/pkg/logging"
	"tableflip.dev/bizdesk/pkg/record"
	"tableflip.dev/bizdesk/pkg/search"
	"tableflip.dev/bizdesk/pkg/session"
	"tableflip.dev/bizdesk/pkg/store"
)

// Service provides the record operations shared by the CLI, the MCP server
// and the interactive search. It wraps the store so every surface loads,
// seeds and saves collections the same way.
type Service struct {
	KV            store.KV
	Logger        logging.Logger
	ReseedOnEmpty bool
	Threshold     int
	Now           func() time.Time
}

var ErrNoStore = errors.New("app: no store configured")

// ErrReservedKey is returned for keys that are not record collections, such
// as the auth server's accounts.
var ErrReservedKey = errors.New("app: reserved key")

// ListOptions narrow List.
type ListOptions struct {
	// Seed writes the collection's default records when it was never stored.
	Seed bool
	// Session, when set, hides records the user did not create unless they
	// are an admin.
	Session *auth.Session
}

// SetOptions control how Set saves a record.
type SetOptions struct {
	// Required fields must be non-blank after merging.
	Required []string
	// Merge applies the given fields on top of the stored record with the
	// same id instead of replacing it.
	Merge bool
	// CreatedBy tags new records with their owner.
	CreatedBy string
}

// SetResult is the outcome of Set.
type SetResult struct {
	Record        record.Record
	Items         []record.Record
	Created       bool
	Notifications []deadline.Notification
}

// Collection binds the store for key with its registered id field.
func (s *Service) Collection(key string) *collection.Store {
	meta, _ := collection.Lookup(key)
	return meta.Open(s.KV,
		collection.WithLogger(s.logger()),
		collection.WithReseedOnEmpty(s.ReseedOnEmpty || collection.ReseedsOnEmpty(key)),
		collection.WithClock(s.now),
	)
}

// List loads the collection stored under key.
func (s *Service) List(ctx context.Context, key string, opts ListOptions) ([]record.Record, error) {
	if err := s.check(key); err != nil {
		return nil, err
	}
	var seed []record.Record
	if opts.Seed {
		seed = collection.Seed(key)
	}
	items := s.Collection(key).Load(ctx, seed)
	if opts.Session != nil {
		items = session.Visible(*opts.Session, items)
	}
	return items, nil
}

// Get returns the record with id.
func (s *Service) Get(ctx context.Context, key, id string) (record.Record, error) {
	if err := s.check(key); err != nil {
		return nil, err
	}
	c := s.Collection(key)
	r, ok := c.Find(c.Load(ctx, nil), id)
	if !ok {
		return nil, errors.Wrapf(collection.ErrNotFound, "%s %q", key, id)
	}
	return r, nil
}

// Set upserts r into the collection under key. Dated collections get their
// countdown recomputed when both dates are present. On a write failure the
// result still carries the attempted change alongside the error.
func (s *Service) Set(ctx context.Context, key string, r record.Record, opts SetOptions) (SetResult, error) {
	if err := s.check(key); err != nil {
		return SetResult{}, err
	}
	c := s.Collection(key)
	items := c.Load(ctx, collection.Seed(key))

	next := r.Clone()
	existing, found := c.Find(items, next.ID(c.IDField()))
	if found && opts.Merge {
		merged := existing.Clone()
		for k, v := range next {
			merged[k] = v
		}
		next = merged
	}
	if !found && opts.CreatedBy != "" && next.CreatedBy() == "" {
		next[record.CreatedByField] = opts.CreatedBy
	}

	var notes []deadline.Notification
	if meta, _ := collection.Lookup(key); meta.Dated {
		w := s.Watcher()
		next, _, _ = w.ApplyFields(next, collection.FieldStartDate, collection.FieldEndDate)
		notes = w.Notifications()
	}

	if err := collection.Require(next, opts.Required...); err != nil {
		return SetResult{}, err
	}

	out, err := c.Upsert(ctx, items, next)
	res := SetResult{Items: out, Created: !found, Notifications: notes}
	res.Record = out[len(out)-1]
	if found {
		res.Record, _ = c.Find(out, existing.ID(c.IDField()))
	}
	return res, err
}

// Remove deletes the record with id. Removing an unknown id is not an error;
// removed reports whether anything was dropped.
func (s *Service) Remove(ctx context.Context, key, id string) (items []record.Record, removed bool, err error) {
	if err := s.check(key); err != nil {
		return nil, false, err
	}
	c := s.Collection(key)
	before := c.Load(ctx, collection.Seed(key))
	items, err = c.Remove(ctx, before, id)
	return items, len(items) != len(before), err
}

// Search filters the collection under key. With no fields the collection's
// registered search fields are used.
func (s *Service) Search(ctx context.Context, key, query string, fields ...string) ([]record.Record, error) {
	items, err := s.List(ctx, key, ListOptions{Seed: true})
	if err != nil {
		return nil, err
	}
	return search.Filter(items, query, s.SearchFields(key, fields...)...), nil
}

// SearchFields resolves the fields searched for key.
func (s *Service) SearchFields(key string, fields ...string) []string {
	if len(fields) > 0 {
		return fields
	}
	meta, _ := collection.Lookup(key)
	if len(meta.SearchFields) > 0 {
		return meta.SearchFields
	}
	return []string{meta.IDField}
}

// Keys lists every key in the store except reserved ones.
func (s *Service) Keys(ctx context.Context) ([]string, error) {
	if s.KV == nil {
		return nil, ErrNoStore
	}
	keys, err := s.KV.Keys(ctx)
	if err != nil {
		return nil, err
	}
	out := keys[:0]
	for _, k := range keys {
		if !collection.Reserved(k) {
			out = append(out, k)
		}
	}
	return out, nil
}

// Watch streams key changes when the store supports it.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	w, ok := s.KV.(store.Watcher)
	if !ok {
		return nil, store.ErrWatchUnsupported
	}
	return w.Watch(ctx)
}

// Watcher returns a fresh deadline watcher using the Service's threshold and
// clock. Each record edit gets its own, so alerts never carry over between
// records.
func (s *Service) Watcher() *deadline.Watcher {
	w := deadline.NewWatcher()
	if s.Threshold > 0 {
		w.Threshold = s.Threshold
	}
	w.Now = s.now
	return w
}

func (s *Service) check(key string) error {
	if s.KV == nil {
		return ErrNoStore
	}
	if collection.Reserved(collection.Resolve(key)) {
		return errors.Wrapf(ErrReservedKey, "%q", key)
	}
	return nil
}

func (s *Service) logger() logging.Logger {
	if s.Logger == nil {
		return logging.Nop()
	}
	return s.Logger
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
