// Package mcp serves bizdesk collections over the Model Context Protocol.
package mcp

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"tableflip.dev/bizdesk/pkg/app"
	"tableflip.dev/bizdesk/pkg/collection"
	"tableflip.dev/bizdesk/pkg/deadline"
	"tableflip.dev/bizdesk/pkg/record"
	"tableflip.dev/bizdesk/pkg/timeutil"
)

// Service adapts app.Service to transport-friendly values.
type Service struct {
	App *app.Service
}

// CollectionSummary describes a registered collection.
type CollectionSummary struct {
	Key          string   `json:"key"`
	Title        string   `json:"title,omitempty"`
	IDField      string   `json:"idField"`
	Stored       bool     `json:"stored"`
	Records      int      `json:"records"`
	Corrupt      bool     `json:"corrupt,omitempty"`
	SearchFields []string `json:"searchFields,omitempty"`
	Required     []string `json:"required,omitempty"`
}

// RecordList is a collection snapshot.
type RecordList struct {
	Key     string          `json:"key"`
	IDField string          `json:"idField"`
	Count   int             `json:"count"`
	Records []record.Record `json:"records"`
}

// UpsertResult reports a saved record.
type UpsertResult struct {
	Record        record.Record           `json:"record"`
	Created       bool                    `json:"created"`
	Count         int                     `json:"count"`
	Notifications []deadline.Notification `json:"notifications,omitempty"`
}

// RemainingDays is the answer of the remaining_days tool.
type RemainingDays struct {
	Start        string                  `json:"start"`
	End          string                  `json:"end"`
	Days         int                     `json:"days"`
	Notification *deadline.Notification `json:"notification,omitempty"`
}

// NewService wraps a.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

// ListCollections summarises every registered collection.
func (s *Service) ListCollections(ctx context.Context) ([]CollectionSummary, error) {
	infos, err := s.App.Report(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CollectionSummary, 0, len(infos))
	for _, info := range infos {
		out = append(out, CollectionSummary{
			Key:          info.Meta.Key,
			Title:        info.Meta.Title,
			IDField:      info.Meta.IDField,
			Stored:       info.Stored,
			Records:      info.Records,
			Corrupt:      info.Corrupt,
			SearchFields: info.Meta.SearchFields,
			Required:     info.Meta.Required,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// ListRecords loads key, seeding it on first use.
func (s *Service) ListRecords(ctx context.Context, key string) (RecordList, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return RecordList{}, errors.New("collection key is required")
	}
	items, err := s.App.List(ctx, key, app.ListOptions{Seed: true})
	if err != nil {
		return RecordList{}, err
	}
	return s.list(key, items), nil
}

// UpsertRecord merges fields into the record with the same id, or adds a new
// record. The collection's required fields are enforced.
func (s *Service) UpsertRecord(ctx context.Context, key string, fields map[string]interface{}) (UpsertResult, error) {
	if len(fields) == 0 {
		return UpsertResult{}, errors.New("fields are required")
	}
	meta, _ := collection.Lookup(key)
	res, err := s.App.Set(ctx, key, record.Record(fields), app.SetOptions{Merge: true, Required: meta.Required})
	if err != nil {
		return UpsertResult{}, err
	}
	return UpsertResult{
		Record:        res.Record,
		Created:       res.Created,
		Count:         len(res.Items),
		Notifications: res.Notifications,
	}, nil
}

// RemoveRecord drops id from key.
func (s *Service) RemoveRecord(ctx context.Context, key, id string) (map[string]interface{}, error) {
	items, removed, err := s.App.Remove(ctx, key, id)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"removed": removed, "count": len(items)}, nil
}

// SearchRecords filters key by query.
func (s *Service) SearchRecords(ctx context.Context, key, query string, fields []string, limit int) (RecordList, error) {
	items, err := s.App.Search(ctx, key, query, fields...)
	if err != nil {
		return RecordList{}, err
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return s.list(key, items), nil
}

// RemainingDays counts business days between two YYYY-MM-DD dates, or from
// start through a span such as "3w".
func (s *Service) RemainingDays(start, end string, now time.Time, threshold int) (RemainingDays, error) {
	from, err := timeutil.ParseDate(start)
	if err != nil {
		return RemainingDays{}, err
	}
	to, err := timeutil.ResolveEnd(from, end)
	if err != nil {
		return RemainingDays{}, err
	}
	w := deadline.NewWatcher()
	w.Now = func() time.Time { return now }
	if threshold > 0 {
		w.Threshold = threshold
	}
	_, days, _ := w.Apply(record.Record{}, &from, &to)
	out := RemainingDays{Start: timeutil.FormatDate(from), End: timeutil.FormatDate(to), Days: days}
	if notes := w.Notifications(); len(notes) > 0 {
		out.Notification = &notes[0]
	}
	return out, nil
}

func (s *Service) list(key string, items []record.Record) RecordList {
	meta, _ := collection.Lookup(key)
	if items == nil {
		items = []record.Record{}
	}
	return RecordList{Key: meta.Key, IDField: meta.IDField, Count: len(items), Records: items}
}
