package app

import (
	"context"

	"tableflip.dev/bizdesk/pkg/collection"
)

// CollectionInfo describes one registered collection in the store.
type CollectionInfo struct {
	Meta    collection.Meta
	Stored  bool
	Records int
	// Corrupt is set when the stored value is not a list of records.
	Corrupt bool
}

// Report inspects every registered collection without seeding anything.
func (s *Service) Report(ctx context.Context) ([]CollectionInfo, error) {
	if s.KV == nil {
		return nil, ErrNoStore
	}
	metas := collection.Known()
	out := make([]CollectionInfo, 0, len(metas))
	for _, m := range metas {
		info := CollectionInfo{Meta: m}
		raw, ok, err := s.KV.Get(ctx, m.Key)
		if err != nil {
			return nil, err
		}
		if ok {
			info.Stored = true
			if !collection.Valid(raw) {
				info.Corrupt = true
			} else {
				info.Records = len(s.Collection(m.Key).Load(ctx, nil))
			}
		}
		out = append(out, info)
	}
	return out, nil
}
