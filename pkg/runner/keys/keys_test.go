package keys

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"tableflip.dev/bizdesk/pkg/app"
	"tableflip.dev/bizdesk/pkg/collection"
	"tableflip.dev/bizdesk/pkg/printers"
	"tableflip.dev/bizdesk/pkg/store"
)

func TestKeys(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	if err := kv.Set(ctx, collection.KeyDomains, "[]"); err != nil {
		t.Fatal(err)
	}
	// A stray key named like an alias is not the collection.
	if err := kv.Set(ctx, "domains", "[]"); err != nil {
		t.Fatal(err)
	}
	if err := kv.Set(ctx, "userRole", "Admin"); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	pp, _ := printers.New(&buf, "json")
	if err := (&Keys{App: &app.Service{KV: kv}, Printer: pp}).Do(ctx); err != nil {
		t.Fatal(err)
	}
	var got []Entry
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	want := map[string]string{collection.KeyDomains: "Domains", "domains": "", "userRole": ""}
	if len(got) != len(want) {
		t.Fatalf("expected %d keys, got %v", len(want), got)
	}
	for _, e := range got {
		if title, ok := want[e.Key]; !ok || title != e.Collection {
			t.Fatalf("unexpected entry %+v", e)
		}
	}
}
