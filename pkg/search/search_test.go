package search

import (
	"testing"

	"tableflip.dev/bizdesk/pkg/record"
)

var clients = []record.Record{
	{"Client Id": "1", "Client Name": "Acme", "Contact No": "98450 11111"},
	{"Client Id": "2", "Client Name": "Globex", "Contact No": "98450 22222"},
	{"Client Id": "3", "Client Name": "Initech", "Contact No": 9845033333.0},
}

func TestFilterEmptyQuery(t *testing.T) {
	for _, q := range []string{"", "   "} {
		got := Filter(clients, q, "Client Name")
		if len(got) != len(clients) {
			t.Fatalf("expected %d items, got %d", len(clients), len(got))
		}
		for i := range got {
			if got[i].ID("Client Id") != clients[i].ID("Client Id") {
				t.Fatalf("order changed at %d", i)
			}
		}
	}
}

func TestFilterCaseInsensitive(t *testing.T) {
	got := Filter([]record.Record{{"Client Name": "Acme"}}, "acme", "Client Name")
	if len(got) != 1 {
		t.Fatalf("expected one match, got %d", len(got))
	}
	got = Filter(clients, "GLOB", "Client Name")
	if len(got) != 1 || got[0].ID("Client Id") != "2" {
		t.Fatalf("expected Globex, got %v", got)
	}
}

func TestFilterAnyField(t *testing.T) {
	got := Filter(clients, "33333", "Client Name", "Contact No")
	if len(got) != 1 || got[0].ID("Client Id") != "3" {
		t.Fatalf("expected numeric contact match, got %v", got)
	}
	got = Filter(clients, "98450", "Client Name", "Contact No")
	if len(got) != 3 {
		t.Fatalf("expected three matches, got %d", len(got))
	}
}

func TestFilterNoMatch(t *testing.T) {
	got := Filter(clients, "zzz-no-match", "Client Name", "Contact No")
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got %v", got)
	}
}

func TestFilterRecomputesFromFullList(t *testing.T) {
	narrowed := Filter(clients, "acme", "Client Name")
	if len(narrowed) != 1 {
		t.Fatalf("expected one, got %d", len(narrowed))
	}
	widened := Filter(clients, "e", "Client Name")
	if len(widened) != 3 {
		t.Fatalf("expected all three, got %d", len(widened))
	}
}
