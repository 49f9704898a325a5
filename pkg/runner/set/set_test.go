package set

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tableflip.dev/bizdesk/pkg/app"
	"tableflip.dev/bizdesk/pkg/collection"
	"tableflip.dev/bizdesk/pkg/printers"
	"tableflip.dev/bizdesk/pkg/record"
	"tableflip.dev/bizdesk/pkg/store"
)

func clock() time.Time {
	return time.Date(2025, time.March, 3, 9, 0, 0, 0, time.Local)
}

func TestSetClientWithDeadline(t *testing.T) {
	var buf bytes.Buffer
	pp, _ := printers.New(&buf, "table")
	s := Set{
		App:     &app.Service{KV: store.NewMemory(), Now: clock},
		Printer: pp,
		Key:     collection.KeyClients,
		Strict:  true,
		Record: record.Record{
			"Client Id":      "C1",
			"Client Name":    "Acme",
			"Purpose":        "Website",
			"Contact No":     "9876543210",
			"Start Date":     "2025-03-03",
			"End Date":       "2025-03-06",
			"Remaining Days": "0",
		},
	}
	if err := s.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"added C1 in Clients", "Only 3 day(s) left until project deadline!"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestSetStrictMissingFields(t *testing.T) {
	pp, _ := printers.New(&bytes.Buffer{}, "table")
	s := Set{
		App:     &app.Service{KV: store.NewMemory(), Now: clock},
		Printer: pp,
		Key:     collection.KeyMonthlyPayments,
		Strict:  true,
		Record:  record.Record{"clientName": "Acme"},
	}
	err := s.Do(context.Background())
	var missing *collection.MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected missing fields, got %v", err)
	}
}
