package collection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/bizdesk/pkg/record"
	"tableflip.dev/bizdesk/pkg/store"
)

// failingKV accepts reads from the wrapped store but rejects every write.
type failingKV struct {
	store.KV
}

func (failingKV) Set(context.Context, string, string) error {
	return errors.New("disk full")
}

func clientSeed() []record.Record {
	return []record.Record{
		{FieldClientID: "c1", FieldClientName: "Acme", FieldContactNo: "111"},
		{FieldClientID: "c2", FieldClientName: "Globex", FieldContactNo: "222"},
		{FieldClientID: "c3", FieldClientName: "Initech", FieldContactNo: "333"},
	}
}

func TestLoadSeedsOnce(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	s := New(kv, KeyClients, WithIDField(FieldClientID))

	first := s.Load(ctx, clientSeed())
	second := s.Load(ctx, clientSeed())

	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
	assert.Equal(t, 1, kv.Writes())
}

func TestLoadWithoutSeed(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	s := New(kv, KeyMonthlyPayments)

	items := s.Load(ctx, nil)
	assert.Empty(t, items)
	assert.NotNil(t, items)
	assert.Equal(t, 0, kv.Writes())
}

func TestLoadFallsBackOnCorruptData(t *testing.T) {
	ctx := context.Background()
	for name, raw := range map[string]string{
		"invalid json":   `[{"id":`,
		"object":         `{"id":"1"}`,
		"scalar items":   `["a","b"]`,
		"mixed elements": `[{"id":"1"},3]`,
	} {
		t.Run(name, func(t *testing.T) {
			kv := store.NewMemory()
			require.NoError(t, kv.Set(ctx, KeySSL, raw))

			s := New(kv, KeySSL)
			assert.Empty(t, s.Load(ctx, nil))
			v, _, _ := kv.Get(ctx, KeySSL)
			assert.Equal(t, raw, v, "unseeded fallback must not overwrite")

			items := s.Load(ctx, Seed(KeySSL))
			assert.Len(t, items, 2)
			v, _, _ = kv.Get(ctx, KeySSL)
			assert.JSONEq(t, `[
				{"id":"1","sslName":"example.com SSL","provider":"GoDaddy","status":"Active","expiration":"2025-12-20"},
				{"id":"2","sslName":"mybusiness.in SSL","provider":"Namecheap","status":"Expired","expiration":"2024-09-14"}
			]`, v)
		})
	}
}

func TestLoadEmptyArray(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Set(ctx, KeyEmployees, `[]`))

	kept := New(kv, KeyEmployees, WithIDField(FieldEmpID)).Load(ctx, Seed(KeyEmployees))
	assert.Empty(t, kept)

	reseeded := New(kv, KeyEmployees, WithIDField(FieldEmpID), WithReseedOnEmpty(true)).Load(ctx, Seed(KeyEmployees))
	require.Len(t, reseeded, 4)
	assert.Equal(t, "EMP1001", reseeded[0].ID(FieldEmpID))
}

func TestLoadSeedWriteFailureStillReturnsSeed(t *testing.T) {
	s := New(failingKV{store.NewMemory()}, KeyDomains)
	items := s.Load(context.Background(), Seed(KeyDomains))
	assert.Len(t, items, 2)
}

func TestUpsert(t *testing.T) {
	ctx := context.Background()
	s := New(store.NewMemory(), KeyClients, WithIDField(FieldClientID))
	items := s.Load(ctx, clientSeed())

	added := record.Record{FieldClientID: "c4", FieldClientName: "Umbrella"}
	grown, err := s.Upsert(ctx, items, added)
	require.NoError(t, err)
	assert.Len(t, grown, 4)
	assert.Contains(t, grown, added)
	assert.Len(t, items, 3, "caller's slice must be untouched")

	changed := record.Record{FieldClientID: "c2", FieldClientName: "Globex Corp"}
	same, err := s.Upsert(ctx, grown, changed)
	require.NoError(t, err)
	assert.Len(t, same, 4)
	assert.Equal(t, changed, same[1], "replaced in place")
	assert.Equal(t, "Globex", grown[1].String(FieldClientName))
}

func TestUpsertAssignsID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	s := New(store.NewMemory(), KeyProjects, WithClock(func() time.Time { return now }))

	items, err := s.Upsert(ctx, nil, record.Record{"name": "App", "status": "Active"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "1740823200000", items[0].ID("id"))
}

func TestRemoveAbsentID(t *testing.T) {
	ctx := context.Background()
	s := New(store.NewMemory(), KeyClients, WithIDField(FieldClientID))
	items := s.Load(ctx, clientSeed())

	out, err := s.Remove(ctx, items, "nope")
	require.NoError(t, err)
	assert.Equal(t, items, out)
}

func TestOptimisticWriteFailure(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	require.NoError(t, New(mem, KeyClients, WithIDField(FieldClientID)).ReplaceAll(ctx, clientSeed()))

	s := New(failingKV{mem}, KeyClients, WithIDField(FieldClientID))
	items := s.Load(ctx, nil)

	out, err := s.Upsert(ctx, items, record.Record{FieldClientID: "c9"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWriteFailed))
	var we *WriteError
	require.True(t, errors.As(err, &we))
	assert.Equal(t, KeyClients, we.Key)
	assert.Len(t, out, 4, "in-memory result keeps the attempted change")

	assert.Len(t, s.Load(ctx, nil), 3, "reload reconciles with storage")
}

func TestCollectionRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	s := New(kv, KeyClients, WithIDField(FieldClientID))

	items := s.Load(ctx, clientSeed())
	require.Len(t, items, 3)

	items, err := s.Upsert(ctx, items, record.Record{FieldClientID: "c4", FieldClientName: "Umbrella"})
	require.NoError(t, err)
	require.Len(t, items, 4)

	items, err = s.Remove(ctx, items, "c2")
	require.NoError(t, err)
	require.Len(t, items, 3)
	_, found := s.Find(items, "c2")
	assert.False(t, found)

	reloaded := New(kv, KeyClients, WithIDField(FieldClientID)).Load(ctx, nil)
	assert.Equal(t, items, reloaded)
}

func TestOwned(t *testing.T) {
	items := []record.Record{
		{"id": "1", record.CreatedByField: "asha"},
		{"id": "2", record.CreatedByField: "ravi"},
		{"id": "3"},
	}
	out := Owned(items, "asha")
	require.Len(t, out, 1)
	assert.Equal(t, "1", out[0].ID("id"))
}

func TestRequire(t *testing.T) {
	err := Require(record.Record{FieldClientName: "Acme", FieldContactNo: " "}, FieldClientName, FieldContactNo, "Purpose")
	var mf *MissingFieldsError
	require.True(t, errors.As(err, &mf))
	assert.Equal(t, []string{FieldContactNo, "Purpose"}, mf.Fields)
	assert.Equal(t, "Please fill in: Contact No, Purpose", err.Error())

	assert.NoError(t, Require(record.Record{"a": "x"}, "a"))
}

func TestLookupMeta(t *testing.T) {
	m, ok := Lookup(KeyEmployees)
	assert.True(t, ok)
	assert.Equal(t, FieldEmpID, m.IDField)

	m, ok = Lookup("Notices")
	assert.False(t, ok)
	assert.Equal(t, record.DefaultIDField, m.IDField)

	assert.Equal(t, []string{"a", "b"}, ParseFields(" a, ,b "))
	assert.True(t, ReseedsOnEmpty(KeyEmployees))
	assert.False(t, ReseedsOnEmpty(KeyHosting))
}

func TestResolveAliases(t *testing.T) {
	for in, want := range map[string]string{
		"hosting":          KeyHosting,
		"Hosting":          KeyHosting,
		"@hosting_list":    KeyHosting,
		"hosting_list":     KeyHosting,
		"domains":          KeyDomains,
		"ssl":              KeySSL,
		"clients":          KeyClients,
		"projects":         KeyProjects,
		"monthly_payments": KeyMonthlyPayments,
		"Notices":          "Notices",
	} {
		assert.Equal(t, want, Resolve(in), in)
	}

	m, ok := Lookup("hosting")
	assert.True(t, ok)
	assert.Equal(t, KeyHosting, m.Key)
	assert.Len(t, Seed("hosting"), 2)
	assert.False(t, IsCollectionKey("hosting"))
	assert.True(t, IsCollectionKey(KeyHosting))
}

func TestSeedIsACopy(t *testing.T) {
	a := Seed(KeyHosting)
	a[0]["plan"] = "changed"
	assert.Equal(t, "Basic Plan", Seed(KeyHosting)[0].String("plan"))
	assert.Nil(t, Seed(KeyClients))
}
