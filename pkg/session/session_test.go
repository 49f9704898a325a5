package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/bizdesk/pkg/auth"
	"tableflip.dev/bizdesk/pkg/record"
	"tableflip.dev/bizdesk/pkg/store"
)

type fakeClient struct {
	session auth.Session
	err     error
}

func (f *fakeClient) Login(context.Context, auth.Credentials) (auth.Session, error) {
	return f.session, f.err
}

func (f *fakeClient) Register(context.Context, auth.Registration) (auth.RegisterResult, error) {
	return auth.RegisterResult{}, f.err
}

func TestLoginPersistsSession(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	m := &Manager{KV: kv, Client: &fakeClient{session: auth.Session{Role: "Admin", Email: "a@b.co", FirstName: "Asha"}}}

	_, err := m.Login(ctx, auth.Credentials{})
	require.NoError(t, err)

	relogin, ok, _ := kv.Get(ctx, KeyRelogin)
	assert.True(t, ok)
	assert.Equal(t, "true", relogin)

	s, err := m.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, auth.Session{Role: "Admin", Email: "a@b.co", FirstName: "Asha"}, s)
}

func TestLoginFailureStoresNothing(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	m := &Manager{KV: kv, Client: &fakeClient{err: auth.ErrUnavailable}}

	_, err := m.Login(ctx, auth.Credentials{})
	assert.True(t, errors.Is(err, auth.ErrUnavailable))
	assert.Equal(t, 0, kv.Writes())

	_, err = m.Current(ctx)
	assert.Equal(t, ErrNoSession, err)
}

type failingKV struct {
	store.KV
	key string
}

func (f failingKV) Set(ctx context.Context, key, value string) error {
	if key == f.key {
		return errors.New("disk full")
	}
	return f.KV.Set(ctx, key, value)
}

func TestLoginWriteFailureLeavesNoSession(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	require.NoError(t, mem.Set(ctx, KeyRole, "Admin"))
	require.NoError(t, mem.Set(ctx, KeyName, "Asha"))

	m := &Manager{
		KV:     failingKV{KV: mem, key: KeyName},
		Client: &fakeClient{session: auth.Session{Role: "Employee", Email: "r@b.co", FirstName: "Ravi"}},
	}
	s, err := m.Login(ctx, auth.Credentials{})
	require.Error(t, err)
	assert.Equal(t, auth.Session{}, s)

	_, err = m.Current(ctx)
	assert.Equal(t, ErrNoSession, err)
}

func TestLogoutClearsEverything(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Set(ctx, "Clients", `[]`))
	m := &Manager{KV: kv, Client: &fakeClient{session: auth.Session{Role: "Employee"}}}
	_, err := m.Login(ctx, auth.Credentials{})
	require.NoError(t, err)

	require.NoError(t, m.Logout(ctx))
	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestVisible(t *testing.T) {
	items := []record.Record{
		{"id": "1", "createdBy": "Asha"},
		{"id": "2", "createdBy": "Ravi"},
	}
	assert.Len(t, Visible(auth.Session{Role: "admin"}, items), 2)

	mine := Visible(auth.Session{Role: "Employee", FirstName: "Ravi"}, items)
	require.Len(t, mine, 1)
	assert.Equal(t, "2", mine[0].ID("id"))
}
