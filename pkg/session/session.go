// Package session keeps the signed-in user in the device store.
package session

import (
	"context"

	"github.com/pkg/errors"

	"tableflip.dev/bizdesk/pkg/auth"
	"tableflip.dev/bizdesk/pkg/collection"
	"tableflip.dev/bizdesk/pkg/record"
	"tableflip.dev/bizdesk/pkg/store"
)

// Keys holding the session.
const (
	KeyRole    = "userRole"
	KeyEmail   = "userEmail"
	KeyName    = "userName"
	KeyRelogin = "RELOGIN"
)

// ErrNoSession is returned by Current when nobody is signed in.
var ErrNoSession = errors.New("not logged in")

// Manager signs users in and out.
type Manager struct {
	KV     store.KV
	Client auth.Client
}

// Login authenticates with the client and stores the session. Nothing is
// stored when the client fails. The role is cleared first and written last,
// so Current never reports a half-written session.
func (m *Manager) Login(ctx context.Context, creds auth.Credentials) (auth.Session, error) {
	s, err := m.Client.Login(ctx, creds)
	if err != nil {
		return auth.Session{}, err
	}
	for _, kv := range [][2]string{
		{KeyRole, ""},
		{KeyEmail, s.Email},
		{KeyName, s.FirstName},
		{KeyRelogin, "true"},
		{KeyRole, s.Role},
	} {
		if err := m.KV.Set(ctx, kv[0], kv[1]); err != nil {
			return auth.Session{}, errors.Wrapf(err, "session: storing %s", kv[0])
		}
	}
	return s, nil
}

// Current reads the stored session.
func (m *Manager) Current(ctx context.Context) (auth.Session, error) {
	role, ok, err := m.KV.Get(ctx, KeyRole)
	if err != nil {
		return auth.Session{}, errors.Wrap(err, "session: reading role")
	}
	if !ok || role == "" {
		return auth.Session{}, ErrNoSession
	}
	s := auth.Session{Role: role}
	if s.Email, _, err = m.KV.Get(ctx, KeyEmail); err != nil {
		return auth.Session{}, errors.Wrap(err, "session: reading email")
	}
	if s.FirstName, _, err = m.KV.Get(ctx, KeyName); err != nil {
		return auth.Session{}, errors.Wrap(err, "session: reading name")
	}
	return s, nil
}

// Logout wipes the whole store, collections included.
func (m *Manager) Logout(ctx context.Context) error {
	return errors.Wrap(m.KV.Clear(ctx), "session: clearing store")
}

// Visible narrows items to what s may see: admins see everything, everyone
// else only the records they created.
func Visible(s auth.Session, items []record.Record) []record.Record {
	if s.IsAdmin() {
		return items
	}
	return collection.Owned(items, s.FirstName)
}
