package auth

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	bizauth "tableflip.dev/bizdesk/pkg/auth"
	"tableflip.dev/bizdesk/pkg/printers"
	"tableflip.dev/bizdesk/pkg/session"
	"tableflip.dev/bizdesk/pkg/store"
)

type fakeClient struct {
	err error
}

func (f fakeClient) Login(_ context.Context, c bizauth.Credentials) (bizauth.Session, error) {
	if f.err != nil {
		return bizauth.Session{}, f.err
	}
	return bizauth.Session{Role: c.Role, Email: c.Email, FirstName: "Asha"}, nil
}

func (f fakeClient) Register(context.Context, bizauth.Registration) (bizauth.RegisterResult, error) {
	return bizauth.RegisterResult{Success: true}, f.err
}

func TestLoginWhoAmILogout(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	pp, _ := printers.New(&buf, "table")
	m := &session.Manager{KV: store.NewMemory(), Client: fakeClient{}}

	login := Login{Sessions: m, Printer: pp, Credentials: bizauth.Credentials{Email: "asha@example.com", Password: "secret1", Role: bizauth.RoleAdmin}}
	if err := login.Do(ctx); err != nil {
		t.Fatal(err)
	}
	who := WhoAmI{Sessions: m, Printer: pp}
	if err := who.Do(ctx); err != nil {
		t.Fatal(err)
	}
	if out := buf.String(); !strings.Contains(out, "Welcome Asha, signed in as Admin.") || !strings.Contains(out, "Asha <asha@example.com> as Admin") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	if err := (&Logout{Sessions: m, Printer: pp}).Do(ctx); err != nil {
		t.Fatal(err)
	}
	if err := who.Do(ctx); !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("expected no session, got %v", err)
	}
}

func TestLoginFailureStoresNothing(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	pp, _ := printers.New(&bytes.Buffer{}, "table")
	m := &session.Manager{KV: kv, Client: fakeClient{err: &bizauth.Error{Status: 401, Message: bizauth.MsgLoginFailed}}}
	err := (&Login{Sessions: m, Printer: pp}).Do(ctx)
	if err == nil || err.Error() != bizauth.MsgLoginFailed {
		t.Fatalf("expected login failure, got %v", err)
	}
	if keys, _ := kv.Keys(ctx); len(keys) != 0 {
		t.Fatalf("expected nothing stored, got %v", keys)
	}
}
