// Package auth provides the runners that sign users in and out.
package auth

import (
	"context"
	"errors"

	bizauth "tableflip.dev/bizdesk/pkg/auth"
	"tableflip.dev/bizdesk/pkg/printers"
	"tableflip.dev/bizdesk/pkg/session"
)

// Login authenticates and stores the session.
type Login struct {
	Sessions    *session.Manager
	Printer     *printers.PrettyPrint
	Credentials bizauth.Credentials
}

// Do signs in.
func (l *Login) Do(ctx context.Context) error {
	if l.Sessions == nil {
		return errors.New("can not login, no session store")
	}
	s, err := l.Sessions.Login(ctx, l.Credentials)
	if err != nil {
		return err
	}
	if l.Printer.Structured() {
		return l.Printer.Value(s)
	}
	name := s.FirstName
	if name == "" {
		name = s.Email
	}
	l.Printer.Success("Welcome %s, signed in as %s.", name, s.Role)
	return nil
}

// Register creates an account. The user signs in separately afterwards.
type Register struct {
	Client       bizauth.Client
	Printer      *printers.PrettyPrint
	Registration bizauth.Registration
}

// Do registers the account.
func (r *Register) Do(ctx context.Context) error {
	if r.Client == nil {
		return errors.New("can not register, no auth client")
	}
	res, err := r.Client.Register(ctx, r.Registration)
	if err != nil {
		return err
	}
	if r.Printer.Structured() {
		return r.Printer.Value(res)
	}
	r.Printer.Success("Registered %s. You can now log in.", r.Registration.Email)
	return nil
}

// Logout wipes the device store.
type Logout struct {
	Sessions *session.Manager
	Printer  *printers.PrettyPrint
}

// Do signs out.
func (l *Logout) Do(ctx context.Context) error {
	if l.Sessions == nil {
		return errors.New("can not logout, no session store")
	}
	if err := l.Sessions.Logout(ctx); err != nil {
		return err
	}
	l.Printer.Success("Signed out, local data cleared.")
	return nil
}

// WhoAmI prints the current session.
type WhoAmI struct {
	Sessions *session.Manager
	Printer  *printers.PrettyPrint
}

// Do prints the session or ErrNoSession.
func (w *WhoAmI) Do(ctx context.Context) error {
	if w.Sessions == nil {
		return errors.New("can not read session, no session store")
	}
	s, err := w.Sessions.Current(ctx)
	if err != nil {
		return err
	}
	if w.Printer.Structured() {
		return w.Printer.Value(s)
	}
	w.Printer.Line("%s <%s> as %s", s.FirstName, s.Email, s.Role)
	return nil
}
