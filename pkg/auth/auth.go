// Package auth talks to the remote login and registration API.
package auth

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Roles a user can sign in as.
const (
	RoleAdmin    = "Admin"
	RoleEmployee = "Employee"
	RoleReferral = "Referral"
)

// AllRoles lists the accepted roles.
var AllRoles = []string{RoleAdmin, RoleEmployee, RoleReferral}

// Messages shown when the server does not supply one.
const (
	MsgLoginFailed    = "Invalid credentials or role mismatch."
	MsgRegisterFailed = "Something went wrong."
)

// ErrUnavailable is returned when the server could not be reached or sent
// something unreadable.
var ErrUnavailable = errors.New("Something went wrong. Please try again later.")

// Credentials identify a user for Login.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=Admin Employee Referral"`
}

// Registration is a new account request.
type Registration struct {
	FirstName       string `json:"firstName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Role            string `json:"role" validate:"required,oneof=Admin Employee Referral"`
	MobileNumber    string `json:"mobileNumber" validate:"required"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	// ProfilePicture is an optional path to an image uploaded with the form.
	ProfilePicture string `json:"-"`
}

// Session is what a successful login yields.
type Session struct {
	Role      string `json:"role"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
}

// IsAdmin reports whether the session role is admin, ignoring case.
func (s Session) IsAdmin() bool {
	return strings.EqualFold(s.Role, RoleAdmin)
}

// RegisterResult is the server's answer to a registration.
type RegisterResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Client is the remote auth collaborator.
type Client interface {
	Login(ctx context.Context, creds Credentials) (Session, error)
	Register(ctx context.Context, reg Registration) (RegisterResult, error)
}

// Error is a rejection by the server.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// ValidationError maps field names onto human readable problems.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, f := range names {
		parts = append(parts, e.Fields[f])
	}
	return fmt.Sprintf("invalid input: %s", strings.Join(parts, "; "))
}
