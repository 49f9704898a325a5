package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tableflip.dev/bizdesk/pkg/auth"
	"tableflip.dev/bizdesk/pkg/authserver"
	"tableflip.dev/bizdesk/pkg/store"
)

func newServer(t *testing.T) (*auth.HTTPClient, *httptest.Server) {
	t.Helper()
	srv := authserver.New(authserver.Options{
		KV:             store.NewMemory(),
		DisableReqLogs: true,
		Cost:           bcrypt.MinCost,
	})
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return auth.NewHTTPClient(ts.URL), ts
}

func registration() auth.Registration {
	return auth.Registration{
		FirstName:       "Asha",
		Email:           "asha@example.com",
		Role:            auth.RoleEmployee,
		MobileNumber:    "9876543210",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	c, _ := newServer(t)

	res, err := c.Register(ctx, registration())
	require.NoError(t, err)
	assert.True(t, res.Success)

	s, err := c.Login(ctx, auth.Credentials{Email: "asha@example.com", Password: "secret1", Role: auth.RoleEmployee})
	require.NoError(t, err)
	assert.Equal(t, auth.Session{Role: auth.RoleEmployee, Email: "asha@example.com", FirstName: "Asha"}, s)
	assert.False(t, s.IsAdmin())
}

func TestRegisterWithPicture(t *testing.T) {
	pic := filepath.Join(t.TempDir(), "me.png")
	require.NoError(t, os.WriteFile(pic, []byte("png"), 0o644))

	c, _ := newServer(t)
	reg := registration()
	reg.ProfilePicture = pic
	res, err := c.Register(context.Background(), reg)
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestRegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	c, _ := newServer(t)
	_, err := c.Register(ctx, registration())
	require.NoError(t, err)

	_, err = c.Register(ctx, registration())
	var aerr *auth.Error
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, http.StatusConflict, aerr.Status)
	assert.Equal(t, "User already exists with this email.", aerr.Message)
}

func TestLoginRejected(t *testing.T) {
	ctx := context.Background()
	c, _ := newServer(t)
	_, err := c.Register(ctx, registration())
	require.NoError(t, err)

	for name, creds := range map[string]auth.Credentials{
		"wrong password": {Email: "asha@example.com", Password: "nope", Role: auth.RoleEmployee},
		"wrong role":     {Email: "asha@example.com", Password: "secret1", Role: auth.RoleAdmin},
		"unknown user":   {Email: "ravi@example.com", Password: "secret1", Role: auth.RoleEmployee},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := c.Login(ctx, creds)
			var aerr *auth.Error
			require.True(t, errors.As(err, &aerr))
			assert.Equal(t, http.StatusUnauthorized, aerr.Status)
			assert.Equal(t, auth.MsgLoginFailed, aerr.Message)
		})
	}
}

func TestLoginGenericMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("nope"))
	}))
	defer ts.Close()

	_, err := auth.NewHTTPClient(ts.URL).Login(context.Background(),
		auth.Credentials{Email: "a@b.co", Password: "x", Role: auth.RoleAdmin})
	var aerr *auth.Error
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, auth.MsgLoginFailed, aerr.Message)
}

func TestUnavailable(t *testing.T) {
	_, ts := newServer(t)
	c := auth.NewHTTPClient(ts.URL)
	ts.Close()

	_, err := c.Login(context.Background(), auth.Credentials{Email: "a@b.co", Password: "x", Role: auth.RoleAdmin})
	assert.True(t, errors.Is(err, auth.ErrUnavailable))
}

func TestValidationBeforeCall(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer ts.Close()
	c := auth.NewHTTPClient(ts.URL)

	_, err := c.Login(context.Background(), auth.Credentials{Email: "not-an-email", Role: "Boss"})
	var verr *auth.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "password")
	assert.Contains(t, verr.Fields, "role")

	reg := registration()
	reg.Password = "abc"
	reg.ConfirmPassword = "abd"
	_, err = c.Register(context.Background(), reg)
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "password")
	assert.Contains(t, verr.Fields, "confirmPassword")

	assert.Equal(t, 0, calls)
}

func TestLoginHonoursContext(t *testing.T) {
	c, _ := newServer(t)
	_, err := c.Register(context.Background(), registration())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Login(ctx, auth.Credentials{Email: "asha@example.com", Password: "secret1", Role: auth.RoleEmployee})
	assert.True(t, errors.Is(err, auth.ErrUnavailable), "got %v", err)
}
