// Package authserver is a local stand-in for the remote auth API, serving the
// login and register endpoints from an @users collection.
package authserver

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"

	"tableflip.dev/bizdesk/pkg/auth"
	"tableflip.dev/bizdesk/pkg/collection"
	"tableflip.dev/bizdesk/pkg/logging"
	"tableflip.dev/bizdesk/pkg/record"
	"tableflip.dev/bizdesk/pkg/store"
)

// UsersKey is where accounts are kept.
const UsersKey = collection.KeyUsers

type (
	Options struct {
		Address        string
		DisableReqLogs bool
		KV             store.KV
		Logger         logging.Logger
		// Cost is the bcrypt cost, bcrypt.DefaultCost when zero.
		Cost int
	}

	Server struct {
		opts  Options
		app   *echo.Echo
		users *collection.Store

		mu sync.Mutex
	}
)

var _ http.Handler = (*Server)(nil)

// New builds the server; call Start to listen or use it as an http.Handler.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Cost == 0 {
		opts.Cost = bcrypt.DefaultCost
	}
	s := &Server{
		opts:  opts,
		app:   echo.New(),
		users: collection.New(opts.KV, UsersKey, collection.WithLogger(opts.Logger)),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.HideBanner = true
	s.app.HidePort = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	s.app.Use(middleware.Recover())

	g := s.app.Group("/App/user")
	g.POST("/login", s.login)
	g.POST("/register", s.register)
}

// Start listens on the configured address until Stop.
func (s *Server) Start() error {
	s.opts.Logger.Info("auth server listening", "addr", s.opts.Address)
	if err := s.app.Start(s.opts.Address); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the listener down.
func (s *Server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}

type message struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type loginUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
}

type loginReply struct {
	Message string    `json:"message"`
	Role    string    `json:"role"`
	User    loginUser `json:"user"`
}

func (s *Server) login(c echo.Context) error {
	var creds auth.Credentials
	if err := c.Bind(&creds); err != nil {
		return c.JSON(http.StatusBadRequest, message{Message: "Invalid request body."})
	}
	if creds.Email == "" || creds.Password == "" || creds.Role == "" {
		return c.JSON(http.StatusBadRequest, message{Message: "Please enter email, password, and select your role."})
	}

	ctx := c.Request().Context()
	u, found := s.findByEmail(s.users.Load(ctx, nil), creds.Email)
	if !found ||
		bcrypt.CompareHashAndPassword([]byte(u.String("passwordHash")), []byte(creds.Password)) != nil ||
		u.String("role") != creds.Role {
		s.opts.Logger.Info("login rejected", "email", creds.Email, "role", creds.Role)
		return c.JSON(http.StatusUnauthorized, message{Message: auth.MsgLoginFailed})
	}

	return c.JSON(http.StatusOK, loginReply{
		Message: "Login successful",
		Role:    u.String("role"),
		User: loginUser{
			ID:        u.ID(record.DefaultIDField),
			Email:     u.String("email"),
			FirstName: u.String("firstName"),
		},
	})
}

func (s *Server) register(c echo.Context) error {
	reg := record.Record{}
	for _, f := range []string{"firstName", "email", "role", "mobileNumber", "password"} {
		reg[f] = strings.TrimSpace(c.FormValue(f))
	}
	if missing := reg.Missing("firstName", "email", "role", "mobileNumber", "password"); len(missing) > 0 {
		return c.JSON(http.StatusBadRequest, message{Message: "Please fill in all fields."})
	}
	if !validRole(reg.String("role")) {
		return c.JSON(http.StatusBadRequest, message{Message: "Unknown role " + reg.String("role") + "."})
	}

	if fh, err := c.FormFile("profilePicture"); err == nil {
		reg["profilePicture"] = fh.Filename
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.String("password")), s.opts.Cost)
	if err != nil {
		return err
	}
	delete(reg, "password")
	reg["passwordHash"] = string(hash)
	reg[record.DefaultIDField] = uuid.New().String()
	reg["createdAt"] = time.Now().UTC().Format(time.RFC3339)

	// Registration rewrites the whole user collection.
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := c.Request().Context()
	users := s.users.Load(ctx, nil)
	if _, dup := s.findByEmail(users, reg.String("email")); dup {
		return c.JSON(http.StatusConflict, message{Message: "User already exists with this email."})
	}
	if _, err := s.users.Upsert(ctx, users, reg); err != nil {
		s.opts.Logger.Error("saving user failed", "err", err)
		return c.JSON(http.StatusInternalServerError, message{Message: "Could not save user."})
	}

	s.opts.Logger.Info("user registered", "email", reg.String("email"), "role", reg.String("role"))
	return c.JSON(http.StatusCreated, message{Success: true, Message: "User registered successfully"})
}

func (s *Server) findByEmail(users []record.Record, email string) (record.Record, bool) {
	for _, u := range users {
		if strings.EqualFold(u.String("email"), email) {
			return u, true
		}
	}
	return nil, false
}

func validRole(role string) bool {
	for _, r := range auth.AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
