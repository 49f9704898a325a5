package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"github.com/sendgrid/rest"
)

const (
	loginPath    = "/App/user/login"
	registerPath = "/App/user/register"
)

// HTTPClient is a Client for the REST auth API.
type HTTPClient struct {
	BaseURL string
	// HTTP carries the requests, http.DefaultClient when nil.
	HTTP *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient talks to the API rooted at baseURL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{BaseURL: baseURL}
}

// ctxTransport binds every request it carries to ctx.
type ctxTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t ctxTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(req.WithContext(t.ctx))
}

// send posts req with a rest client scoped to ctx.
func (c *HTTPClient) send(ctx context.Context, req rest.Request) (*rest.Response, error) {
	hc := http.DefaultClient
	if c.HTTP != nil {
		hc = c.HTTP
	}
	base := hc.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	scoped := *hc
	scoped.Transport = ctxTransport{ctx: ctx, base: base}
	client := &rest.Client{HTTPClient: &scoped}
	return client.Send(req)
}

type loginResponse struct {
	Role    string `json:"role"`
	Message string `json:"message"`
	User    struct {
		Email     string `json:"email"`
		FirstName string `json:"firstName"`
	} `json:"user"`
}

// Login validates creds, then posts them as JSON.
func (c *HTTPClient) Login(ctx context.Context, creds Credentials) (Session, error) {
	if err := Validate(creds); err != nil {
		return Session{}, err
	}
	body, err := json.Marshal(creds)
	if err != nil {
		return Session{}, errors.Wrap(err, "auth: encoding credentials")
	}

	res, err := c.send(ctx, rest.Request{
		Method:  rest.Post,
		BaseURL: c.BaseURL + loginPath,
		Headers: map[string]string{"Content-Type": "application/json", "Accept": "application/json"},
		Body:    body,
	})
	if err != nil {
		return Session{}, errors.Wrap(ErrUnavailable, err.Error())
	}

	var data loginResponse
	decodeErr := json.Unmarshal([]byte(res.Body), &data)
	if !ok(res.StatusCode) {
		msg := data.Message
		if decodeErr != nil || msg == "" {
			msg = MsgLoginFailed
		}
		return Session{}, &Error{Status: res.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return Session{}, errors.Wrap(ErrUnavailable, "invalid JSON from server")
	}

	var s Session
	if err := copier.Copy(&s, &data.User); err != nil {
		return Session{}, errors.Wrap(err, "auth: reading user")
	}
	s.Role = data.Role
	return s, nil
}

// Register validates reg, then posts it as a multipart form with the
// optional profile picture attached.
func (c *HTTPClient) Register(ctx context.Context, reg Registration) (RegisterResult, error) {
	if err := Validate(reg); err != nil {
		return RegisterResult{}, err
	}
	body, contentType, err := registrationForm(reg)
	if err != nil {
		return RegisterResult{}, err
	}

	res, err := c.send(ctx, rest.Request{
		Method:  rest.Post,
		BaseURL: c.BaseURL + registerPath,
		Headers: map[string]string{"Content-Type": contentType, "Accept": "application/json"},
		Body:    body,
	})
	if err != nil {
		return RegisterResult{}, errors.Wrap(ErrUnavailable, err.Error())
	}

	var out RegisterResult
	if err := json.Unmarshal([]byte(res.Body), &out); err != nil {
		return RegisterResult{}, errors.Wrap(ErrUnavailable, "invalid JSON from server")
	}
	if !ok(res.StatusCode) || !out.Success {
		msg := out.Message
		if msg == "" {
			msg = MsgRegisterFailed
		}
		return out, &Error{Status: res.StatusCode, Message: msg}
	}
	return out, nil
}

func registrationForm(reg Registration) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, kv := range [][2]string{
		{"firstName", reg.FirstName},
		{"email", reg.Email},
		{"role", reg.Role},
		{"mobileNumber", reg.MobileNumber},
		{"password", reg.Password},
	} {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", errors.Wrap(err, "auth: building form")
		}
	}

	if reg.ProfilePicture != "" {
		f, err := os.Open(reg.ProfilePicture)
		if err != nil {
			return nil, "", errors.Wrap(err, "auth: opening profile picture")
		}
		defer f.Close()
		part, err := w.CreateFormFile("profilePicture", filepath.Base(reg.ProfilePicture))
		if err != nil {
			return nil, "", errors.Wrap(err, "auth: building form")
		}
		if _, err := io.Copy(part, f); err != nil {
			return nil, "", errors.Wrap(err, "auth: reading profile picture")
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", errors.Wrap(err, "auth: building form")
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func ok(status int) bool {
	return status >= 200 && status < 300
}
