// Package login implements the user/login exchange against the Qobuz API.
// A Request is one asynchronous attempt: Start fires it off and the outcome
// is reported exactly once through the Handler it was built with.
package login

import (
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/harmonode/qobuz/session"
)

// Handler receives the single outcome of a login attempt.
type Handler interface {
	OnLoginSuccess(session.Session)
	OnLoginError(error)
}

// Credentials identifies the application and the account to log in.
// Exactly one of Username and Email is used; Username wins when both are set.
type Credentials struct {
	BaseURL  string
	AppID    string
	Username string
	Email    string
	Password string
	DeviceID string
}

// Request is a single fire-and-forget login exchange.
type Request struct {
	client      *resty.Client
	credentials Credentials
	handler     Handler
}

// NewRequest initializes a login request. The request does not touch the
// network until Start is called.
func NewRequest(client *resty.Client, credentials Credentials, handler Handler) (*Request, error) {
	if client == nil {
		return nil, errors.New("[NewRequest] client is required")
	}
	if handler == nil {
		return nil, errors.New("[NewRequest] handler is required")
	}
	if credentials.BaseURL == "" {
		return nil, errors.New("[NewRequest] base URL is required")
	}
	if credentials.AppID == "" {
		return nil, errors.New("[NewRequest] app ID is required")
	}
	if credentials.Username == "" && credentials.Email == "" {
		return nil, errors.New("[NewRequest] username or email is required")
	}

	return &Request{
		client:      client,
		credentials: credentials,
		handler:     handler,
	}, nil
}

// Start launches the exchange on its own goroutine and returns immediately.
// The handler is invoked exactly once, from that goroutine.
func (r *Request) Start() error {
	go r.run()
	return nil
}

func (r *Request) run() {
	form := map[string]string{
		"app_id":                 r.credentials.AppID,
		"password":               r.credentials.Password,
		"device_manufacturer_id": r.credentials.DeviceID,
	}
	if r.credentials.Username != "" {
		form["username"] = r.credentials.Username
	} else {
		form["email"] = r.credentials.Email
	}

	var body loginResponse
	resp, err := r.client.R().
		SetFormData(form).
		SetResult(&body).
		Post(r.credentials.BaseURL + "user/login")

	if err != nil {
		err = errors.Wrap(TransportFailureErr, err.Error())
		log.Err(err).Msg("Login exchange failed")
		r.handler.OnLoginError(err)
		return
	}

	if resp.IsError() {
		err := classifyStatus(resp.StatusCode())
		log.Err(err).Int("status", resp.StatusCode()).Msg("Login rejected")
		r.handler.OnLoginError(err)
		return
	}

	s, err := body.toSession()
	if err != nil {
		err = errors.Wrap(err, "[Request.run] parsing login response")
		log.Err(err).Msg("Login response unusable")
		r.handler.OnLoginError(err)
		return
	}

	log.Debug().Str("user_id", s.UserID).Msg("Login succeeded")
	r.handler.OnLoginSuccess(s)
}

// classifyStatus maps an HTTP error status to a login error kind. 4xx means
// the API understood the request and said no; anything else is transport.
func classifyStatus(status int) error {
	if status >= 400 && status < 500 {
		return errors.Wrapf(AuthRejectedErr, "status %d", status)
	}
	return errors.Wrapf(TransportFailureErr, "status %d", status)
}
