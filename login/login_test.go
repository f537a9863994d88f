package login_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"

	"github.com/harmonode/qobuz/login"
	"github.com/harmonode/qobuz/session"
)

// captureHandler funnels the single login outcome into channels the test can
// wait on.
type captureHandler struct {
	success chan session.Session
	failure chan error
}

func newCaptureHandler() *captureHandler {
	return &captureHandler{
		success: make(chan session.Session, 1),
		failure: make(chan error, 1),
	}
}

func (h *captureHandler) OnLoginSuccess(s session.Session) { h.success <- s }
func (h *captureHandler) OnLoginError(err error)           { h.failure <- err }

func (h *captureHandler) waitSuccess(t *testing.T) session.Session {
	t.Helper()
	select {
	case s := <-h.success:
		return s
	case err := <-h.failure:
		t.Fatalf("unexpected login error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("login never reported")
	}
	return session.Session{}
}

func (h *captureHandler) waitFailure(t *testing.T) error {
	t.Helper()
	select {
	case err := <-h.failure:
		return err
	case <-h.success:
		t.Fatal("unexpected login success")
	case <-time.After(5 * time.Second):
		t.Fatal("login never reported")
	}
	return nil
}

func testCredentials(baseURL string) login.Credentials {
	return login.Credentials{
		BaseURL:  baseURL,
		AppID:    "APPID",
		Username: "alice",
		Password: "s3cret",
		DeviceID: "device-1",
	}
}

func startLogin(t *testing.T, creds login.Credentials) *captureHandler {
	t.Helper()

	handler := newCaptureHandler()
	req, err := login.NewRequest(resty.New(), creds, handler)
	require.NoError(t, err)
	require.NoError(t, req.Start())
	return handler
}

func TestNewRequestValidation(t *testing.T) {
	handler := newCaptureHandler()
	client := resty.New()

	_, err := login.NewRequest(nil, testCredentials("http://x/"), handler)
	require.Error(t, err)

	_, err = login.NewRequest(client, testCredentials("http://x/"), nil)
	require.Error(t, err)

	creds := testCredentials("http://x/")
	creds.Username = ""
	creds.Email = ""
	_, err = login.NewRequest(client, creds, handler)
	require.Error(t, err)
}

func TestLoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/user/login", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "APPID", r.PostFormValue("app_id"))
		require.Equal(t, "alice", r.PostFormValue("username"))
		require.Equal(t, "s3cret", r.PostFormValue("password"))
		require.Equal(t, "device-1", r.PostFormValue("device_manufacturer_id"))
		require.Empty(t, r.PostFormValue("email"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"user_auth_token": "tok-123",
			"user": {"id": 42, "device": {"id": 7}}
		}`))
	}))
	defer srv.Close()

	handler := startLogin(t, testCredentials(srv.URL+"/"))
	s := handler.waitSuccess(t)

	require.Equal(t, "tok-123", s.UserAuthToken)
	require.Equal(t, "42", s.UserID)
	require.Equal(t, "7", s.DeviceID)
}

func TestLoginFallsBackToEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "alice@example.com", r.PostFormValue("email"))
		require.Empty(t, r.PostFormValue("username"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user_auth_token": "tok-email"}`))
	}))
	defer srv.Close()

	creds := testCredentials(srv.URL + "/")
	creds.Username = ""
	creds.Email = "alice@example.com"

	handler := startLogin(t, creds)
	require.Equal(t, "tok-email", handler.waitSuccess(t).UserAuthToken)
}

func TestLoginAuthRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":"error","message":"Invalid credentials"}`))
	}))
	defer srv.Close()

	handler := startLogin(t, testCredentials(srv.URL+"/"))
	err := handler.waitFailure(t)
	require.ErrorIs(t, err, login.AuthRejectedErr)
}

func TestLoginTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	handler := startLogin(t, testCredentials(srv.URL+"/"))
	err := handler.waitFailure(t)
	require.ErrorIs(t, err, login.TransportFailureErr)
}

func TestLoginServerErrorIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	handler := startLogin(t, testCredentials(srv.URL+"/"))
	err := handler.waitFailure(t)
	require.ErrorIs(t, err, login.TransportFailureErr)
}

func TestLoginResponseWithoutTokenFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user": {"id": 42}}`))
	}))
	defer srv.Close()

	handler := startLogin(t, testCredentials(srv.URL+"/"))
	require.Error(t, handler.waitFailure(t))
}
