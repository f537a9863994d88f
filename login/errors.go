package login

import "errors"

var (
	TransportFailureErr = errors.New("login exchange failed")
	AuthRejectedErr     = errors.New("credentials rejected")
)
