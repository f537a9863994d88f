package broker

import "errors"

var (
	NotLoggedInErr = errors.New("not logged in")
)
