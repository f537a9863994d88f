package session

// Session holds the result of a successful Qobuz login. It is a plain value:
// construct it once, copy it freely, never mutate it in place. The broker
// replaces the whole value on every new login outcome.
type Session struct {
	UserAuthToken string // Opaque token returned by user/login, sent on authenticated requests
	UserID        string // Numeric user ID, stringified
	DeviceID      string // Device ID the API associated with this login
}

// IsDefined reports whether the session represents a completed login.
func (s Session) IsDefined() bool {
	return s.UserAuthToken != ""
}
