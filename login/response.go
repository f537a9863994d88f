package login

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/harmonode/qobuz/session"
)

// loginResponse mirrors the subset of the user/login JSON body the client
// needs. IDs arrive as numbers; json.Number keeps them lossless.
type loginResponse struct {
	UserAuthToken string `json:"user_auth_token"`
	User          struct {
		ID     json.Number `json:"id"`
		Device struct {
			ID json.Number `json:"id"`
		} `json:"device"`
	} `json:"user"`
}

func (r loginResponse) toSession() (session.Session, error) {
	if r.UserAuthToken == "" {
		return session.Session{}, errors.New("response carries no user_auth_token")
	}

	return session.Session{
		UserAuthToken: r.UserAuthToken,
		UserID:        r.User.ID.String(),
		DeviceID:      r.User.Device.ID.String(),
	}, nil
}
