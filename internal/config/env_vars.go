package config

import (
	"os"

	"github.com/google/uuid"
)

const (
	baseURLVar  = "QOBUZ_BASE_URL"
	appIDVar    = "QOBUZ_APP_ID"
	secretVar   = "QOBUZ_APP_SECRET"
	usernameVar = "QOBUZ_USERNAME"
	emailVar    = "QOBUZ_EMAIL"
	passwordVar = "QOBUZ_PASSWORD"
	deviceIDVar = "QOBUZ_DEVICE_ID"
	formatIDVar = "QOBUZ_FORMAT_ID"
)

// defaultBaseURL is the production API root; overridable for testing against
// a local stub server.
const defaultBaseURL = "https://www.qobuz.com/api.json/0.2/"

type EnvVars struct{}

var _ CredentialsConfig = EnvVars{}

func (EnvVars) GetBaseURL() string {
	return GetEnv(baseURLVar, defaultBaseURL)
}

func (EnvVars) GetAppID() string {
	return GetEnv(appIDVar, "")
}

func (EnvVars) GetAppSecret() string {
	return GetEnv(secretVar, "")
}

func (EnvVars) GetUsername() string {
	return GetEnv(usernameVar, "")
}

func (EnvVars) GetEmail() string {
	return GetEnv(emailVar, "")
}

func (EnvVars) GetPassword() string {
	return GetEnv(passwordVar, "")
}

// GetDeviceID returns the configured device manufacturer ID, generating a
// random one when unset so a fresh install can still log in.
func (EnvVars) GetDeviceID() string {
	if id := os.Getenv(deviceIDVar); id != "" {
		return id
	}
	return uuid.New().String()
}

func (EnvVars) GetFormatID() string {
	return GetEnv(formatIDVar, "5") // 5 = MP3 320
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
