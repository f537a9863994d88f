package config

type Config interface {
	CredentialsConfig
	ClientConfig
}

// CredentialsConfig exposes the Qobuz account and application identity
// captured at startup. Values are immutable for the lifetime of the process.
type CredentialsConfig interface {
	GetBaseURL() string
	GetAppID() string
	GetAppSecret() string
	GetUsername() string
	GetEmail() string
	GetPassword() string
	GetDeviceID() string
	GetFormatID() string
}

type mainConfig struct {
	EnvVars
	Client
}

func New() Config {
	return mainConfig{}
}
