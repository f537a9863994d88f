package config

import "time"

type ClientConfig interface {
	GetRequestTimeout() time.Duration
	GetUserAgent() string
}

type Client struct{}

var _ ClientConfig = Client{}

func (Client) GetRequestTimeout() time.Duration {
	return 30 * time.Second
}

func (Client) GetUserAgent() string {
	return GetEnv("QOBUZ_USER_AGENT", "qobuzctl/0.2")
}
