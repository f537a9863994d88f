package main

import (
	"fmt"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/harmonode/qobuz/broker"
	"github.com/harmonode/qobuz/dispatch"
	"github.com/harmonode/qobuz/login"
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and print the resulting session",
	Long: `Perform a user/login exchange through the session broker using the
QOBUZ_* environment (username or email, password, app identity) and print
the session the API returned.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogin(cmd)
	},
}

func init() {
	loginCmd.Flags().Duration("timeout", time.Minute, "give up after this long")
	loginCmd.Flags().Bool("show-token", false, "print the full auth token instead of a masked one")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command) error {
	figure.NewFigure("qobuzctl", "cybermedium", true).Print()
	fmt.Fprintln(cmd.OutOrStdout())

	credentials := login.Credentials{
		BaseURL:  viper.GetString("base_url"),
		AppID:    viper.GetString("app_id"),
		Username: cfg.GetUsername(),
		Email:    cfg.GetEmail(),
		Password: cfg.GetPassword(),
		DeviceID: cfg.GetDeviceID(),
	}

	client := resty.New().
		SetTimeout(cfg.GetRequestTimeout()).
		SetHeader("User-Agent", cfg.GetUserAgent())

	factory := func(h broker.Handler) (broker.LoginOperation, error) {
		return login.NewRequest(client, credentials, h)
	}

	dispatcher := dispatch.NewSerial()
	defer dispatcher.Close()

	b, err := broker.NewBroker(dispatcher, factory)
	if err != nil {
		return errors.Wrap(err, "[runLogin] building broker")
	}

	ready := make(chan struct{})
	b.Register(broker.WaiterFunc(func() { close(ready) }))

	timeout, _ := cmd.Flags().GetDuration("timeout")
	select {
	case <-ready:
	case <-time.After(timeout):
		return errors.New("[runLogin] timed out waiting for login")
	}

	s, err := b.TryGetSession()
	if err != nil {
		return errors.Wrap(err, "[runLogin] login failed")
	}

	token := maskToken(s.UserAuthToken)
	if show, _ := cmd.Flags().GetBool("show-token"); show {
		token = s.UserAuthToken
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "user id:    %s\n", s.UserID)
	fmt.Fprintf(out, "device id:  %s\n", s.DeviceID)
	fmt.Fprintf(out, "auth token: %s\n", token)
	return nil
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
