package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/harmonode/qobuz/request"
)

// urlCmd represents the url command
var urlCmd = &cobra.Command{
	Use:   "url OBJECT METHOD KEY=VALUE...",
	Short: "Build an API request URL",
	Long: `Build a Qobuz API request URL for the given object and method.
Query parameters are given as KEY=VALUE and keep their order on the URL.

Example:
  qobuzctl url catalog search query=miles
  qobuzctl url track getFileUrl track_id=123 format_id=5 --signed`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runURL(cmd, args)
	},
}

func init() {
	urlCmd.Flags().Bool("signed", false, "append request_ts and request_sig")
	rootCmd.AddCommand(urlCmd)
}

func runURL(cmd *cobra.Command, args []string) error {
	params, err := parseParams(args[2:])
	if err != nil {
		return err
	}

	builder, err := request.NewBuilder(
		viper.GetString("base_url"),
		viper.GetString("app_id"),
		viper.GetString("app_secret"),
	)
	if err != nil {
		return errors.Wrap(err, "[runURL] building request builder")
	}

	signed, _ := cmd.Flags().GetBool("signed")
	if signed {
		fmt.Fprintln(cmd.OutOrStdout(), builder.SignedURL(args[0], args[1], params))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), builder.URL(args[0], args[1], params))
	return nil
}

func parseParams(args []string) (request.Params, error) {
	params := make(request.Params, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, errors.Errorf("[parseParams] %q is not KEY=VALUE", arg)
		}
		params = append(params, request.Param{Key: key, Value: value})
	}
	return params, nil
}
