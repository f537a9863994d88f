package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/harmonode/qobuz/internal/fsio"
	"github.com/harmonode/qobuz/storage"
)

// lsCmd represents the ls command
var lsCmd = &cobra.Command{
	Use:   "ls URI [PATH]",
	Short: "List a storage directory",
	Long: `List the directory at PATH (default: the root) of the storage
identified by URI. A URI without a scheme is a local filesystem path.

Example:
  qobuzctl ls /srv/music albums
  qobuzctl ls file:///srv/music --gzip -o listing.gz`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLs(cmd, args)
	},
}

// statCmd represents the stat command
var statCmd = &cobra.Command{
	Use:   "stat URI PATH",
	Short: "Describe one storage entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStat(cmd, args)
	},
}

func init() {
	lsCmd.Flags().StringP("output", "o", "", "write the listing to a file instead of stdout")
	lsCmd.Flags().BoolP("gzip", "z", false, "gzip-compress the listing (requires --output)")
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(statCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	s, err := storage.Open(args[0])
	if err != nil {
		return errors.Wrap(err, "[runLs] opening storage")
	}

	path := ""
	if len(args) > 1 {
		path = args[1]
	}

	dir, err := s.OpenDirectory(path)
	if err != nil {
		return errors.Wrap(err, "[runLs] opening directory")
	}

	out, closeOut, err := listingOutput(cmd)
	if err != nil {
		return err
	}
	defer closeOut()

	for {
		name, ok := dir.Read()
		if !ok {
			return nil
		}

		info, err := dir.Info(false)
		if err != nil {
			return errors.Wrap(err, "[runLs] reading entry info")
		}

		mtime := "          "
		if !info.ModTime.IsZero() {
			mtime = info.ModTime.UTC().Format("2006-01-02T15:04:05Z")
		}
		fmt.Fprintf(out, "%s %10d %s %s\n", shortKind(info.Kind), info.Size, mtime, name)
	}
}

func runStat(cmd *cobra.Command, args []string) error {
	s, err := storage.Open(args[0])
	if err != nil {
		return errors.Wrap(err, "[runStat] opening storage")
	}

	info, err := s.Stat(args[1], false)
	if err != nil {
		return errors.Wrap(err, "[runStat] stat")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", info.Kind)
	fmt.Fprintf(out, "size: %d\n", info.Size)
	return nil
}

// listingOutput picks stdout, a plain file or a gzip-compressed file,
// depending on the flags.
func listingOutput(cmd *cobra.Command) (io.Writer, func(), error) {
	output, _ := cmd.Flags().GetString("output")
	compress, _ := cmd.Flags().GetBool("gzip")

	if output == "" {
		if compress {
			return nil, nil, errors.New("[listingOutput] --gzip requires --output")
		}
		return cmd.OutOrStdout(), func() {}, nil
	}

	f, err := os.Create(output)
	if err != nil {
		return nil, nil, errors.Wrap(err, "[listingOutput] creating output file")
	}
	if !compress {
		return f, func() { _ = f.Close() }, nil
	}

	gz := fsio.NewGzipWriter(f)
	return gz, func() {
		_ = gz.Close()
		_ = f.Close()
	}, nil
}

func shortKind(k storage.Kind) string {
	switch k {
	case storage.KindRegular:
		return "reg"
	case storage.KindDirectory:
		return "dir"
	default:
		return "oth"
	}
}
