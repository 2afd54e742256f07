package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	inerr "github.com/vango-dev/inertia/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		inerr.Print(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inertia",
		Short: "Server-driven pages for Go components",
		Long: `inertia inspects page payloads and asset manifests and serves
pages declared in a YAML file.

  • Encode, decode and extract embedded page payloads
  • Compute asset manifest versions
  • Serve a page table with server rendering and live sessions`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		pageCmd(),
		manifestCmd(),
		serveCmd(),
		versionCmd(),
	)
	return cmd
}

// success prints a success message.
func success(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), "\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
