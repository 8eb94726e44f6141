// Package main provides the egressgate CLI: an outbound-request firewall for
// exchange connectors.
//
// # Basic Usage
//
// Check a URL against the allowlist:
//
//	egressgate check --exchange binance https://fapi.binance.com/fapi/v1/order
//
// Run only the general SSRF heuristics:
//
//	egressgate safety http://169.254.169.254/latest/meta-data/
//
// Show the allowlisted endpoints:
//
//	egressgate list --exchange okx --testnet
//
// Run the policy sidecar with prometheus metrics:
//
//	egressgate serve --config egressgate.yaml
//
// Gating commands exit 0 on allow and 1 on deny, so they compose in shell
// pipelines and CI checks.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Build information - populated by ldflags during build.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	rootCmd := buildRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if err != errDenied {
			slog.Error("command execution failed", "error", err)
		}
		os.Exit(1)
	}
}

// buildRootCmd creates the root command with all subcommands attached.
// Separated from main() to facilitate testing.
func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "egressgate",
		Short: "Egressgate - outbound-request firewall for exchange connectors",
		Long: `Egressgate validates outbound HTTP and WebSocket URLs before any
connection is opened: a URL must be on the compiled-in allowlist for its
exchange and network mode, and must clear general SSRF heuristics
(loopback, private ranges, cloud metadata, dangerous ports).`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		buildCheckCmd(),
		buildSafetyCmd(),
		buildSanitizeCmd(),
		buildListCmd(),
		buildServeCmd(),
	)

	return rootCmd
}
