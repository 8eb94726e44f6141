// handlers.go contains the RunE handlers for the check, safety, sanitize,
// and list commands.
package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/haasonsaas/egressgate/pkg/urlguard"
)

// errDenied is the sentinel for a deny outcome; main converts it to exit
// code 1 without logging a failure.
var errDenied = errors.New("denied")

func buildCheckCmd() *cobra.Command {
	var exchange string
	var testnet, websocket, skipSafety bool
	cmd := &cobra.Command{
		Use:   "check <url>",
		Short: "Check a URL against the exchange allowlist and safety heuristics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), exchange, args[0], testnet, websocket, skipSafety)
		},
	}
	cmd.Flags().StringVarP(&exchange, "exchange", "e", "", "Exchange name (required)")
	cmd.Flags().BoolVarP(&testnet, "testnet", "t", false, "Validate against the testnet allowlist")
	cmd.Flags().BoolVarP(&websocket, "ws", "w", false, "Validate against the WebSocket allowlist")
	cmd.Flags().BoolVar(&skipSafety, "skip-safety", false, "Skip the general safety heuristics")
	_ = cmd.MarkFlagRequired("exchange")
	return cmd
}

func runCheck(out io.Writer, exchange, url string, testnet, websocket, skipSafety bool) error {
	if !urlguard.IsAllowedURL(exchange, url, testnet, websocket) {
		fmt.Fprintf(out, "deny: %s is not an allowlisted %s endpoint for %s\n",
			urlguard.SanitizeURL(url), axisName(testnet, websocket), exchange)
		return errDenied
	}
	if !skipSafety && !urlguard.ValidateURLSafety(url) {
		fmt.Fprintf(out, "deny: %s failed the safety heuristics\n", urlguard.SanitizeURL(url))
		return errDenied
	}
	fmt.Fprintln(out, "allow")
	return nil
}

func buildSafetyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "safety <url>",
		Short: "Run only the general SSRF heuristics on a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !urlguard.ValidateURLSafety(args[0]) {
				fmt.Fprintln(cmd.OutOrStdout(), "deny")
				return errDenied
			}
			fmt.Fprintln(cmd.OutOrStdout(), "allow")
			return nil
		},
	}
}

func buildSanitizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sanitize <url>",
		Short: "Print a URL with query string and fragment removed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), urlguard.SanitizeURL(args[0]))
			return nil
		},
	}
}

func buildListCmd() *cobra.Command {
	var exchange string
	var testnet bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List allowlisted endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.OutOrStdout(), exchange, testnet)
		},
	}
	cmd.Flags().StringVarP(&exchange, "exchange", "e", "", "Limit output to one exchange")
	cmd.Flags().BoolVarP(&testnet, "testnet", "t", false, "Show the testnet allowlist")
	return cmd
}

func runList(out io.Writer, exchange string, testnet bool) error {
	exchanges := urlguard.Exchanges()
	if exchange != "" {
		name := strings.ToLower(exchange)
		known := false
		for _, candidate := range exchanges {
			if candidate == name {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown exchange %q", exchange)
		}
		exchanges = []string{name}
	}
	for _, name := range exchanges {
		fmt.Fprintf(out, "%s (%s)\n", name, networkName(testnet))
		for _, u := range urlguard.AllowedBaseURLs(name, testnet) {
			fmt.Fprintf(out, "  http  %s\n", u)
		}
		for _, u := range urlguard.AllowedWSURLs(name, testnet) {
			fmt.Fprintf(out, "  ws    %s\n", u)
		}
	}
	return nil
}

func axisName(testnet, websocket bool) string {
	transport := "http"
	if websocket {
		transport = "websocket"
	}
	return networkName(testnet) + " " + transport
}

func networkName(testnet bool) string {
	if testnet {
		return "testnet"
	}
	return "mainnet"
}
