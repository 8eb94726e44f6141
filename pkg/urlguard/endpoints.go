package urlguard

import (
	"sort"
	"strings"
)

// EndpointSet holds the trusted base URLs for one exchange, split by network
// mode and transport. Order within a sequence is stable for readability but
// has no effect on matching.
type EndpointSet struct {
	Mainnet   []string
	Testnet   []string
	WSMainnet []string
	WSTestnet []string
}

// allowedEndpoints maps lower-case exchange names to their trusted endpoints.
// This table is the single source of truth for outbound destinations: adding
// an exchange or endpoint means editing it here and shipping a new binary.
// There is deliberately no runtime registration.
var allowedEndpoints = map[string]EndpointSet{
	"lighter": {
		Mainnet: []string{
			"https://mainnet.zklighter.elliot.ai",
			"https://api.zklighter.elliot.ai",
		},
		Testnet: []string{
			"https://testnet.zklighter.elliot.ai",
			"https://testnet-api.zklighter.elliot.ai",
		},
		WSMainnet: []string{
			"wss://mainnet.zklighter.elliot.ai",
			"wss://mainnet.zklighter.elliot.ai/stream",
		},
		WSTestnet: []string{
			"wss://testnet.zklighter.elliot.ai",
			"wss://testnet.zklighter.elliot.ai/stream",
		},
	},
	// Backpack serves one API host for both networks.
	"backpack": {
		Mainnet: []string{
			"https://api.backpack.exchange",
			"https://api.backpack.exchange/",
		},
		Testnet: []string{
			"https://api.backpack.exchange",
		},
		WSMainnet: []string{
			"wss://ws.backpack.exchange",
			"wss://ws.backpack.exchange/",
		},
		WSTestnet: []string{
			"wss://ws.backpack.exchange",
		},
	},
	"binance": {
		Mainnet: []string{
			"https://fapi.binance.com",
			"https://api.binance.com",
		},
		Testnet: []string{
			"https://testnet.binancefuture.com",
			"https://testnet.binance.vision",
		},
		WSMainnet: []string{
			"wss://fstream.binance.com",
			"wss://stream.binance.com:9443",
		},
		WSTestnet: []string{
			"wss://stream.binancefuture.com",
		},
	},
	// OKX has no separate testnet hosts; paper trading uses demo accounts on
	// the production REST host and a dedicated paper-trading WS host.
	"okx": {
		Mainnet: []string{
			"https://www.okx.com",
			"https://okx.com",
			"https://api.okx.com",
		},
		Testnet: []string{
			"https://www.okx.com",
			"https://okx.com",
		},
		WSMainnet: []string{
			"wss://ws.okx.com:8443",
			"wss://ws.okx.com:8443/ws/v5/public",
			"wss://ws.okx.com:8443/ws/v5/private",
		},
		WSTestnet: []string{
			"wss://wspap.okx.com:8443",
			"wss://wspap.okx.com:8443/ws/v5/public",
			"wss://wspap.okx.com:8443/ws/v5/private",
		},
	},
	"edgex": {
		Mainnet: []string{
			"https://api.edgex.exchange",
			"https://edgex.exchange",
		},
		Testnet: []string{
			"https://api.edgex.exchange",
			"https://edgex.exchange",
		},
		WSMainnet: []string{
			"wss://ws.edgex.exchange",
		},
		WSTestnet: []string{
			"wss://ws.edgex.exchange",
		},
	},
	"hyperliquid": {
		Mainnet: []string{
			"https://api.hyperliquid.xyz",
			"https://hyperliquid.xyz",
		},
		Testnet: []string{
			"https://testnet.hyperliquid.xyz",
			"https://api-testnet.hyperliquid.xyz",
		},
		WSMainnet: []string{
			"wss://api.hyperliquid.xyz/ws",
		},
		WSTestnet: []string{
			"wss://testnet.hyperliquid.xyz/ws",
		},
	},
}

// Exchanges returns the names of all exchanges in the allowlist, sorted.
func Exchanges() []string {
	names := make([]string, 0, len(allowedEndpoints))
	for name := range allowedEndpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AllowedBaseURLs returns the trusted HTTP base URLs for an exchange and
// network mode. Unknown exchanges yield nil. The returned slice is a copy;
// mutating it does not affect the allowlist.
func AllowedBaseURLs(exchange string, testnet bool) []string {
	set, ok := allowedEndpoints[strings.ToLower(exchange)]
	if !ok {
		return nil
	}
	if testnet {
		return cloneURLs(set.Testnet)
	}
	return cloneURLs(set.Mainnet)
}

// AllowedWSURLs returns the trusted WebSocket URLs for an exchange and
// network mode. Unknown exchanges yield nil.
func AllowedWSURLs(exchange string, testnet bool) []string {
	set, ok := allowedEndpoints[strings.ToLower(exchange)]
	if !ok {
		return nil
	}
	if testnet {
		return cloneURLs(set.WSTestnet)
	}
	return cloneURLs(set.WSMainnet)
}

func cloneURLs(urls []string) []string {
	if len(urls) == 0 {
		return nil
	}
	out := make([]string, len(urls))
	copy(out, urls)
	return out
}

// endpointsFor selects the sequence for one (exchange, network, transport)
// combination. The second return reports whether the exchange exists at all,
// so callers can distinguish "unknown exchange" from "mode not configured".
func endpointsFor(exchange string, testnet, websocket bool) ([]string, bool) {
	set, ok := allowedEndpoints[strings.ToLower(exchange)]
	if !ok {
		return nil, false
	}
	switch {
	case websocket && testnet:
		return set.WSTestnet, true
	case websocket:
		return set.WSMainnet, true
	case testnet:
		return set.Testnet, true
	default:
		return set.Mainnet, true
	}
}
