package urlguard

import "fmt"

// BlockedError reports that a URL was refused by the outbound firewall. The
// boolean checks in this package never return errors themselves; BlockedError
// exists for callers (such as package guard) that turn a deny into a failed
// request.
type BlockedError struct {
	Exchange string
	URL      string
	Reason   string
}

// Error implements the error interface.
func (e *BlockedError) Error() string {
	if e.Exchange != "" {
		return fmt.Sprintf("outbound request blocked for %s: %s (%s)", e.Exchange, e.URL, e.Reason)
	}
	return fmt.Sprintf("outbound request blocked: %s (%s)", e.URL, e.Reason)
}
