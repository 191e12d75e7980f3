package ratelimit

import "strings"

// UnknownClient is the key used when neither a forwarded-address header nor a
// fallback identifier is available.
const UnknownClient = "unknown"

// ClientKey derives a throttling key from a comma-separated forwarded-address
// header such as X-Forwarded-For: the first entry, trimmed. When the header
// is empty the fallback (typically the peer address) is used, and when both
// are empty UnknownClient.
//
// Behind no trusted proxy the header is attacker-controlled, so this is
// best-effort throttling, not authentication.
func ClientKey(header, fallback string) string {
	if header != "" {
		first := header
		if i := strings.IndexByte(header, ','); i >= 0 {
			first = header[:i]
		}
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if fallback != "" {
		return fallback
	}
	return UnknownClient
}
