package app

import (
	"net/url"
	"strings"
)

// originAllowed matches the host of origin against allow-list patterns.
// Patterns are exact hosts, "*.example.com" subdomain wildcards or "localhost:*" port wildcards.
func originAllowed(patterns []string, origin string) bool {
	host := origin
	if u, err := url.Parse(origin); err == nil && u.Host != "" {
		host = u.Host
	}
	for _, p := range patterns {
		switch {
		case p == host:
			return true
		case strings.HasPrefix(p, "*.") && strings.HasSuffix(host, p[1:]):
			return true
		case strings.HasSuffix(p, ":*") && strings.HasPrefix(host, strings.TrimSuffix(p, "*")):
			return true
		}
	}
	return false
}
