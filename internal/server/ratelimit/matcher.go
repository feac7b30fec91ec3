package ratelimit

import (
	"net/http"
	"strings"
)

// MatchEndpoint resolves the rate limit configuration for a request path and
// method. Exact path matches win; configs whose path ends in "/" act as
// prefixes, so "/ats/" covers "/ats/{jobID}/refresh-fit". Returns nil when
// only the default limit applies.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	// Health probes are never limited.
	if path == "/health" && method == http.MethodGet {
		return &EndpointConfig{}
	}

	var prefix *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method {
			continue
		}
		if c.Path == path {
			return c
		}
		if prefix == nil && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			prefix = c
		}
	}
	return prefix
}
