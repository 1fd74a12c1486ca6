package utils

import (
	"net/http"
	"strings"
)

// BaseURL rebuilds the public origin of a request from the forwarded scheme
// and the Host header. X-Forwarded-Host is client controlled and ignored.
func BaseURL(r *http.Request) string {
	scheme := firstHeaderValue(r.Header.Get("X-Forwarded-Proto"))
	if scheme == "" {
		scheme = "http"
		if r.TLS != nil {
			scheme = "https"
		}
	}

	return scheme + "://" + r.Host
}

func firstHeaderValue(v string) string {
	if i := strings.IndexByte(v, ','); i >= 0 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}
