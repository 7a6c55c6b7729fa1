package urlutil

import (
	"fmt"
	"net/url"
	"strings"
)

// IsHTTP reports whether raw is an absolute http or https URL with a host.
func IsHTTP(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// CanonicalBaseDomain turns raw into the prefix used to tell internal links
// from external ones. Scheme and host are lowercased, default ports dropped,
// query and fragment removed, and the result always ends with "/".
//
//	CanonicalBaseDomain("HTTPS://www.TheCollector.com:443") == "https://www.thecollector.com/"
func CanonicalBaseDomain(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid base domain %q: %w", raw, err)
	}
	u.Scheme = strings.ToLower(u.Scheme)
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("invalid base domain %q: want an absolute http(s) URL", raw)
	}

	u.Host = strings.ToLower(u.Host)
	if port := u.Port(); (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
		u.Host = u.Hostname()
	}
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawPath = ""
	return u.String(), nil
}
