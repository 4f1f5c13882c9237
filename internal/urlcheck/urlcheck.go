// Package urlcheck decides whether user input is a well-formed absolute URL.
package urlcheck

import (
	"net"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/idna"
)

// Schemes that must carry a host, following the URL standard's "special" schemes.
// file is special too but may have an empty host.
var hostRequired = map[string]bool{
	"http":  true,
	"https": true,
	"ws":    true,
	"wss":   true,
	"ftp":   true,
}

// Hosts are mapped the way browsers do it: UTS #46 without the STD3 ASCII rules,
// so underscores in labels are accepted.
var hostProfile = idna.New(
	idna.MapForLookup(),
	idna.StrictDomainName(false),
	idna.Transitional(false),
)

// IsValid reports whether input parses as an absolute URL.
// Leading and trailing whitespace is ignored, as in the URL standard.
func IsValid(input string) bool {
	s := strings.TrimSpace(input)
	if s == "" {
		return false
	}

	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if !validScheme(u.Scheme) {
		return false
	}

	scheme := strings.ToLower(u.Scheme)

	// Special schemes read the authority after any run of slashes, so
	// http:example.com and http:///example.com both name a host.
	if hostRequired[scheme] && u.Host == "" {
		rest := strings.TrimLeft(s[len(u.Scheme)+1:], "/\\")
		u, err = url.Parse(scheme + "://" + rest)
		if err != nil || u.Host == "" {
			return false
		}
	}

	// Opaque form, e.g. mailto:someone@example.com
	if u.Opaque != "" {
		return scheme != "file"
	}

	if u.Host == "" {
		// file:///path and scheme:/path are absolute without an authority.
		return scheme == "file" || strings.HasPrefix(u.Path, "/")
	}

	return validHost(u.Hostname()) && validPort(u.Port())
}

func validPort(port string) bool {
	if port == "" {
		return true
	}
	n, err := strconv.Atoi(port)
	return err == nil && n <= 65535
}

// validScheme checks RFC 3986: ALPHA *( ALPHA / DIGIT / "+" / "-" / "." ).
func validScheme(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

func validHost(host string) bool {
	if host == "" {
		return false
	}
	if net.ParseIP(host) != nil {
		return true
	}
	// A numeric last label makes the host an IPv4 address, and it did not parse.
	labels := strings.Split(strings.TrimSuffix(host, "."), ".")
	if isDigits(labels[len(labels)-1]) {
		return false
	}
	ascii, err := hostProfile.ToASCII(host)
	if err != nil || ascii == "" {
		return false
	}
	// Forbidden host code points per the URL standard.
	return !strings.ContainsAny(ascii, " #%/:<>?@[\\]^|")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
