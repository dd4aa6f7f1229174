// Package stringutil holds the string checks behind the built-in format table.
package stringutil

import (
	"net/netip"
	"net/url"
	"regexp"
	"strings"
	"time"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	uuidRegex     = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	hostnameRegex = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?)(\.[a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?)*$`)
)

// IsValidEmail checks if s is a valid email address.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// IsValidUUID checks for the 8-4-4-4-12 hex form.
func IsValidUUID(s string) bool {
	return uuidRegex.MatchString(s)
}

// IsValidDate checks for an RFC 3339 full-date (YYYY-MM-DD).
func IsValidDate(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

// IsValidDateTime checks for an RFC 3339 date-time. Lower-case 't' and 'z'
// are allowed, as RFC 3339 permits.
func IsValidDateTime(s string) bool {
	_, err := time.Parse(time.RFC3339Nano, strings.ToUpper(s))
	return err == nil
}

// IsValidURI checks for an absolute URI.
func IsValidURI(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != ""
}

// IsValidIPv4 checks for a dotted-quad IPv4 address.
func IsValidIPv4(s string) bool {
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Is4()
}

// IsValidIPv6 checks for an IPv6 address without zone.
func IsValidIPv6(s string) bool {
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Is6() && addr.Zone() == ""
}

// IsValidHostname checks for an RFC 1123 host name.
func IsValidHostname(s string) bool {
	return len(s) <= 253 && hostnameRegex.MatchString(s)
}
