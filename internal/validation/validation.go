package validation

import (
	"net/url"
	"strings"
)

// NormalizeWebsite trims and lowercases a website so duplicate detection is
// case-insensitive. The normalized form is the identity key for global
// backlinks.
func NormalizeWebsite(website string) string {
	return strings.ToLower(strings.TrimSpace(website))
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
// This prevents javascript:, data:, vbscript:, and other dangerous URL schemes.
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}
