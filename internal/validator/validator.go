package validator

import (
	"net/url"
	"regexp"
)

// customKeyPattern is the format rule for caller-chosen keys.
var customKeyPattern = regexp.MustCompile(`^[a-zA-Z0-9-_]{2,20}$`)

// reservedKeys can never be used as short keys: they collide with static
// asset paths or administrative routes.
var reservedKeys = map[string]bool{
	"index.html":  true,
	"favicon.ico": true,
	"robots.txt":  true,
	"r":           true,
	"api-auth":    true,
	"api-del":     true,
}

// getBlockedKeys are reserved names with no asset behind them; a GET on
// one of these is answered with the not-found page.
var getBlockedKeys = map[string]bool{
	"r":        true,
	"api-auth": true,
	"api-del":  true,
}

// CheckURL reports whether rawURL is an absolute http or https URL with a
// non-empty host. This runs before any store mutation.
func CheckURL(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}

// CheckCustomKeyFormat reports whether key satisfies the custom-key rule:
// 2-20 characters, letters, numbers, hyphens and underscores only.
func CheckCustomKeyFormat(key string) bool {
	return customKeyPattern.MatchString(key)
}

// IsReservedKey reports whether key collides with a static asset path or
// an administrative route.
func IsReservedKey(key string) bool {
	return reservedKeys[key]
}

// IsGetBlockedKey reports whether key is reserved but not asset-backed.
func IsGetBlockedKey(key string) bool {
	return getBlockedKeys[key]
}
