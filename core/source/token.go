package source

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNoToken is returned when no album token can be extracted from the input.
// This is a terminal input error; callers must not retry.
var ErrNoToken = errors.New("no album token found in input")

var (
	alphanumeric = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	// Share links without a fragment carry the token as the last path
	// segment of the well-known sharedalbum path.
	sharePathPattern = regexp.MustCompile(`(?i)sharedalbum/([A-Za-z0-9]+)`)
)

// ResolveToken extracts the album token from a pasted share link, a raw URL,
// or a bare token string.
func ResolveToken(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrNoToken
	}

	// Share links usually carry the token as a fragment.
	if idx := strings.LastIndex(input, "#"); idx >= 0 {
		token := strings.TrimSpace(input[idx+1:])
		if token != "" && alphanumeric.MatchString(token) {
			return token, nil
		}
		return "", ErrNoToken
	}

	if m := sharePathPattern.FindStringSubmatch(input); m != nil {
		return m[1], nil
	}

	if alphanumeric.MatchString(input) {
		return input, nil
	}

	return "", ErrNoToken
}

// AlbumBaseURL builds the album API base URL for a token. An explicit
// override wins over the configured one; otherwise the URL is synthesized
// from the configured host. The result always ends with a path separator.
func (c Config) AlbumBaseURL(token string, override string) (string, error) {
	base := override
	if base == "" {
		base = c.BaseURL
	}
	if base == "" {
		host := c.Host
		if host == "" {
			return "", fmt.Errorf("cannot build base URL: no host configured")
		}
		base = fmt.Sprintf("https://%s/%s/sharedstreams", host, token)
	}

	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base, nil
}
