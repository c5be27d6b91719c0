package util

import (
	"errors"
	"net/url"
	"strings"

	"webrecon/internal/model"
)

var ErrInvalidURL = errors.New("url must be absolute http(s) with a host")

// ParseTarget validates input and derives the bare domain from it.
// The domain is the host without port, userinfo or IPv6 brackets.
func ParseTarget(input string) (model.Target, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return model.Target{}, ErrInvalidURL
	}

	u, err := url.Parse(input)
	if err != nil {
		return model.Target{}, err
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return model.Target{}, ErrInvalidURL
	}

	domain := u.Hostname()
	if domain == "" {
		return model.Target{}, ErrInvalidURL
	}

	return model.Target{URL: input, Domain: domain}, nil
}

// Dedupe drops repeated entries and keeps first occurrences in order.
func Dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
