package service

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"webrecon/internal/log"
	"webrecon/internal/process"
)

// SubdomainEnumerator runs an external subdomain discovery tool (sublist3r
// compatible: "<tool> -d <domain>") and returns its stdout lines verbatim.
type SubdomainEnumerator struct {
	runner  process.Runner
	tool    string
	timeout time.Duration
	cache   *gocache.Cache
}

func NewSubdomainEnumerator(runner process.Runner, tool string, timeout time.Duration) *SubdomainEnumerator {
	return &SubdomainEnumerator{
		runner:  runner,
		tool:    tool,
		timeout: timeout,
		cache:   gocache.New(gocache.NoExpiration, 0),
	}
}

// Enumerate returns the tool's output lines for domain. Blank lines and
// banner text are not filtered. Successful results are cached per domain.
func (e *SubdomainEnumerator) Enumerate(ctx context.Context, domain string) ([]string, error) {
	if cached, ok := e.cache.Get(domain); ok {
		log.Logger.Debug("subdomain cache hit", zap.String("domain", domain))
		return cloneLines(cached.([]string)), nil
	}

	res, err := e.runner.Run(ctx, e.tool, []string{"-d", domain}, e.timeout)
	if err != nil {
		log.Logger.Warn("subdomain enumeration failed",
			zap.String("tool", e.tool),
			zap.String("domain", domain),
			zap.Error(err),
		)
		return []string{}, &EnumerationError{Tool: e.tool, ExitCode: res.ExitCode, Err: err}
	}
	if res.ExitCode != 0 {
		log.Logger.Warn("subdomain tool exited with non-zero status",
			zap.String("tool", e.tool),
			zap.String("domain", domain),
			zap.Int("exit_code", res.ExitCode),
			zap.String("stderr", stderrTail(res.Stderr)),
		)
		return []string{}, &EnumerationError{Tool: e.tool, ExitCode: res.ExitCode}
	}

	subdomains := splitLines(res.Stdout)
	e.cache.Set(domain, subdomains, gocache.NoExpiration)
	return cloneLines(subdomains), nil
}

// cached slices are never handed out directly
func cloneLines(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}
