package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"webrecon/internal/log"
	"webrecon/internal/process"
)

const DefaultFoundMarker = "[+]"

// DirectoryScanner runs an external path brute-force tool (dirsearch
// compatible) and keeps the paths from lines carrying the found marker.
type DirectoryScanner struct {
	runner        process.Runner
	tool          string
	timeout       time.Duration
	extensions    string
	excludeStatus string
	foundMarker   string
}

// ScannerOption configures a DirectoryScanner.
type ScannerOption func(*DirectoryScanner)

// WithExtensions sets the -e value. Defaults to "*".
func WithExtensions(ext string) ScannerOption {
	return func(s *DirectoryScanner) {
		if ext != "" {
			s.extensions = ext
		}
	}
}

// WithExcludeStatus sets the -x status code list. Defaults to "400,403,404".
func WithExcludeStatus(codes string) ScannerOption {
	return func(s *DirectoryScanner) {
		if codes != "" {
			s.excludeStatus = codes
		}
	}
}

func WithFoundMarker(marker string) ScannerOption {
	return func(s *DirectoryScanner) {
		if marker != "" {
			s.foundMarker = marker
		}
	}
}

func NewDirectoryScanner(runner process.Runner, tool string, timeout time.Duration, opts ...ScannerOption) *DirectoryScanner {
	s := &DirectoryScanner{
		runner:        runner,
		tool:          tool,
		timeout:       timeout,
		extensions:    "*",
		excludeStatus: "400,403,404",
		foundMarker:   DefaultFoundMarker,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *DirectoryScanner) args(targetURL string) []string {
	return []string{"-u", targetURL, "-e", s.extensions, "-x", s.excludeStatus}
}

// Scan probes targetURL and returns the discovered paths in output order.
func (s *DirectoryScanner) Scan(ctx context.Context, targetURL string) ([]string, error) {
	res, err := s.runner.Run(ctx, s.tool, s.args(targetURL), s.timeout)
	if err != nil {
		log.Logger.Warn("directory scan failed",
			zap.String("tool", s.tool),
			zap.String("url", targetURL),
			zap.Error(err),
		)
		return []string{}, &ScanError{Tool: s.tool, ExitCode: res.ExitCode, Err: err}
	}
	if res.ExitCode != 0 {
		log.Logger.Warn("directory scan tool exited with non-zero status",
			zap.String("tool", s.tool),
			zap.String("url", targetURL),
			zap.Int("exit_code", res.ExitCode),
			zap.String("stderr", stderrTail(res.Stderr)),
		)
		return []string{}, &ScanError{Tool: s.tool, ExitCode: res.ExitCode}
	}

	return parseFoundLines(res.Stdout, s.foundMarker), nil
}

// parseFoundLines keeps the last token of every line starting with marker.
// Other lines, and marker lines with nothing after the marker, are ignored.
func parseFoundLines(out, marker string) []string {
	folders := []string{}
	for _, line := range splitLines(out) {
		if !strings.HasPrefix(line, marker) {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(line, marker))
		if len(fields) == 0 {
			continue
		}
		folders = append(folders, fields[len(fields)-1])
	}
	return folders
}
