package service

import (
	"fmt"
)

// InvalidTargetError aborts a whole run before any collector starts.
type InvalidTargetError struct {
	Input string
	Err   error
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("invalid target %q: %v", e.Input, e.Err)
}

func (e *InvalidTargetError) Unwrap() error { return e.Err }

// FetchError is returned by the fetcher for transport failures and non-2xx responses.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status code %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// EnumerationError reports a subdomain tool that was missing, timed out or exited non-zero.
type EnumerationError struct {
	Tool     string
	ExitCode int
	Err      error
}

func (e *EnumerationError) Error() string {
	return toolErrorMessage("subdomain enumeration", e.Tool, e.ExitCode, e.Err)
}

func (e *EnumerationError) Unwrap() error { return e.Err }

// ScanError reports a directory scan tool that was missing, timed out or exited non-zero.
type ScanError struct {
	Tool     string
	ExitCode int
	Err      error
}

func (e *ScanError) Error() string {
	return toolErrorMessage("directory scan", e.Tool, e.ExitCode, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }

func toolErrorMessage(what, tool string, exitCode int, err error) string {
	if err != nil {
		return fmt.Sprintf("%s with %s: %v", what, tool, err)
	}
	return fmt.Sprintf("%s with %s: exit status %d", what, tool, exitCode)
}
