package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"webrecon/internal/process"
	"webrecon/internal/service"
)

// missingToolRunner behaves as if no external tool is installed.
type missingToolRunner struct {
	calls int
}

func (r *missingToolRunner) Run(ctx context.Context, name string, args []string, timeout time.Duration) (process.Result, error) {
	r.calls++
	return process.Result{ExitCode: -1}, fmt.Errorf("%w: %s", process.ErrToolNotFound, name)
}

func withRunner(t *testing.T, r process.Runner) {
	t.Helper()
	prev := newRunner
	newRunner = func() process.Runner { return r }
	t.Cleanup(func() { newRunner = prev })
}

func executeScan(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	base := []string{"scan", "--env-file", filepath.Join(t.TempDir(), "none.env")}
	cmd.SetArgs(append(base, args...))
	err := cmd.Execute()
	return out.String(), err
}

func newPageServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>Acme</title></head><body><p>Call 415-555-2671</p></body></html>`)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestScanInvalidTarget(t *testing.T) {
	runner := &missingToolRunner{}
	withRunner(t, runner)

	out, err := executeScan(t, "", "not a url")

	var invalid *service.InvalidTargetError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTargetError, got %v", err)
	}
	if got := strings.Count(out, "skipped: invalid target"); got != 4 {
		t.Errorf("expected 4 skipped sections, got %d:\n%s", got, out)
	}
	if runner.calls != 0 {
		t.Errorf("runner called %d times, want 0", runner.calls)
	}
}

func TestScanToolsMissing(t *testing.T) {
	withRunner(t, &missingToolRunner{})
	server := newPageServer(t)

	out, err := executeScan(t, "", server.URL)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	for _, want := range []string{
		"Title: Acme",
		"Phone Numbers:\n415-555-2671",
		"Subdomains:\nfailed: subdomain enumeration with sublist3r: tool not found: sublist3r",
		"Folders:\nfailed: directory scan with dirsearch: tool not found: dirsearch",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestScanPromptsForTarget(t *testing.T) {
	withRunner(t, &missingToolRunner{})
	server := newPageServer(t)

	out, err := executeScan(t, server.URL+"\n")
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if !strings.HasPrefix(out, "Please enter the website URL: ") {
		t.Errorf("expected prompt, got:\n%s", out)
	}
	if !strings.Contains(out, "Target: "+server.URL) {
		t.Errorf("prompted target not scanned:\n%s", out)
	}
}

func TestScanToolFlags(t *testing.T) {
	withRunner(t, &missingToolRunner{})
	server := newPageServer(t)

	out, err := executeScan(t, "", "--subdomain-tool", "subfinder-compat", "--dirscan-tool", "ffuf-compat", server.URL)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if !strings.Contains(out, "subfinder-compat") || !strings.Contains(out, "ffuf-compat") {
		t.Errorf("tool flags not applied:\n%s", out)
	}
}

func TestScanConflictingFormats(t *testing.T) {
	withRunner(t, &missingToolRunner{})

	_, err := executeScan(t, "", "--json", "--markdown", "https://example.com")
	if !errors.Is(err, errConflictingFormats) {
		t.Errorf("expected errConflictingFormats, got %v", err)
	}
}

func TestScanInvalidPhoneSource(t *testing.T) {
	withRunner(t, &missingToolRunner{})

	_, err := executeScan(t, "", "--phone-source", "pdf", "https://example.com")
	if err == nil || !strings.Contains(err.Error(), "configuration error") {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestScanOutputFileAndMetrics(t *testing.T) {
	withRunner(t, &missingToolRunner{})
	server := newPageServer(t)

	dir := t.TempDir()
	reportPath := filepath.Join(dir, "nested", "report.md")
	metricsPath := filepath.Join(dir, "webrecon.prom")

	out, err := executeScan(t, "", "--markdown", "-o", reportPath, "--metrics-file", metricsPath, server.URL)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if out != "" {
		t.Errorf("stdout should be empty when writing to a file, got:\n%s", out)
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(data), "# Recon Report") || !strings.Contains(string(data), "## Folders") {
		t.Errorf("unexpected markdown report:\n%s", data)
	}

	metricsData, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(metricsData), "webrecon_collector_runs_total") {
		t.Errorf("metrics file missing collector counters:\n%s", metricsData)
	}
}

func TestScanMultipleTargetsJSON(t *testing.T) {
	withRunner(t, &missingToolRunner{})
	server := newPageServer(t)

	out, err := executeScan(t, "", "--json", server.URL, "not a url")
	if err == nil {
		t.Fatal("expected error for the invalid second target")
	}
	if !strings.Contains(out, `"status": "partial"`) || !strings.Contains(out, `"status": "invalid_target"`) {
		t.Errorf("expected one report per target:\n%s", out)
	}
}
