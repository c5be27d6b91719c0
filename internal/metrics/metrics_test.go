package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveCollector(t *testing.T) {
	before := testutil.ToFloat64(collectorRunsTotal.WithLabelValues("subdomains", "failed"))

	ObserveCollector("subdomains", "failed", 20*time.Millisecond)
	ObserveCollector("subdomains", "failed", 0)

	after := testutil.ToFloat64(collectorRunsTotal.WithLabelValues("subdomains", "failed"))
	if after-before != 2 {
		t.Errorf("collector runs increased by %v, want 2", after-before)
	}
}

func TestObserveTarget(t *testing.T) {
	before := testutil.ToFloat64(targetsTotal.WithLabelValues("false"))
	ObserveTarget(false)
	if got := testutil.ToFloat64(targetsTotal.WithLabelValues("false")) - before; got != 1 {
		t.Errorf("invalid targets increased by %v, want 1", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	ObserveCollector("metadata", "success", 10*time.Millisecond)

	path := filepath.Join(t.TempDir(), "webrecon.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read metrics file: %v", err)
	}
	if !strings.Contains(string(data), `webrecon_collector_runs_total{collector="metadata",state="success"}`) {
		t.Errorf("metrics file missing collector series:\n%s", data)
	}
}
