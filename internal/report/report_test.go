package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"webrecon/internal/model"
)

func strPtr(s string) *string { return &s }

func fullResult() *model.ReconResult {
	page := model.NewPageMetadata()
	page.Title = strPtr("Acme")
	page.Keywords = strPtr("tools, hardware")
	page.Headings["h1"] = []string{"Welcome"}
	page.Paragraphs = []string{"Call (415) 555-2671"}
	page.Links = []model.Link{{Text: "Contact", Href: "/contact"}}
	page.Images = []model.Image{{Alt: "Logo", Src: "/logo.png"}}

	return &model.ReconResult{
		RunID:           "run-1",
		Target:          model.Target{URL: "https://example.com", Domain: "example.com"},
		HTTPStatus:      200,
		Metadata:        page,
		Phones:          []string{"(415) 555-2671"},
		Subdomains:      []string{},
		Folders:         []string{},
		MetadataStatus:  model.Success(time.Second),
		PhoneStatus:     model.Success(0),
		SubdomainStatus: model.Success(time.Second),
		FolderStatus:    model.Failed("directory scan with dirsearch: tool not found: dirsearch", time.Millisecond),
	}
}

func invalidResult() *model.ReconResult {
	r := &model.ReconResult{RunID: "run-2", Target: model.Target{URL: "not a url"}}
	r.SkipAll("invalid target")
	return r
}

func assertOrdered(t *testing.T, out string, parts ...string) {
	t.Helper()
	pos := 0
	for _, p := range parts {
		i := strings.Index(out[pos:], p)
		if i < 0 {
			t.Fatalf("output missing %q after offset %d:\n%s", p, pos, out)
		}
		pos += i + len(p)
	}
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextWriter(&buf).Write(fullResult()); err != nil {
		t.Fatalf("Write() unexpected error: %v", err)
	}
	out := buf.String()

	assertOrdered(t, out,
		"Target: https://example.com",
		"Website Metadata:",
		"Title: Acme",
		"Description: none found",
		"Keywords: tools, hardware",
		"H1:\n  - Welcome",
		"H2: none found",
		"Paragraphs:\n- Call (415) 555-2671",
		"Links:\n- Contact (/contact)",
		"Images:\n- Logo (/logo.png)",
		"Phone Numbers:\n(415) 555-2671",
		"Subdomains:\nnone found",
		"Folders:\nfailed: directory scan with dirsearch: tool not found: dirsearch",
	)
}

func TestTextWriterInvalidTarget(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextWriter(&buf).Write(invalidResult()); err != nil {
		t.Fatalf("Write() unexpected error: %v", err)
	}
	out := buf.String()

	assertOrdered(t, out,
		"Website Metadata:\nskipped: invalid target",
		"Phone Numbers:\nskipped: invalid target",
		"Subdomains:\nskipped: invalid target",
		"Folders:\nskipped: invalid target",
	)
	if strings.Contains(out, "Domain:") {
		t.Error("invalid target should not print a domain")
	}
}

func TestMarkdownWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewMarkdownWriter(&buf).Write(fullResult()); err != nil {
		t.Fatalf("Write() unexpected error: %v", err)
	}
	out := buf.String()

	assertOrdered(t, out,
		"# Recon Report",
		"example.com",
		"## Metadata",
		"Acme",
		"### Headings H1",
		"Welcome",
		"### Headings H2",
		"none found",
		"## Phone Numbers",
		"(415) 555-2671",
		"## Subdomains",
		"none found",
		"## Folders",
		"**failed**: directory scan with dirsearch",
	)
}

func TestJSONWriter(t *testing.T) {
	tests := []struct {
		name       string
		result     *model.ReconResult
		wantStatus string
	}{
		{name: "partial", result: fullResult(), wantStatus: "partial"},
		{name: "invalid", result: invalidResult(), wantStatus: "invalid_target"},
		{
			name: "complete",
			result: func() *model.ReconResult {
				r := fullResult()
				r.FolderStatus = model.Success(0)
				return r
			}(),
			wantStatus: "complete",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewJSONWriter(&buf).Write(tt.result); err != nil {
				t.Fatalf("Write() unexpected error: %v", err)
			}

			var envelope struct {
				Status string            `json:"status"`
				Data   model.ReconResult `json:"data"`
			}
			if err := json.Unmarshal(buf.Bytes(), &envelope); err != nil {
				t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
			}
			if envelope.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", envelope.Status, tt.wantStatus)
			}
			if envelope.Data.RunID != tt.result.RunID {
				t.Errorf("run id = %q, want %q", envelope.Data.RunID, tt.result.RunID)
			}
		})
	}
}

func TestNewWriter(t *testing.T) {
	for _, format := range []string{"", FormatText, FormatMarkdown, FormatJSON} {
		if _, err := NewWriter(format, &bytes.Buffer{}); err != nil {
			t.Errorf("NewWriter(%q) unexpected error: %v", format, err)
		}
	}
	if _, err := NewWriter("pdf", &bytes.Buffer{}); err == nil {
		t.Error("NewWriter(pdf) expected error")
	}
}
