package report

import (
	"fmt"
	"io"
	"strings"

	"webrecon/internal/model"
)

// TextWriter renders the plain terminal report.
type TextWriter struct {
	out io.Writer
}

func NewTextWriter(out io.Writer) *TextWriter {
	return &TextWriter{out: out}
}

func (w *TextWriter) Write(r *model.ReconResult) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Target: %s\n", r.Target.URL)
	if r.Target.Domain != "" {
		fmt.Fprintf(&b, "Domain: %s\n", r.Target.Domain)
	}
	fmt.Fprintf(&b, "Run ID: %s\n", r.RunID)

	b.WriteString("\nWebsite Metadata:\n")
	if r.MetadataStatus.State != model.StateSuccess || r.Metadata == nil {
		fmt.Fprintf(&b, "%s\n", r.MetadataStatus)
	} else {
		writeMetadata(&b, r.Metadata)
	}

	writeList(&b, "Phone Numbers", r.PhoneStatus, r.Phones)
	writeList(&b, "Subdomains", r.SubdomainStatus, r.Subdomains)
	writeList(&b, "Folders", r.FolderStatus, r.Folders)

	_, err := io.WriteString(w.out, b.String())
	return err
}

func writeMetadata(b *strings.Builder, md *model.PageMetadata) {
	fmt.Fprintf(b, "Title: %s\n", optional(md.Title))
	fmt.Fprintf(b, "Description: %s\n", optional(md.Description))
	fmt.Fprintf(b, "Keywords: %s\n", optional(md.Keywords))

	b.WriteString("Headers:\n")
	for _, level := range model.HeadingLevels {
		items := md.Headings[level]
		if len(items) == 0 {
			fmt.Fprintf(b, "  %s: %s\n", strings.ToUpper(level), noneFound)
			continue
		}
		fmt.Fprintf(b, "  %s:\n", strings.ToUpper(level))
		for _, item := range items {
			fmt.Fprintf(b, "  - %s\n", item)
		}
	}

	writeItems(b, "Paragraphs", md.Paragraphs)

	links := make([]string, len(md.Links))
	for i, l := range md.Links {
		links[i] = fmt.Sprintf("%s (%s)", l.Text, l.Href)
	}
	writeItems(b, "Links", links)

	images := make([]string, len(md.Images))
	for i, img := range md.Images {
		images[i] = fmt.Sprintf("%s (%s)", img.Alt, img.Src)
	}
	writeItems(b, "Images", images)
}

func writeItems(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		fmt.Fprintf(b, "%s: %s\n", label, noneFound)
		return
	}
	fmt.Fprintf(b, "%s:\n", label)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func writeList(b *strings.Builder, title string, status model.CollectorStatus, items []string) {
	fmt.Fprintf(b, "\n%s:\n", title)
	switch {
	case status.State != model.StateSuccess:
		fmt.Fprintf(b, "%s\n", status)
	case len(items) == 0:
		fmt.Fprintf(b, "%s\n", noneFound)
	default:
		for _, item := range items {
			fmt.Fprintf(b, "%s\n", item)
		}
	}
}
