package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"webrecon/internal/model"
)

// MarkdownWriter renders the report as GitHub-flavored Markdown.
type MarkdownWriter struct {
	out io.Writer
}

func NewMarkdownWriter(out io.Writer) *MarkdownWriter {
	return &MarkdownWriter{out: out}
}

func (w *MarkdownWriter) Write(r *model.ReconResult) error {
	md := markdown.NewMarkdown(w.out)

	md.H1("Recon Report")
	md.PlainText("")

	httpStatus := "-"
	if r.HTTPStatus != 0 {
		httpStatus = strconv.Itoa(r.HTTPStatus)
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Target", "`" + r.Target.URL + "`"},
			{"Domain", valueOrDash(r.Target.Domain)},
			{"Run ID", r.RunID},
			{"HTTP Status", httpStatus},
		},
	})
	md.PlainText("")

	md.H2("Collectors")
	md.PlainText("")
	rows := make([][]string, 0, 4)
	for _, s := range r.Sections() {
		rows = append(rows, []string{s.Name, string(s.Status.State), valueOrDash(s.Status.Reason)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Collector", "State", "Reason"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writeMetadata(md, r)
	writeMarkdownList(md, "Phone Numbers", r.PhoneStatus, r.Phones)
	writeMarkdownList(md, "Subdomains", r.SubdomainStatus, r.Subdomains)
	writeMarkdownList(md, "Folders", r.FolderStatus, r.Folders)

	return md.Build()
}

func (w *MarkdownWriter) writeMetadata(md *markdown.Markdown, r *model.ReconResult) {
	md.H2("Metadata")
	md.PlainText("")

	if r.MetadataStatus.State != model.StateSuccess || r.Metadata == nil {
		md.PlainText(statusLine(r.MetadataStatus))
		md.PlainText("")
		return
	}

	page := r.Metadata
	md.Table(markdown.TableSet{
		Header: []string{"Field", "Value"},
		Rows: [][]string{
			{"Title", optional(page.Title)},
			{"Description", optional(page.Description)},
			{"Keywords", optional(page.Keywords)},
		},
	})
	md.PlainText("")

	for _, level := range model.HeadingLevels {
		writeMarkdownItems(md, "Headings "+strings.ToUpper(level), page.Headings[level])
	}
	writeMarkdownItems(md, "Paragraphs", page.Paragraphs)

	links := make([]string, len(page.Links))
	for i, l := range page.Links {
		links[i] = fmt.Sprintf("%s (`%s`)", l.Text, l.Href)
	}
	writeMarkdownItems(md, "Links", links)

	images := make([]string, len(page.Images))
	for i, img := range page.Images {
		images[i] = fmt.Sprintf("%s (`%s`)", img.Alt, img.Src)
	}
	writeMarkdownItems(md, "Images", images)
}

func writeMarkdownItems(md *markdown.Markdown, title string, items []string) {
	md.H3(title)
	md.PlainText("")
	if len(items) == 0 {
		md.PlainText(noneFound)
	} else {
		md.BulletList(items...)
	}
	md.PlainText("")
}

func writeMarkdownList(md *markdown.Markdown, title string, status model.CollectorStatus, items []string) {
	md.H2(title)
	md.PlainText("")
	switch {
	case status.State != model.StateSuccess:
		md.PlainText(statusLine(status))
	case len(items) == 0:
		md.PlainText(noneFound)
	default:
		md.BulletList(items...)
	}
	md.PlainText("")
}

func statusLine(status model.CollectorStatus) string {
	return "**" + string(status.State) + "**: " + status.Reason
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
