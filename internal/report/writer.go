package report

import (
	"fmt"
	"io"

	"webrecon/internal/model"
)

const noneFound = "none found"

// Formats accepted by NewWriter.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Writer renders a finished ReconResult. Every writer emits the metadata,
// phone number, subdomain and folder sections in that order, including
// empty and failed ones.
type Writer interface {
	Write(result *model.ReconResult) error
}

func NewWriter(format string, out io.Writer) (Writer, error) {
	switch format {
	case FormatText, "":
		return NewTextWriter(out), nil
	case FormatMarkdown:
		return NewMarkdownWriter(out), nil
	case FormatJSON:
		return NewJSONWriter(out), nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

func optional(s *string) string {
	if s == nil || *s == "" {
		return noneFound
	}
	return *s
}
