package report

import (
	"io"

	"webrecon/internal/model"
	"webrecon/pkg/response"
)

// JSONWriter renders the result inside the response envelope.
type JSONWriter struct {
	out io.Writer
}

func NewJSONWriter(out io.Writer) *JSONWriter {
	return &JSONWriter{out: out}
}

func (w *JSONWriter) Write(r *model.ReconResult) error {
	if r.Target.Domain == "" {
		return response.Error(w.out, response.StatusInvalidTarget, r, "invalid target")
	}
	for _, s := range r.Sections() {
		if s.Status.State != model.StateSuccess {
			return response.JSON(w.out, response.StatusPartial, r, "")
		}
	}
	return response.Success(w.out, r, "")
}
