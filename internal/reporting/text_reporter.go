package reporting

import (
	"fmt"
	"io"

	"github.com/softpare/weblint/internal/lint"
)

// TextReporter writes human-readable diagnostics as they arrive, one block
// per finding, followed by a final summary on Close.
type TextReporter struct {
	writer   io.WriteCloser
	files    int
	problems int
}

func NewTextReporter(writer io.WriteCloser) *TextReporter {
	return &TextReporter{writer: writer}
}

func (r *TextReporter) Write(result *lint.FileResult) error {
	r.files++
	for _, diag := range result.Diagnostics {
		r.problems++
		if _, err := fmt.Fprintf(r.writer, "%s: (%s) %s\n", diag.Location, diag.Code, diag.Message); err != nil {
			return err
		}
		if diag.Location.Snippet != "" {
			if _, err := fmt.Fprintf(r.writer, "    %s\n", diag.Location.Snippet); err != nil {
				return err
			}
		}
		if diag.Hint != "" {
			if _, err := fmt.Fprintf(r.writer, "    hint: %s\n", diag.Hint); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *TextReporter) Close() error {
	var err error
	if r.problems == 0 {
		_, err = fmt.Fprintf(r.writer, "Checked %d files, no problems found\n", r.files)
	} else {
		_, err = fmt.Fprintf(r.writer, "Found %d problems in %d files\n", r.problems, r.files)
	}
	if err != nil {
		r.writer.Close()
		return err
	}
	return r.writer.Close()
}
