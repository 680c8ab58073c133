// Package reporting turns collected diagnostics into user-facing output.
package reporting

import (
	"fmt"
	"io"
	"os"

	"github.com/softpare/weblint/internal/lint"
)

// Reporter writes lint results to an output in a specific format.
type Reporter interface {
	// Write processes one file's results. Files arrive in path order.
	Write(result *lint.FileResult) error
	// Close finalizes the report and releases any underlying resources.
	Close() error
}

// nopWriteCloser wraps an io.Writer with a no-op Close.
type nopWriteCloser struct {
	io.Writer
}

func (nwc *nopWriteCloser) Close() error { return nil }

// New creates a reporter for the given format writing to outputPath. An
// empty path or "stdout" writes to standard output. The reporter takes
// ownership of the underlying writer.
func New(format, outputPath, toolVersion string, rules []lint.Rule) (Reporter, error) {
	var writer io.WriteCloser
	isStdout := outputPath == "" || outputPath == "stdout"

	if isStdout {
		writer = &nopWriteCloser{os.Stdout}
	} else {
		f, err := os.Create(outputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file %s: %w", outputPath, err)
		}
		writer = f
	}

	switch format {
	case "sarif":
		return NewSARIFReporter(writer, toolVersion, rules), nil
	case "json":
		return NewJSONReporter(writer), nil
	case "text":
		return NewTextReporter(writer), nil
	default:
		if !isStdout {
			writer.Close()
		}
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
