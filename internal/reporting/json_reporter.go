package reporting

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/softpare/weblint/internal/lint"
)

var jsonEnc = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONReporter accumulates results and writes a single JSON document on
// Close: an array of per-file results in path order.
type JSONReporter struct {
	writer  io.WriteCloser
	results []*lint.FileResult
}

func NewJSONReporter(writer io.WriteCloser) *JSONReporter {
	return &JSONReporter{writer: writer, results: []*lint.FileResult{}}
}

func (r *JSONReporter) Write(result *lint.FileResult) error {
	r.results = append(r.results, result)
	return nil
}

func (r *JSONReporter) Close() error {
	enc := jsonEnc.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.results); err != nil {
		r.writer.Close()
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}
	return r.writer.Close()
}
