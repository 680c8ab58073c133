package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/softpare/weblint/internal/lint"
	"github.com/softpare/weblint/internal/observability"
	"github.com/softpare/weblint/internal/reporting/sarif"
)

// Constants for tool identification in the SARIF report.
const (
	ToolName     = "weblint"
	ToolInfoURI  = "https://github.com/softpare/weblint"
	SARIFVersion = "2.1.0"
	SARIFSchema  = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
)

// SARIFReporter implements Reporter for the SARIF 2.1.0 format. Rule
// descriptors are registered up front from the linter's rule set, keyed by
// their stable codes; results reference them by ID. Thread safe.
type SARIFReporter struct {
	writer io.WriteCloser
	logger *zap.Logger

	mu  sync.Mutex
	log *sarif.Log
	run *sarif.Run
}

// NewSARIFReporter creates a reporter that accumulates results and writes
// the complete SARIF log on Close.
func NewSARIFReporter(writer io.WriteCloser, toolVersion string, rules []lint.Rule) *SARIFReporter {
	descriptors := make([]*sarif.ReportingDescriptor, 0, len(rules))
	for _, rule := range rules {
		code := rule.Code()
		summary := rule.Summary()
		descriptors = append(descriptors, &sarif.ReportingDescriptor{
			ID:               code,
			Name:             strPtr(code),
			ShortDescription: &sarif.MultiformatMessageString{Text: strPtr(summary)},
			Properties:       &sarif.PropertyBag{"tags": rule.Tags()},
		})
	}

	run := &sarif.Run{
		Tool: &sarif.Tool{
			Driver: &sarif.ToolComponent{
				Name:           ToolName,
				Version:        strPtr(toolVersion),
				InformationURI: strPtr(ToolInfoURI),
				Rules:          descriptors,
			},
		},
		Results: []*sarif.Result{},
	}

	return &SARIFReporter{
		writer: writer,
		logger: observability.GetLogger().Named("sarif_reporter"),
		log: &sarif.Log{
			Version: SARIFVersion,
			Schema:  SARIFSchema,
			Runs:    []*sarif.Run{run},
		},
		run: run,
	}
}

// Write appends one file's diagnostics to the pending run.
func (r *SARIFReporter) Write(result *lint.FileResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, diag := range result.Diagnostics {
		message := diag.Message
		if diag.Hint != "" {
			message = fmt.Sprintf("%s. Hint: %s", diag.Message, diag.Hint)
		}

		r.run.Results = append(r.run.Results, &sarif.Result{
			RuleID:  diag.Code,
			Level:   sarif.LevelWarning,
			Message: &sarif.Message{Text: strPtr(message)},
			Locations: []*sarif.Location{{
				PhysicalLocation: &sarif.PhysicalLocation{
					ArtifactLocation: &sarif.ArtifactLocation{URI: strPtr(result.File)},
					Region: &sarif.Region{
						StartLine: diag.Location.Line,
						// Diagnostics carry 0-indexed columns; SARIF wants 1-based.
						StartColumn: diag.Location.Column + 1,
					},
				},
			}},
		})
	}
	return nil
}

// Close serializes the accumulated log and closes the writer.
func (r *SARIFReporter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.log); err != nil {
		r.writer.Close()
		return fmt.Errorf("failed to encode SARIF log: %w", err)
	}

	r.logger.Debug("SARIF report written", zap.Int("results", len(r.run.Results)))
	return r.writer.Close()
}

func strPtr(s string) *string { return &s }
