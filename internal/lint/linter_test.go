package lint_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/softpare/weblint/internal/lint"
	"github.com/softpare/weblint/internal/lint/rules"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestLinter(t *testing.T) *lint.Linter {
	t.Helper()
	return lint.NewLinter(zaptest.NewLogger(t), rules.All()...)
}

func TestLintSource(t *testing.T) {
	linter := newTestLinter(t)

	diags, err := linter.LintSource(context.Background(), "app.js", []byte("window.fetch();\neval(code);\n"))
	require.NoError(t, err)
	require.Len(t, diags, 2)

	// Diagnostics arrive in document order.
	assert.Equal(t, "no-window-prefix", diags[0].Code)
	assert.Equal(t, 1, diags[0].Location.Line)
	assert.Equal(t, "no-eval", diags[1].Code)
	assert.Equal(t, 2, diags[1].Location.Line)
}

func TestLintSourceCleanFile(t *testing.T) {
	linter := newTestLinter(t)

	diags, err := linter.LintSource(context.Background(), "app.js", []byte("self.fetch();\n"))
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestLintSourceSyntaxErrorStillLints(t *testing.T) {
	linter := newTestLinter(t)

	// The broken trailing statement must not prevent diagnostics on the
	// well-formed part of the file.
	diags, err := linter.LintSource(context.Background(), "app.js", []byte("window.fetch();\nfunction {{{\n"))
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, "no-window-prefix", diags[0].Code)
}

func TestLintFileMissing(t *testing.T) {
	linter := newTestLinter(t)

	_, err := linter.LintFile(context.Background(), filepath.Join(t.TempDir(), "nope.js"))
	require.Error(t, err)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunnerRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.js", "window.fetch();\n")
	writeFile(t, dir, "b.mjs", "self.fetch();\n")
	writeFile(t, dir, "sub/c.js", "window.setTimeout(fn, 1);\n")
	writeFile(t, dir, "skip.txt", "window.fetch();\n")
	writeFile(t, dir, "node_modules/dep/index.js", "window.fetch();\n")

	logger := zaptest.NewLogger(t)
	runner, err := lint.NewRunner(logger, lint.NewLinter(logger, rules.All()...), 4, nil)
	require.NoError(t, err)

	results, err := runner.Run(context.Background(), []string{dir})
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Results are sorted by path.
	assert.Equal(t, filepath.Join(dir, "a.js"), results[0].File)
	assert.Len(t, results[0].Diagnostics, 1)
	assert.Equal(t, filepath.Join(dir, "b.mjs"), results[1].File)
	assert.Empty(t, results[1].Diagnostics)
	assert.Equal(t, filepath.Join(dir, "sub", "c.js"), results[2].File)
	assert.Len(t, results[2].Diagnostics, 1)
}

func TestRunnerExcludes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.js", "window.fetch();\n")
	writeFile(t, dir, "a.test.js", "window.fetch();\n")

	logger := zaptest.NewLogger(t)
	runner, err := lint.NewRunner(logger, lint.NewLinter(logger, rules.All()...), 2, []string{"*.test.js"})
	require.NoError(t, err)

	results, err := runner.Run(context.Background(), []string{dir})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, filepath.Join(dir, "a.js"), results[0].File)
}

func TestRunnerInvalidExcludePattern(t *testing.T) {
	logger := zaptest.NewLogger(t)
	_, err := lint.NewRunner(logger, lint.NewLinter(logger), 1, []string{"[bad"})
	require.Error(t, err)
}

func TestRunnerMissingPath(t *testing.T) {
	logger := zaptest.NewLogger(t)
	runner, err := lint.NewRunner(logger, lint.NewLinter(logger, rules.All()...), 1, nil)
	require.NoError(t, err)

	_, err = runner.Run(context.Background(), []string{filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)
}

// TestRunnerConcurrency simulates a high-throughput run over many files to
// verify that linting is safe under parallelism (run with -race). The shared
// deny-list catalogue is the only cross-file state.
func TestRunnerConcurrency(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	const fileCount = 60
	wantProblems := 0
	for i := 0; i < fileCount; i++ {
		if i%2 == 0 {
			writeFile(t, dir, fmt.Sprintf("vuln_%02d.js", i), "window.fetch();\nwindow.setTimeout(fn, 1);\n")
			wantProblems += 2
		} else {
			writeFile(t, dir, fmt.Sprintf("clean_%02d.js", i), "const window = 42; window.fetch();\n")
		}
	}

	logger := zaptest.NewLogger(t)
	runner, err := lint.NewRunner(logger, lint.NewLinter(logger, rules.All()...), 8, nil)
	require.NoError(t, err)

	results, err := runner.Run(context.Background(), []string{dir})
	require.NoError(t, err)
	require.Len(t, results, fileCount)

	got := 0
	for _, res := range results {
		got += len(res.Diagnostics)
	}
	assert.Equal(t, wantProblems, got)
}
