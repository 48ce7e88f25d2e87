package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildizm/lrview/internal/emoji"
	"github.com/yildizm/lrview/internal/result"
	"github.com/yildizm/lrview/internal/result/resulttest"
	"github.com/yildizm/lrview/internal/session"
	"github.com/yildizm/lrview/internal/ui/theme"
)

// fakeService serves body for every parse request and 200 on /health
func fakeService(t *testing.T, status int, body []byte) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}

// execute runs the root command with args and returns what it printed
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() {
		emoji.SetEmojiDisabled(false)
		theme.SetColorDisabled(false)
		globalConfig = nil
	})

	cmd := NewRootCommand("1.2.3", "abc123", "2026-01-01")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeJSONOutput(t *testing.T) {
	server := fakeService(t, http.StatusOK, resulttest.ConflictResponse())

	out, err := execute(t, "analyze", "--example", "--no-tui", "-o", "json", "--endpoint", server.URL)
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, true, report["success"])

	stats, ok := report["statistics"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), stats["conflicts"])
	assert.Equal(t, false, stats["is_lr1"])
}

func TestAnalyzeGrammarFile(t *testing.T) {
	server := fakeService(t, http.StatusOK, resulttest.ExpressionResponse())

	path := filepath.Join(t.TempDir(), "expr.grammar")
	require.NoError(t, os.WriteFile(path, []byte(resulttest.ExpressionGrammar+"\n"), 0o600))

	out, err := execute(t, "analyze", path, "-i", resulttest.ExpressionInput,
		"--no-tui", "-o", "markdown", "--no-emoji", "--endpoint", server.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "# LR(1) Analysis Report")
	assert.Contains(t, out, "**accepted**")
}

func TestAnalyzeOutputFile(t *testing.T) {
	server := fakeService(t, http.StatusOK, resulttest.ExpressionResponse())
	target := filepath.Join(t.TempDir(), "report.csv")

	out, err := execute(t, "analyze", "--example", "--no-tui", "-o", "csv",
		"--output-file", target, "--endpoint", server.URL)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "State,Section,Symbol,Value,Category,Conflict"))
}

func TestAnalyzeServiceError(t *testing.T) {
	server := fakeService(t, http.StatusUnprocessableEntity, []byte(`{"detail":"bad grammar"}`))

	_, err := execute(t, "analyze", "--example", "--no-tui", "-o", "json", "--endpoint", server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad grammar")
}

func TestAnalyzeMissingInputIsValidationError(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	t.Cleanup(server.Close)

	_, err := execute(t, "analyze", "--grammar", "S -> a", "--no-tui", "-o", "json", "--endpoint", server.URL)
	require.Error(t, err)
	assert.True(t, session.IsValidationError(err))
	assert.Zero(t, calls, "validation failures never reach the service")
}

func TestResolveInputs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.txt")
	require.NoError(t, os.WriteFile(path, []byte("S -> a\r\n"), 0o600))

	tests := []struct {
		name        string
		args        []string
		grammar     string
		input       string
		example     bool
		wantGrammar string
		wantInput   string
	}{
		{name: "flags", grammar: "S -> b", input: "b", wantGrammar: "S -> b", wantInput: "b"},
		{name: "file wins over flag", args: []string{path}, grammar: "S -> b", input: "a", wantGrammar: "S -> a", wantInput: "a"},
		{name: "example fills both", example: true, wantGrammar: exampleGrammar, wantInput: exampleInput},
		{name: "example keeps given input", example: true, input: "id", wantGrammar: exampleGrammar, wantInput: "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, i, err := resolveInputs(tt.args, tt.grammar, tt.input, tt.example)
			require.NoError(t, err)
			assert.Equal(t, tt.wantGrammar, g)
			assert.Equal(t, tt.wantInput, i)
		})
	}

	_, _, err := resolveInputs([]string{filepath.Join(t.TempDir(), "missing")}, "", "", false)
	assert.Error(t, err)
}

func TestParseDiagramChoice(t *testing.T) {
	got, err := parseDiagramChoice("DFA")
	require.NoError(t, err)
	assert.Equal(t, []string{"dfa"}, got)

	got, err = parseDiagramChoice("")
	require.NoError(t, err)
	assert.Equal(t, []string{"nfa", "dfa"}, got)

	_, err = parseDiagramChoice("lalr")
	assert.Error(t, err)
}

func TestExportDiagrams(t *testing.T) {
	res, err := result.DecodeBytes(resulttest.ExpressionResponse())
	require.NoError(t, err)

	dir := t.TempDir()
	paths, err := exportDiagrams(res, []string{"nfa", "dfa"}, dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "AFN.png"), paths[0])
	assert.Equal(t, filepath.Join(dir, "AFD.png"), paths[1])

	want, err := res.Diagrams.DFA.Bytes()
	require.NoError(t, err)
	got, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExportDiagramsMissing(t *testing.T) {
	res, err := result.DecodeBytes(resulttest.ConflictResponse())
	require.NoError(t, err)

	paths, err := exportDiagrams(res, []string{"nfa", "dfa"}, t.TempDir())
	assert.Empty(t, paths)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NFA/DFA")
}

func TestExportCommand(t *testing.T) {
	server := fakeService(t, http.StatusOK, resulttest.ExpressionResponse())
	dir := t.TempDir()

	out, err := execute(t, "export", "--example", "--diagram", "dfa", "--dir", dir, "--no-emoji", "--endpoint", server.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "[SAVE] Saved "+filepath.Join(dir, "AFD.png"))
	assert.FileExists(t, filepath.Join(dir, "AFD.png"))
	assert.NoFileExists(t, filepath.Join(dir, "AFN.png"))
}

func TestSummaryLine(t *testing.T) {
	emoji.SetEmojiDisabled(true)
	defer emoji.SetEmojiDisabled(false)
	at := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

	expr, err := result.DecodeBytes(resulttest.ExpressionResponse())
	require.NoError(t, err)
	assert.Equal(t, "15:04:05 [OK] LR(1) · 12 DFA states · 0 conflicts · input accepted", summaryLine(at, expr, nil))

	conflict, err := result.DecodeBytes(resulttest.ConflictResponse())
	require.NoError(t, err)
	assert.Equal(t, "15:04:05 [CNF] not LR(1) · 8 DFA states · 1 conflicts", summaryLine(at, conflict, nil))

	failed, err := result.DecodeBytes(resulttest.FailedResponse())
	require.NoError(t, err)
	assert.Equal(t, "15:04:05 [ERR] gramática inválida", summaryLine(at, failed, nil))

	assert.Equal(t, "15:04:05 [ERR] boom", summaryLine(at, nil, errors.New("boom")))
}

func TestUseColor(t *testing.T) {
	assert.False(t, useColor("always", true, nil))
	assert.True(t, useColor("always", false, nil))
	assert.False(t, useColor("never", false, nil))
	assert.False(t, useColor("auto", false, nil))
}

func TestHealthCommand(t *testing.T) {
	server := fakeService(t, http.StatusOK, nil)

	out, err := execute(t, "health", "--no-emoji", "--endpoint", server.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "is healthy")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "lrview 1.2.3 (abc123) built on 2026-01-01")
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lrview.yaml")

	out, err := execute(t, "config", "init", "--minimal", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.FileExists(t, path)

	_, err = execute(t, "config", "init", "--output", path)
	assert.Error(t, err, "init refuses to overwrite without --force")

	out, err = execute(t, "--config", path, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
}
