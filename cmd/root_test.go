package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/micromd/internal/config"
	"github.com/zjrosen/micromd/internal/presentation"
)

// execute runs the root command with a fresh config file in a temp dir.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(path))
	return executeWith(t, path, stdin, args...)
}

func executeWith(t *testing.T, configPath, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(resetFlags)

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags() {
	cfgFile, debugFlag, logFile = "", false, ""
	colorFlag = string(presentation.ColorAuto)
	eventsJSON, htmlDangerous = false, false
	checkStrict, checkJSON = false, false
	configForce = false
}

func TestHTML(t *testing.T) {
	out, err := execute(t, "[a](b \"c\")\n", "html", "-")
	require.NoError(t, err)
	require.Equal(t, "<p><a href=\"b\" title=\"c\">a</a></p>\n", out)
}

func TestHTML_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("![x](y.png)"), 0o600))

	out, err := execute(t, "", "html", path)
	require.NoError(t, err)
	require.Equal(t, `<p><img src="y.png" alt="x" /></p>`, out)
}

func TestHTML_MissingFile(t *testing.T) {
	_, err := execute(t, "", "html", filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "reading input")
}

func TestHTML_DangerousProtocol(t *testing.T) {
	out, err := execute(t, "[a](javascript:x)", "html", "-")
	require.NoError(t, err)
	require.Equal(t, `<p><a href="">a</a></p>`, out)

	out, err = execute(t, "[a](javascript:x)", "html", "--allow-dangerous-protocol", "-")
	require.NoError(t, err)
	require.Equal(t, `<p><a href="javascript:x">a</a></p>`, out)
}

func TestHTML_ConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(path))
	require.NoError(t, config.Set(path, "parse.constructs.label_start_link", "false"))

	out, err := executeWith(t, path, "[a](b)", "html", "-")
	require.NoError(t, err)
	require.Equal(t, "<p>[a](b)</p>", out)
}

func TestHTML_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("compile:\n  line_ending: cr\n"), 0o600))

	_, err := executeWith(t, path, "a", "html", "-")
	require.Error(t, err)
	require.True(t, errors.Is(err, config.ErrInvalidOption))
}

func TestEvents_JSON(t *testing.T) {
	out, err := execute(t, "a", "events", "--json", "-")
	require.NoError(t, err)

	var events []presentation.EventDTO
	require.NoError(t, json.Unmarshal([]byte(out), &events))
	require.Len(t, events, 6)
	require.Equal(t, "Content", events[0].Name)
	require.Equal(t, "exit", events[5].Kind)
}

func TestEvents_Text(t *testing.T) {
	out, err := execute(t, "a", "events", "-")
	require.NoError(t, err)
	require.Contains(t, out, "+ Content 1:1 (0)")
	require.Contains(t, out, "    + Data 1:1 (0)")
}

func TestCheck(t *testing.T) {
	out, err := execute(t, "[a]\n", "check", "-")
	require.NoError(t, err)
	require.Equal(t, "<stdin>:1:1: `[` does not start a link\n"+
		"  [a]\n"+
		"  ^\n"+
		"<stdin>:1:3: `]` does not end a link or image\n"+
		"  [a]\n"+
		"    ^\n", out)

	_, err = execute(t, "[a]\n", "check", "--strict", "-")
	require.True(t, errors.Is(err, errLiteralBrackets))

	_, err = execute(t, "[a]\n\n[a]: /b\n", "check", "--strict", "-")
	require.NoError(t, err)
}

func TestColorFlag(t *testing.T) {
	out, err := execute(t, "a", "events", "--color", "always", "-")
	require.NoError(t, err)
	require.Contains(t, out, "\x1b[")

	_, err = execute(t, "a", "events", "--color", "sometimes", "-")
	require.Error(t, err)
}

func TestCheck_JSONEmpty(t *testing.T) {
	out, err := execute(t, "plain\n", "check", "--json", "-")
	require.NoError(t, err)
	require.Equal(t, "[]\n", out)
}

func TestCompare(t *testing.T) {
	out, err := execute(t, "[a](b)\n\n[c]: /d\n", "compare", "-")
	require.NoError(t, err)
	require.Empty(t, out)

	out, err = execute(t, "*a*\n", "compare", "-")
	require.True(t, errors.Is(err, errOutputsDiffer))
	require.Equal(t, "-<p><em>a</em></p>\n+<p>*a*</p>\n", out)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, err := executeWith(t, path, "", "config", "init")
	require.NoError(t, err)
	require.Equal(t, "wrote "+path+"\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, config.DefaultConfigTemplate(), string(data))

	_, err = executeWith(t, path, "", "config", "init")
	require.Error(t, err)
	require.Contains(t, err.Error(), "already exists")

	_, err = executeWith(t, path, "", "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigSetAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	_, err := executeWith(t, path, "", "config", "set", "compile.line_ending", "crlf")
	require.NoError(t, err)

	out, err := executeWith(t, path, "", "config", "show")
	require.NoError(t, err)
	require.Contains(t, out, "line_ending: crlf")

	_, err = executeWith(t, path, "", "config", "set", "compile.line_ending", "cr")
	require.Error(t, err)
}

func TestConfigShow_InvalidConfigStillShown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("parse:\n  label_size_max: 0\n"), 0o600))

	out, err := executeWith(t, path, "", "config", "show")
	require.NoError(t, err)
	require.Contains(t, out, "label_size_max: 0")
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("MICROMD_COMPILE_LINE_ENDING", "crlf")
	out, err := execute(t, "a\n\nb\n", "html", "-")
	require.NoError(t, err)
	require.Equal(t, "<p>a</p>\r\n<p>b</p>\r\n", out)
}

func TestNormalizeHTML(t *testing.T) {
	require.Equal(t, "", normalizeHTML("\n"))
	require.Equal(t, "<p>a</p>\n", normalizeHTML("<p>a</p>"))
	require.Equal(t, "<p>a</p>\n<p>b</p>\n", normalizeHTML("<p>a</p>\r\n<p>b</p>\r\n\n"))
}
