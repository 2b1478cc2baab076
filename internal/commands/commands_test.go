package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/mt940convert/internal/config"
	"github.com/cleared-dev/mt940convert/internal/convert"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func copyStatement(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile("../../testdata/statement.sta")
	require.NoError(t, err)
	path := filepath.Join(dir, "statement.sta")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestConvert_WritesEachFormat(t *testing.T) {
	dir := t.TempDir()
	in := copyStatement(t, dir)
	outDir := filepath.Join(dir, "out")

	for _, tag := range convert.Tags() {
		out, err := runCLI(t, "convert", in, "--to", tag, "--out", outDir)
		require.NoError(t, err, out)
		assert.Contains(t, out, "3 transactions")
	}

	for _, name := range []string{"statement.xlsx", "statement.xml", "statement.ofx"} {
		info, err := os.Stat(filepath.Join(outDir, name))
		require.NoError(t, err, "%s should exist", name)
		assert.NotZero(t, info.Size())
	}
}

func TestConvert_SwiftParser(t *testing.T) {
	dir := t.TempDir()
	in := copyStatement(t, dir)

	_, err := runCLI(t, "convert", in, "--to", "xml", "-o", dir, "--parser", "swift")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "statement.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<description>Salary January ACME Ltd</description>")
	assert.Contains(t, string(data), "<amount>-45</amount>")
}

func TestConvert_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()

	// The input does not exist: the format is rejected before it is read.
	_, err := runCLI(t, "convert", filepath.Join(dir, "missing.sta"), "--to", "pdf", "-o", dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, convert.ErrUnsupportedOutputType)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestConvert_RequiresTo(t *testing.T) {
	_, err := runCLI(t, "convert", "x.sta")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "to")
}

func TestConvert_UnknownParser(t *testing.T) {
	dir := t.TempDir()
	in := copyStatement(t, dir)

	_, err := runCLI(t, "convert", in, "--to", "xml", "--parser", "regex")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown parser")
}

func TestConvert_MissingInput(t *testing.T) {
	_, err := runCLI(t, "convert", filepath.Join(t.TempDir(), "nope.sta"), "--to", "xml")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteFile_BlocksTraversal(t *testing.T) {
	dir := t.TempDir()
	_, err := writeFile(dir, "../escape.xml", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path traversal")
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512 B", humanSize(512))
	assert.Equal(t, "1.5 KB", humanSize(1536))
	assert.Equal(t, "2.0 MB", humanSize(2<<20))
}

func TestFormats(t *testing.T) {
	out, err := runCLI(t, "formats")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "excel")
	assert.Contains(t, lines[0], ".xlsx")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", config.DefaultFile)

	out, err := runCLI(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = runCLI(t, "config", "init", path)
	require.Error(t, err, "existing file is not overwritten without --force")

	_, err = runCLI(t, "config", "init", path, "--force")
	require.NoError(t, err)
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "commit:")
}
