package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestCheckEmbeddedContent(t *testing.T) {
	out, err := runCLI(t, "check")
	require.NoError(t, err)
	require.Equal(t, "content ok\n", out)
}

func TestCheckReportsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kiwa.yaml")
	writeFile(t, path, "site:\n  currency: NOPE\nlogging:\n  format: xml\n")

	out, err := runCLI(t, "check", "--config", path)
	require.Error(t, err)
	require.Contains(t, out, "invalid config fields: logging.format, site.currency")
}

func TestCheckReportsContentProblems(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "catalog", "menu.yaml"), "- name: SOUP\n  description: SOUP_DESC\n  category: STARTERS\n  tags: [GHOST]\n  price: 4\n")
	writeFile(t, filepath.Join(dir, "catalog", "tags.yaml"), "[]\n")
	writeFile(t, filepath.Join(dir, "locales", "en.yaml"), "SOUP: Soup\nSOUP_DESC: Hot soup\nSTARTERS: Starters\n")
	writeFile(t, filepath.Join(dir, "locales", "it.yaml"), "SOUP: Zuppa\n")
	cfgPath := filepath.Join(dir, "kiwa.yaml")
	writeFile(t, cfgPath, "content:\n  dir: "+dir+"\n")

	out, err := runCLI(t, "check", "-c", cfgPath)
	require.ErrorIs(t, err, errContentIncomplete)
	require.Contains(t, out, "item SOUP: unknown tags GHOST\n")
	require.Contains(t, out, "locale it: missing SOUP_DESC, STARTERS\n")
}
