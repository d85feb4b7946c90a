package bootstrap

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Xnn511/kiwa/internal/filter"
	"github.com/Xnn511/kiwa/internal/platform/config"
)

func defaultConfig(t *testing.T, overrides map[string]any) config.Config {
	t.Helper()

	cfg, err := config.Load(context.Background(), config.WithoutSystemEnv(), config.WithOverrides(overrides))
	require.NoError(t, err)
	return cfg
}

func TestOpenEmbeddedContentIsComplete(t *testing.T) {
	t.Parallel()

	c, err := Open(defaultConfig(t, nil))
	require.NoError(t, err)

	report := c.Check()
	require.True(t, report.OK(), "unknown=%v missing=%v", report.UnknownTags, report.Missing)
	require.Equal(t, []string{"en", "it"}, c.Bundle.Supported())
	require.NotEmpty(t, c.Engine.Query(filter.State{}, "en"))

	_, err = fs.Stat(c.Templates, "layout.tmpl")
	require.NoError(t, err)
	_, err = fs.Stat(c.Static, "css/site.css")
	require.NoError(t, err)
}

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestOpenDirectoryReportsProblems(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "catalog/menu.yaml", "- name: SOUP\n  description: SOUP_DESC\n  category: STARTERS\n  tags: [HOT, GHOST]\n  price: 4\n")
	writeFile(t, dir, "catalog/tags.yaml", "- id: 1\n  name: HOT\n  category: TASTE\n")
	writeFile(t, dir, "locales/en.yaml", "SOUP: Soup\nSOUP_DESC: Warm\nSTARTERS: Starters\nHOT: Hot\nTASTE: Taste\n")
	writeFile(t, dir, "locales/it.yaml", "SOUP: Zuppa\n")

	c, err := Open(defaultConfig(t, map[string]any{"content.dir": dir}))
	require.NoError(t, err)

	report := c.Check()
	require.False(t, report.OK())
	require.Equal(t, map[string][]string{"SOUP": {"GHOST"}}, report.UnknownTags)
	require.Equal(t, map[string][]string{"it": {"HOT", "SOUP_DESC", "STARTERS", "TASTE"}}, report.Missing)

	// templates and static assets fall back to the embedded tree
	_, err = fs.Stat(c.Templates, "menu.tmpl")
	require.NoError(t, err)
}

func TestOpenErrors(t *testing.T) {
	t.Parallel()

	_, err := Open(defaultConfig(t, map[string]any{"content.dir": filepath.Join(t.TempDir(), "missing")}))
	require.ErrorContains(t, err, "open content dir")

	dir := t.TempDir()
	writeFile(t, dir, "catalog/menu.yaml", "- name: SOUP\n  price: -1\n")
	writeFile(t, dir, "catalog/tags.yaml", "[]\n")
	_, err = Open(defaultConfig(t, map[string]any{"content.dir": dir}))
	require.Error(t, err)
}
