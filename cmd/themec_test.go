package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLayout = `
layout:
  window:
    fields: [background, text]
`

const testStyle = `
@chatterino {
	author: "leon";
	icon-set: "dark";
}

:root {
	--bg: #123456;
}

window {
	background: var(--bg);
	text: #ffffff;
}
`

func TestCodeCommand(t *testing.T) {
	dir := t.TempDir()
	layoutPath := filepath.Join(dir, "layout.yml")
	stylePath := filepath.Join(dir, "Dark.css")
	require.NoError(t, os.WriteFile(layoutPath, []byte(testLayout), 0o644))
	require.NoError(t, os.WriteFile(stylePath, []byte(testStyle), 0o644))

	rootCmd.SetArgs([]string{"code", "-l", layoutPath, "-o", dir, "-t", stylePath})
	require.NoError(t, rootCmd.Execute())

	cpp, err := os.ReadFile(filepath.Join(dir, "GeneratedTheme.cpp"))
	require.NoError(t, err)
	assert.Contains(t, string(cpp), "int getDataIndex(const QLatin1String &name)")
	assert.Contains(t, string(cpp), "this->colors_[0] = {18, 52, 86, 255};")

	hpp, err := os.ReadFile(filepath.Join(dir, "GeneratedTheme.hpp"))
	require.NoError(t, err)
	assert.Contains(t, string(hpp), "class GeneratedTheme {")
	assert.Contains(t, string(hpp), "QColor colors_[2];")

	_, err = os.Stat(filepath.Join(dir, "GeneratedTheme.timestamp"))
	assert.NoError(t, err)
}

func TestThemeCommand(t *testing.T) {
	dir := t.TempDir()
	stylePath := filepath.Join(dir, "Dark.css")
	require.NoError(t, os.WriteFile(stylePath, []byte(testStyle), 0o644))

	rootCmd.SetArgs([]string{"theme", "-o", dir, stylePath})
	require.NoError(t, rootCmd.Execute())

	out, err := os.ReadFile(filepath.Join(dir, "Dark.c2theme"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "@meta\nauthor=leon\niconset=dark\n@colors\n")
	assert.Contains(t, string(out), "window.background=#ff123456")
	assert.Contains(t, string(out), "window.text=#ffffffff")
}

func TestCodeCommandMissingStyle(t *testing.T) {
	dir := t.TempDir()
	layoutPath := filepath.Join(dir, "layout.yml")
	require.NoError(t, os.WriteFile(layoutPath, []byte(testLayout), 0o644))

	rootCmd.SetArgs([]string{"code", "-l", layoutPath, "-o", dir, filepath.Join(dir, "missing.css")})
	require.Error(t, rootCmd.Execute())
}
