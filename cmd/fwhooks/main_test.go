package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgavlin/fwhooks/assets"
	"github.com/pgavlin/fwhooks/hookerr"
)

const boardManifest = `{
  // embedded web UI
  "build": {
    "mcu": "esp32",
    "embed_files": "webui/index.htm.gzip webui/webui.js.gzip webui/robots.txt",
  },
  "name": "HB-RF-ETH",
}
`

func newProject(t *testing.T) string {
	t.Setenv("FWHOOKS_LOG_LEVEL", "")
	t.Setenv("FWHOOKS_LOG_FORMAT", "")

	root := t.TempDir()
	files := map[string]string{
		"version.txt":           "1.2.3\n",
		"fwhooks.yaml":          "board_file: boards/hb-rf-eth.json\nlog:\n  level: warn\n",
		"boards/hb-rf-eth.json": boardManifest,
		"webui/index.htm":       "<html><body>HB-RF-ETH</body></html>",
		"webui/webui.js":        "new Vue({el: '#app'});",
		"webui/robots.txt":      "User-agent: *\n",
		"version-override.txt":  "2.0\n",
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func execute(t *testing.T, args ...string) (string, error) {
	var stdout bytes.Buffer
	command := configureCLI()
	command.SetArgs(args)
	command.SetOut(&stdout)
	command.SetErr(&bytes.Buffer{})
	err := command.Execute()
	return stdout.String(), err
}

func TestProgName(t *testing.T) {
	root := newProject(t)

	out, err := execute(t, "progname", "--project-dir", root)
	require.NoError(t, err)
	assert.Equal(t, "firmware_1_2_3\n", out)

	out, err = execute(t, "progname", "-p", root, "--assign", "-f", filepath.Join(root, "version-override.txt"))
	require.NoError(t, err)
	assert.Equal(t, "PROGNAME=firmware_2_0\n", out)
}

func TestProgNameMissingVersionFile(t *testing.T) {
	root := newProject(t)
	require.NoError(t, os.Remove(filepath.Join(root, "version.txt")))

	_, err := execute(t, "progname", "-p", root)
	assert.True(t, errors.Is(err, hookerr.ErrMissingResource))
}

func TestPrebuild(t *testing.T) {
	root := newProject(t)
	manifest := filepath.Join(root, "build", "assets.csv")
	require.NoError(t, os.MkdirAll(filepath.Dir(manifest), 0o755))

	out, err := execute(t, "prebuild", "-p", root, "--manifest", manifest)
	require.NoError(t, err)
	assert.Equal(t, "firmware_1_2_3\n", out)

	for _, name := range []string{"index.htm", "webui.js"} {
		require.NoError(t, assets.VerifyFile(filepath.Join(root, "webui", name), filepath.Join(root, "webui", name+assets.GzipSuffix)))
	}
	_, err = os.Stat(filepath.Join(root, "webui", "robots.txt.gzip"))
	assert.True(t, os.IsNotExist(err))

	f, err := os.Open(manifest)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "webui/index.htm.gzip", records[1][0])
	assert.Equal(t, "webui/webui.js.gzip", records[2][0])

	_, err = execute(t, "verify", "-p", root)
	assert.NoError(t, err)
}

func TestGzipExtraEntryAndDefines(t *testing.T) {
	root := newProject(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "extra"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "extra", "about.htm"), []byte("about"), 0o644))

	out, err := execute(t, "gzip", "-p", root, "-D", "EXTRA=extra", "--embed", "$EXTRA/about.htm.gzip", "--level", "9", "--manifest", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "entry,source,target")
	assert.Contains(t, out, "$EXTRA/about.htm.gzip")

	require.NoError(t, assets.VerifyFile(filepath.Join(root, "extra", "about.htm"), filepath.Join(root, "extra", "about.htm.gzip")))
}

func TestGzipAbortsOnMissingSource(t *testing.T) {
	root := newProject(t)
	require.NoError(t, os.Remove(filepath.Join(root, "webui", "index.htm")))

	_, err := execute(t, "gzip", "-p", root)
	assert.True(t, errors.Is(err, hookerr.ErrMissingResource))

	_, err = os.Stat(filepath.Join(root, "webui", "webui.js.gzip"))
	assert.True(t, os.IsNotExist(err))
}

func TestVerifyDetectsStaleOutput(t *testing.T) {
	root := newProject(t)

	_, err := execute(t, "gzip", "-p", root)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "webui", "webui.js"), []byte("changed"), 0o644))

	_, err = execute(t, "verify", "-p", root)
	assert.True(t, errors.Is(err, assets.ErrMismatch))
}

func TestSymbols(t *testing.T) {
	root := newProject(t)

	out, err := execute(t, "symbols", "-p", root)
	require.NoError(t, err)
	assert.Contains(t, out, "_binary_index_htm_gzip_start")
	assert.Contains(t, out, "_binary_webui_js_gzip_end")
	assert.Contains(t, out, "_binary_robots_txt_start")
}

func TestMalformedDefine(t *testing.T) {
	root := newProject(t)

	_, err := execute(t, "progname", "-p", root, "-D", "1BAD")
	assert.Error(t, err)
}

func TestUnexpectedArguments(t *testing.T) {
	root := newProject(t)

	_, err := execute(t, "gzip", "-p", root, "extra")
	assert.EqualError(t, err, "expected no arguments")
}
