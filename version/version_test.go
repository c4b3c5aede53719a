package version

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgavlin/fwhooks/hookenv"
	"github.com/pgavlin/fwhooks/hookerr"
)

func TestProgName(t *testing.T) {
	cases := map[string]string{
		"1.2.3":        "firmware_1_2_3",
		"2":            "firmware_2",
		"1.0.0-rc.1":   "firmware_1_0_0-rc_1",
		"..":           "firmware___",
		"v1.2.3.4.5":   "firmware_v1_2_3_4_5",
		"no-dots-here": "firmware_no-dots-here",
	}
	for in, out := range cases {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, out, ProgName(in))
		})
	}
}

func TestRead(t *testing.T) {
	cases := []struct {
		name, in, out string
	}{
		{"single line", "1.2.3", "1.2.3"},
		{"trailing newline", "1.2.3\n", "1.2.3"},
		{"crlf", "1.2.3\r\n", "1.2.3"},
		{"later lines ignored", "1.2.3\nbuild 7\n", "1.2.3"},
		{"spaces kept", " 1.2 \n", " 1.2 "},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, err := Read(strings.NewReader(c.in))
			require.NoError(t, err)
			assert.Equal(t, c.out, v)
		})
	}
}

func TestReadEmpty(t *testing.T) {
	for _, in := range []string{"", "\n", "\r\n", "\n1.2.3\n"} {
		_, err := Read(strings.NewReader(in))
		assert.True(t, errors.Is(err, hookerr.ErrEmptyInput), "input %q", in)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), DefaultFile))
	assert.True(t, errors.Is(err, hookerr.ErrMissingResource))
}

func TestReadFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := ReadFile(path)
	assert.True(t, errors.Is(err, hookerr.ErrEmptyInput))
	assert.Contains(t, err.Error(), path)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("firmware_1_2_3"))
	assert.NoError(t, Validate("firmware_1_0-beta+exp"))

	for _, bad := range []string{"firmware_1/2", `firmware_1\2`, "firmware_a:b", "firmware_\t1", "firmware_*"} {
		assert.True(t, errors.Is(Validate(bad), hookerr.ErrMalformedInput), "name %q", bad)
	}
}

func TestApply(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("1.2.3\n"), 0o644))

	env := hookenv.New(dir, nil)
	name, err := Apply(env, path)
	require.NoError(t, err)
	assert.Equal(t, "firmware_1_2_3", name)
	assert.Equal(t, "firmware_1_2_3", env.ProgName())
}

func TestApplyRejectsUnsafeName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("1.2/3\n"), 0o644))

	env := hookenv.New(dir, nil)
	_, err := Apply(env, path)
	assert.True(t, errors.Is(err, hookerr.ErrMalformedInput))
	assert.Equal(t, "", env.ProgName())
}
