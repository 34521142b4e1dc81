package launcher

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

// run executes the CLI and returns what it printed to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	err := app.Run(append([]string{"primlist"}, args...))
	return out.String(), err
}

func TestEncodeDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.plst")

	_, err := run(t, "encode", "--kind", "int", "--format", "cser", "--compress", "zstd", "--out", path, "100", "200", "300")
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.NotZero(t, info.Size())

	out, err := run(t, "decode", path)
	require.NoError(t, err)
	require.Equal(t, "IntArrayList [ 100, 200, 300 ]\n", out)
}

func TestEncodeHexInspect(t *testing.T) {
	hexOut, err := run(t, "encode", "--compress", "lz4", "100", "200", "300")
	require.NoError(t, err)
	hexOut = strings.TrimSpace(hexOut)
	require.True(t, strings.HasPrefix(hexOut, "0x"))

	out, err := run(t, "inspect", hexOut)
	require.NoError(t, err)
	require.Contains(t, out, "kind:        LongArrayList\n")
	require.Contains(t, out, "encoding:    parcel\n")
	require.Contains(t, out, "length:      3\n")
	require.Contains(t, out, "capacity:    16\n")
	require.Contains(t, out, "hash:        132391\n")
	require.Contains(t, out, "digest:      0x")

	out, err = run(t, "decode", hexOut)
	require.NoError(t, err)
	require.Equal(t, "LongArrayList [ 100, 200, 300 ]\n", out)
}

func TestEncodeNegativeAndHexValues(t *testing.T) {
	hexOut, err := run(t, "encode", "--kind", "int", "--format", "rlp", "--", "-5", "0x10", "7")
	require.NoError(t, err)

	out, err := run(t, "decode", strings.TrimSpace(hexOut))
	require.NoError(t, err)
	require.Equal(t, "IntArrayList [ -5, 16, 7 ]\n", out)
}

func TestEncodeEmpty(t *testing.T) {
	hexOut, err := run(t, "encode", "--kind", "int")
	require.NoError(t, err)

	out, err := run(t, "decode", strings.TrimSpace(hexOut))
	require.NoError(t, err)
	require.Equal(t, "IntArrayList [ ]\n", out)
}

func TestEncodeErrors(t *testing.T) {
	_, err := run(t, "encode", "--kind", "int", "99999999999")
	require.Error(t, err)

	_, err = run(t, "encode", "abc")
	require.Error(t, err)

	_, err = run(t, "encode", "--kind", "short", "1")
	require.Error(t, err)

	_, err = run(t, "encode", "--format", "json", "1")
	require.Error(t, err)
}

func TestDecodeErrors(t *testing.T) {
	_, err := run(t, "decode")
	require.ErrorIs(t, err, errNoInput)

	_, err = run(t, "decode", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	_, err = run(t, "inspect", "0x00112233")
	require.Error(t, err)
}

func TestConfigFileDrivesEncode(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "primlist.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("encode:\n  kind: int\n  format: cser\n"), 0o644))

	hexOut, err := run(t, "--config", cfgPath, "encode", "1", "2")
	require.NoError(t, err)

	out, err := run(t, "inspect", strings.TrimSpace(hexOut))
	require.NoError(t, err)
	require.Contains(t, out, "kind:        IntArrayList\n")
	require.Contains(t, out, "encoding:    cser\n")

	// flags beat the file
	hexOut, err = run(t, "--config", cfgPath, "encode", "--kind", "long", "1", "2")
	require.NoError(t, err)

	out, err = run(t, "inspect", strings.TrimSpace(hexOut))
	require.NoError(t, err)
	require.Contains(t, out, "kind:        LongArrayList\n")
	require.Contains(t, out, "encoding:    cser\n")
}

func TestFailedCommandIsLogged(t *testing.T) {
	hook := new(logtest.Hook)
	l := &launcher{hooks: []logrus.Hook{hook}}
	app := l.app()
	app.Writer = io.Discard
	app.ErrWriter = io.Discard

	err := app.Run([]string{"primlist", "inspect", "0x00112233"})
	require.Error(t, err)

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	require.Equal(t, logrus.ErrorLevel, entry.Level)
	require.Equal(t, "inspect", entry.Data["command"])
	require.Equal(t, err, entry.Data[logrus.ErrorKey])

	hook.Reset()
	app = l.app()
	app.Writer = io.Discard
	app.ErrWriter = io.Discard
	require.NoError(t, app.Run([]string{"primlist", "encode", "1", "2"}))
	require.Empty(t, hook.AllEntries())
}
