package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"devlogscan/pkg/scanerr"
	"devlogscan/pkg/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestExpandPlainFile(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "out.log")
	require.NoError(t, os.WriteFile(f, []byte("x"), 0o644))

	files, err := Expand(f)
	require.NoError(t, err)
	assert.Equal(t, []string{f}, files)
}

func TestExpandGlob(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.log", "b.log", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	files, err := Expand(filepath.Join(dir, "*.log"))
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestExpandDirectoryTriesCommonGlobs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "result.xml"), []byte("<x/>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o644))

	files, err := Expand(dir + string(os.PathSeparator))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "result.xml"), files[0])
}

// A directory named without a trailing separator matches no expansion
// step: it is not a plain file, not a glob (no metacharacters), and not
// a directory request (no trailing separator). It must fail NotFound so
// the engine falls back to treating the string as inline content, rather
// than expanding to the directory path itself and silently reading zero
// events out of it.
func TestExpandDirectoryWithoutTrailingSeparatorIsNotFound(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "result.xml"), []byte("<x/>"), 0o644))

	_, err := Expand(dir)
	require.Error(t, err)
	assert.True(t, scanerr.IsIO(err))
}

func TestExpandNotFound(t *testing.T) {
	_, err := Expand("/definitely/does/not/exist/anywhere")
	require.Error(t, err)
	assert.True(t, scanerr.IsIO(err))
}

func TestProcessMultiSkipsUnreadableFilesAndStampsLogFile(t *testing.T) {
	dir := t.TempDir()
	ok := filepath.Join(dir, "ok.log")
	require.NoError(t, os.WriteFile(ok, []byte("content"), 0o644))
	missing := filepath.Join(dir, "missing.log")

	events, err := ProcessMulti([]string{missing, ok}, false, func(file, content string) ([]types.ValidationEvent, error) {
		return []types.ValidationEvent{{Message: content}}, nil
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, ok, events[0].LogFile)
}

func TestProcessMultiRespectsIgnoreErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.log")
	require.NoError(t, os.WriteFile(bad, []byte("content"), 0o644))

	decode := func(file, content string) ([]types.ValidationEvent, error) {
		return nil, scanerr.Decoder("test", "boom")
	}

	_, err := ProcessMulti([]string{bad}, false, decode)
	assert.Error(t, err)

	events, err := ProcessMulti([]string{bad}, true, decode)
	require.NoError(t, err)
	assert.Empty(t, events)
}
