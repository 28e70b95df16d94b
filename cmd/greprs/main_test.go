package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePoem(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "poem.txt")
	body := "I'm nobody! Who are you?\nAre you nobody, too?\nThen there's a pair of us - don't tell!\nTo tell your name the livelong day\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestRun_Success(t *testing.T) {
	t.Parallel()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	code := run(stdout, stderr, []string{"greprs", "nobody", writePoem(t)}, nil)

	require.Equal(t, exitOK, code)
	assert.Equal(t, "I'm nobody! Who are you?\nAre you nobody, too?\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRun_CaseInsensitiveEnv(t *testing.T) {
	t.Parallel()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	code := run(stdout, stderr, []string{"greprs", "to", writePoem(t)}, []string{"CASE_INSENSITIVE="})

	require.Equal(t, exitOK, code)
	assert.Equal(t, "Are you nobody, too?\nTo tell your name the livelong day\n", stdout.String())
}

func TestRun_MissingFilename(t *testing.T) {
	t.Parallel()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	code := run(stdout, stderr, []string{"greprs", "nobody"}, nil)

	require.Equal(t, exitUsage, code)
	assert.Empty(t, stdout.String())
	assert.Equal(t, "problem parsing arguments: missing filename\n", stderr.String())
}

func TestRun_MissingSearch(t *testing.T) {
	t.Parallel()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	code := run(stdout, stderr, []string{"greprs"}, nil)

	require.Equal(t, exitUsage, code)
	assert.Contains(t, stderr.String(), "missing search string")
}

func TestRun_MissingFile(t *testing.T) {
	t.Parallel()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	path := filepath.Join(t.TempDir(), "nope.txt")
	code := run(stdout, stderr, []string{"greprs", "x", path}, nil)

	require.Equal(t, exitRun, code)
	assert.Empty(t, stdout.String())
	assert.Equal(t, "application error: open "+path+": no such file or directory\n", stderr.String())
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	code := run(stdout, stderr, []string{"greprs", "-help"}, nil)

	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout.String(), "Usage:")
	assert.Empty(t, stderr.String())
}

func TestRun_VerboseLogsToStderr(t *testing.T) {
	t.Parallel()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	code := run(stdout, stderr, []string{"greprs", "-verbose", "nobody", writePoem(t)}, nil)

	require.Equal(t, exitOK, code)
	assert.Contains(t, stderr.String(), "search finished")
	assert.NotContains(t, stdout.String(), "search finished")
}

func TestRun_UnknownFlagKeepsStdoutClean(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "flags.txt")
	require.NoError(t, os.WriteFile(path, []byte("a -x b\nplain\n"), 0600))

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	code := run(stdout, stderr, []string{"greprs", "-x", path}, nil)

	require.Equal(t, exitUsage, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "flag provided but not defined: -x")
}

func TestRun_DashDashSearchTerm(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "flags.txt")
	require.NoError(t, os.WriteFile(path, []byte("a -x b\nplain\n"), 0600))

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	code := run(stdout, stderr, []string{"greprs", "--", "-x", path}, nil)

	require.Equal(t, exitOK, code)
	assert.Equal(t, "a -x b\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRun_EmptyFilename(t *testing.T) {
	t.Parallel()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	code := run(stdout, stderr, []string{"greprs", "x", ""}, nil)

	require.Equal(t, exitUsage, code)
	assert.Empty(t, stdout.String())
	assert.Equal(t, "problem parsing arguments: missing filename\n", stderr.String())
}
