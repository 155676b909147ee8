package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplog(t *testing.T) {
	t.Run("messages reach the writer verbatim", func(t *testing.T) {
		var buf bytes.Buffer
		splog := NewSplogWithWriter(&buf)

		splog.Info("plain %s", "text")
		splog.Success("done")

		require.Contains(t, buf.String(), "plain text")
		require.Contains(t, buf.String(), "done")
	})

	t.Run("quiet drops console messages", func(t *testing.T) {
		var buf bytes.Buffer
		splog := NewSplogWithWriter(&buf)

		splog.SetQuiet(true)
		splog.Info("hidden")

		require.Empty(t, buf.String())
	})

	t.Run("debug messages need the DEBUG environment variable", func(t *testing.T) {
		t.Setenv("DEBUG", "")
		var buf bytes.Buffer
		splog := NewSplogWithWriter(&buf)
		splog.Debug("invisible")
		require.Empty(t, buf.String())

		t.Setenv("DEBUG", "1")
		splog = NewSplogWithWriter(&buf)
		splog.Debug("visible")
		require.Contains(t, buf.String(), "visible")
	})
}

func TestSplogFileLogging(t *testing.T) {
	t.Run("appends messages to the log file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "shipit.log")
		splog := NewSplogWithConfig(path)
		splog.SetQuiet(true)

		splog.Info("hello file")
		require.NoError(t, splog.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Contains(t, string(data), "hello file")
	})

	t.Run("quiet only silences the console", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "shipit.log")
		splog := NewSplogWithConfig(path)
		splog.SetQuiet(true)

		splog.Warn("still recorded")
		require.NoError(t, splog.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Contains(t, string(data), "still recorded")
	})
}

func TestLogFilePath(t *testing.T) {
	t.Run("honors the override", func(t *testing.T) {
		t.Setenv("SHIPIT_LOG_FILE", "/tmp/custom.log")
		require.Equal(t, "/tmp/custom.log", LogFilePath())
	})

	t.Run("defaults under the home directory", func(t *testing.T) {
		t.Setenv("SHIPIT_LOG_FILE", "")
		t.Setenv("HOME", "/home/someone")
		require.Equal(t, filepath.Join("/home/someone", ".shipit", "logs", "shipit.log"), LogFilePath())
	})
}
