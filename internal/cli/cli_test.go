package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDefaultsToHelp(t *testing.T) {
	parsed, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, CommandHelp, parsed.Command)
	require.True(t, parsed.ShowHelp)
}

func TestParseRunWithFlags(t *testing.T) {
	parsed, err := Parse([]string{"--config", "/tmp/settings.json", "--debug", "run"})
	require.NoError(t, err)
	require.Equal(t, CommandRun, parsed.Command)
	require.Equal(t, "/tmp/settings.json", parsed.ConfigPath)
	require.True(t, parsed.Debug)
	require.False(t, parsed.ShowHelp)
	require.Empty(t, parsed.Args)
}

func TestParseCommandCapturesSubArgs(t *testing.T) {
	parsed, err := Parse([]string{"settings", "set", "speech_recognition.language", "en-US"})
	require.NoError(t, err)
	require.Equal(t, CommandSettings, parsed.Command)
	require.Equal(t, []string{"set", "speech_recognition.language", "en-US"}, parsed.Args)
}

func TestParseVersionFlag(t *testing.T) {
	parsed, err := Parse([]string{"--version"})
	require.NoError(t, err)
	require.Equal(t, CommandVersion, parsed.Command)
	require.False(t, parsed.ShowHelp)
}

func TestParseConfigRequiresPath(t *testing.T) {
	_, err := Parse([]string{"--config"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "--config requires a path")
}

func TestParseRejectsUnknownFlag(t *testing.T) {
	_, err := Parse([]string{"--bogus"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown flag")
}

func TestParseRejectsUnknownCommand(t *testing.T) {
	_, err := Parse([]string{"dictate-now"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown command")
}

func TestHelpTextNamesEveryCommand(t *testing.T) {
	text := HelpText("dictation")
	for _, want := range []string{"run", "settings get", "settings set", "settings reset", "logs list", "logs purge", "doctor", "version", "help", "--config", "--debug"} {
		require.Contains(t, text, want)
	}
}
