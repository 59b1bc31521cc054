package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsCmd_Use(t *testing.T) {
	assert.Equal(t, "settings", settingsCmd.Use)
}

func TestSettingsShowCmd_PrintsDefaults(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "[Retrieval]")
	assert.Contains(t, buf.String(), "Chunk size:    1000")
	assert.Contains(t, buf.String(), "Top K:         6")
	assert.Contains(t, buf.String(), "Config file:")
}

func TestSettingsSetCmd_PersistsValue(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "set", "top_k", "12"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Set top_k = 12")
	assert.Equal(t, 12, settingsStore.Retrieval().TopK)
}

func TestSettingsSetCmd_RejectsInvalidValues(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown key", []string{"settings", "set", "no_such_key", "1"}},
		{"negative top_k", []string{"settings", "set", "top_k", "-1"}},
		{"bad strictness", []string{"settings", "set", "strictness", "loose"}},
		{"bad depth", []string{"settings", "set", "answer_depth", "verbose"}},
		{"bad provider", []string{"settings", "set", "embedding_provider", "openai"}},
		{"bad temperature", []string{"settings", "set", "temperature", "hot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			rootCmd.SetOut(buf)
			rootCmd.SetErr(buf)
			rootCmd.SetArgs(tt.args)
			defer func() {
				rootCmd.SetArgs(nil)
			}()

			assert.Error(t, rootCmd.Execute())
		})
	}
}

func TestSettingsSetCmd_ValidStrictness(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"settings", "set", "strictness", "creative"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "creative", settingsStore.Settings().Strictness)
}
