package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWatchCmd_Use(t *testing.T) {
	assert.Equal(t, "watch [directory]", watchCmd.Use)
}

func TestWatchable(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"notes.txt", true},
		{"readme.md", true},
		{"README.MD", true},
		{"guide.markdown", true},
		{"photo.png", false},
		{"binary", false},
		{"archive.tar.gz", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, watchable(tt.path))
		})
	}
}

func TestWatchCmd_RejectsNonDirectory(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	path := writeTestFile(t, "file.txt", "not a directory")

	rootCmd.SetArgs([]string{"watch", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.ErrorContains(t, err, "not a directory")
}
