package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	// Save original args
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	tests := []struct {
		name         string
		setup        func(t *testing.T, tmpDir string) []string
		expectedExit int
	}{
		{
			name: "Success with valid workspace",
			setup: func(t *testing.T, tmpDir string) []string {
				libDir := filepath.Join(tmpDir, "libA")
				require.NoError(t, os.Mkdir(libDir, 0o755))
				require.NoError(t, os.WriteFile(filepath.Join(libDir, "project.properties"),
					[]byte("library=true\n"), 0o600))

				manifest := filepath.Join(tmpDir, "libref.yaml")
				require.NoError(t, os.WriteFile(manifest,
					[]byte("projects:\n  - libA\n"), 0o600))
				return []string{"libref", "status", "-w", manifest}
			},
			expectedExit: 0,
		},
		{
			name: "Error with missing manifest",
			setup: func(t *testing.T, tmpDir string) []string {
				return []string{"libref", "status", "-w", filepath.Join(tmpDir, "libref.yaml")}
			},
			expectedExit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			os.Args = tt.setup(t, tmpDir)

			exit := run()
			assert.Equal(t, tt.expectedExit, exit)
		})
	}
}
