//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedScorecardPath holds the path to a shared scorecard binary built once for all tests.
	sharedScorecardPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getScorecardBinary returns the path to the scorecard binary, building it once if needed.
func getScorecardBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "scorecard-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		scorecardPath := filepath.Join(tempDir, "scorecard")
		buildCmd := exec.Command("go", "build", "-o", scorecardPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if err := buildCmd.Run(); err != nil {
			panic(fmt.Sprintf("failed to build scorecard: %v", err))
		}

		sharedScorecardPath = scorecardPath
	})

	return sharedScorecardPath
}

// runScorecard runs the binary from the integration directory and returns its stdout.
func runScorecard(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getScorecardBinary(), args...)
	output, err := cmd.Output()
	if err != nil {
		stderr := ""
		if ee, ok := err.(*exec.ExitError); ok {
			stderr = string(ee.Stderr)
		}
		t.Logf("Command failed: %s\nStdout: %s\nStderr: %s", cmd.String(), string(output), stderr)
	}
	return string(output), err
}
