package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"ctxpack/internal/utils"
)

// writeTestFile creates a file with the specified content, failing the test on error.
func writeTestFile(testingHandle *testing.T, filePath string, content string) {
	testingHandle.Helper()
	if writeError := os.WriteFile(filePath, []byte(content), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write %s: %v", filePath, writeError)
	}
}

// TestLoadGitignorePatternsSkipsCommentsAndBlanks verifies comment and blank
// line filtering while preserving pattern order.
func TestLoadGitignorePatternsSkipsCommentsAndBlanks(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	gitignoreContent := "# build artifacts\nout/\n\n*.tmp\n  \n# editors\n.idea/\n"
	writeTestFile(testingHandle, filepath.Join(rootDirectory, utils.GitIgnoreFileName), gitignoreContent)

	loadedPatterns, loadError := LoadGitignorePatterns(rootDirectory)
	if loadError != nil {
		testingHandle.Fatalf("LoadGitignorePatterns failed: %v", loadError)
	}

	expectedPatterns := []string{"out/", "*.tmp", ".idea/"}
	if !reflect.DeepEqual(loadedPatterns, expectedPatterns) {
		testingHandle.Fatalf("unexpected patterns: got %v want %v", loadedPatterns, expectedPatterns)
	}
}

// TestLoadGitignorePatternsMissingFile verifies that an absent .gitignore
// degrades to no patterns without an error.
func TestLoadGitignorePatternsMissingFile(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()

	loadedPatterns, loadError := LoadGitignorePatterns(rootDirectory)
	if loadError != nil {
		testingHandle.Fatalf("expected a missing .gitignore to load without error, got %v", loadError)
	}
	if loadedPatterns != nil {
		testingHandle.Fatalf("expected nil patterns for a missing .gitignore, got %v", loadedPatterns)
	}
}

// TestLoadGitignorePatternsTrimsWhitespace verifies that surrounding
// whitespace does not survive into loaded patterns.
func TestLoadGitignorePatternsTrimsWhitespace(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, utils.GitIgnoreFileName), "  vendor/  \n\t*.gen.go\t\n")

	loadedPatterns, loadError := LoadGitignorePatterns(rootDirectory)
	if loadError != nil {
		testingHandle.Fatalf("LoadGitignorePatterns failed: %v", loadError)
	}

	expectedPatterns := []string{"vendor/", "*.gen.go"}
	if !reflect.DeepEqual(loadedPatterns, expectedPatterns) {
		testingHandle.Fatalf("unexpected patterns: got %v want %v", loadedPatterns, expectedPatterns)
	}
}
