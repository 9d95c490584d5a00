package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ctxpack/internal/types"
)

// preambleHeading marks the start of the artifact preamble.
const preambleHeading = "# Codebase Context"

// TestArtifactWriterPreambleAndSections verifies that the preamble appears
// exactly once at the top and each section carries the documented framing.
func TestArtifactWriterPreambleAndSections(testingHandle *testing.T) {
	artifactPath := filepath.Join(testingHandle.TempDir(), ArtifactFileName)

	artifactWriter, createError := NewArtifactWriter(artifactPath)
	if createError != nil {
		testingHandle.Fatalf("NewArtifactWriter failed: %v", createError)
	}
	firstEntry := types.PackedFileEntry{RelativePath: "src/main.go", Content: "package main\n"}
	secondEntry := types.PackedFileEntry{RelativePath: "readme.md", Content: "# readme\n"}
	if writeError := artifactWriter.WriteFileSection(firstEntry); writeError != nil {
		testingHandle.Fatalf("WriteFileSection failed: %v", writeError)
	}
	if writeError := artifactWriter.WriteFileSection(secondEntry); writeError != nil {
		testingHandle.Fatalf("WriteFileSection failed: %v", writeError)
	}
	if closeError := artifactWriter.Close(); closeError != nil {
		testingHandle.Fatalf("Close failed: %v", closeError)
	}

	artifactBytes, readError := os.ReadFile(artifactPath)
	if readError != nil {
		testingHandle.Fatalf("failed to read artifact: %v", readError)
	}
	artifactContent := string(artifactBytes)

	if !strings.HasPrefix(artifactContent, preambleHeading) {
		testingHandle.Fatalf("artifact does not start with the preamble")
	}
	if strings.Count(artifactContent, preambleHeading) != 1 {
		testingHandle.Fatalf("expected the preamble exactly once")
	}
	expectedFirstSection := "\n## File: `src/main.go`\n\n```\npackage main\n\n```\n"
	if !strings.Contains(artifactContent, expectedFirstSection) {
		testingHandle.Fatalf("missing expected section framing for src/main.go")
	}
	if strings.Index(artifactContent, "src/main.go") > strings.Index(artifactContent, "readme.md") {
		testingHandle.Fatalf("sections are out of arrival order")
	}
}

// TestArtifactWriterTruncatesExisting verifies that a stale artifact is
// replaced wholesale on the next run.
func TestArtifactWriterTruncatesExisting(testingHandle *testing.T) {
	artifactPath := filepath.Join(testingHandle.TempDir(), ArtifactFileName)
	if writeError := os.WriteFile(artifactPath, []byte("stale content"), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to seed stale artifact: %v", writeError)
	}

	artifactWriter, createError := NewArtifactWriter(artifactPath)
	if createError != nil {
		testingHandle.Fatalf("NewArtifactWriter failed: %v", createError)
	}
	if closeError := artifactWriter.Close(); closeError != nil {
		testingHandle.Fatalf("Close failed: %v", closeError)
	}

	artifactBytes, readError := os.ReadFile(artifactPath)
	if readError != nil {
		testingHandle.Fatalf("failed to read artifact: %v", readError)
	}
	if strings.Contains(string(artifactBytes), "stale content") {
		testingHandle.Fatalf("expected the stale artifact to be truncated")
	}
}

// TestWritePromptFile verifies that the prompt side file carries the
// instruction message at its reserved name.
func TestWritePromptFile(testingHandle *testing.T) {
	targetDirectory := testingHandle.TempDir()

	promptPath, writeError := WritePromptFile(targetDirectory)
	if writeError != nil {
		testingHandle.Fatalf("WritePromptFile failed: %v", writeError)
	}
	if filepath.Base(promptPath) != PromptFileName {
		testingHandle.Fatalf("unexpected prompt file name: %s", promptPath)
	}

	promptBytes, readError := os.ReadFile(promptPath)
	if readError != nil {
		testingHandle.Fatalf("failed to read prompt file: %v", readError)
	}
	if string(promptBytes) != InstructionPrompt {
		testingHandle.Fatalf("prompt file content does not match the instruction message")
	}
}
