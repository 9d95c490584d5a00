// Package output writes the aggregated context document and its side files.
package output

import (
	"fmt"
	"os"
	"path/filepath"

	"ctxpack/internal/types"
)

// Reserved artifact names. Files with these names are never packed.
const (
	// ArtifactFileName is the reserved name of the aggregated context document.
	ArtifactFileName = "codebase_context.md"
	// PromptFileName is the reserved name of the instruction prompt side file.
	PromptFileName = "prompt.txt"
)

// InstructionPrompt is the message written to the prompt side file and placed
// on the clipboard for pasting into the chat.
const InstructionPrompt = `I have attached a file ` + "`" + ArtifactFileName + "`" + ` which contains the full source code and directory structure of my project.

**Instruction:**
1.  **Analyze** the provided codebase to understand its architecture, tech stack, and key components.
2.  **Act** as a Senior Software Architect and Coding Assistant for this specific project.
3.  **Wait** for my next command. I will ask you to implement features, fix bugs, or explain code. When I do, provide concrete code examples and file modifications that fit the existing style and structure.

Please confirm you have ingested the context and are ready.`

// artifactPreamble opens the context document exactly once before any file section.
const artifactPreamble = `# Codebase Context
I am providing my codebase context below in this flattened markdown file.

## Project Structure
(See file paths below)

---
`

// fileSectionFormat frames one packed file: a heading with the root-relative
// path followed by the raw content inside a fenced block.
const fileSectionFormat = "\n## File: `%s`\n\n```\n%s\n```\n"

// ArtifactWriter appends packed file sections to the context document. The
// document is built incrementally; sections are flushed to disk as they
// arrive rather than buffered in memory.
type ArtifactWriter struct {
	fileHandle *os.File
}

// NewArtifactWriter creates or truncates the context document at
// artifactPath and writes the preamble.
//
// #nosec G304
func NewArtifactWriter(artifactPath string) (*ArtifactWriter, error) {
	fileHandle, createError := os.Create(artifactPath)
	if createError != nil {
		return nil, fmt.Errorf("creating artifact %s: %w", artifactPath, createError)
	}
	if _, preambleError := fileHandle.WriteString(artifactPreamble); preambleError != nil {
		_ = fileHandle.Close()
		return nil, fmt.Errorf("writing artifact preamble: %w", preambleError)
	}
	return &ArtifactWriter{fileHandle: fileHandle}, nil
}

// WriteFileSection appends one packed file entry to the document.
func (writer *ArtifactWriter) WriteFileSection(entry types.PackedFileEntry) error {
	if _, sectionError := fmt.Fprintf(writer.fileHandle, fileSectionFormat, entry.RelativePath, entry.Content); sectionError != nil {
		return fmt.Errorf("writing section for %s: %w", entry.RelativePath, sectionError)
	}
	return nil
}

// Close flushes and closes the underlying artifact file.
func (writer *ArtifactWriter) Close() error {
	return writer.fileHandle.Close()
}

// WritePromptFile writes the instruction prompt to its reserved name inside
// directoryPath and returns the written path.
func WritePromptFile(directoryPath string) (string, error) {
	promptPath := filepath.Join(directoryPath, PromptFileName)
	if writeError := os.WriteFile(promptPath, []byte(InstructionPrompt), 0o644); writeError != nil {
		return "", fmt.Errorf("writing prompt file %s: %w", promptPath, writeError)
	}
	return promptPath, nil
}
