// Package utils contains general helper functions used across the ctxpack tool.
package utils

import (
	"path/filepath"
	"strings"
)

// Well-known file names referenced across the project.
const (
	// GitIgnoreFileName is the name of the Git ignore file read at the traversal root.
	GitIgnoreFileName = ".gitignore"
	// EnvironmentFileName is the name of the dotenv file loaded before environment lookups.
	EnvironmentFileName = ".env"
)

// LoggerInitializationFailedMessageFormat reports a failure to construct the application logger.
const LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"

// ApplicationExecutionFailedMessage reports a fatal application error.
const ApplicationExecutionFailedMessage = "application execution failed"

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// RelativePathOrSelf calculates the forward-slash relative path from root to fullPath.
// Returns the cleaned fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, absoluteRootError := filepath.Abs(root)
	if absoluteRootError != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relativePathError := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relativePathError != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}

// DecodeText converts raw file bytes into a string, dropping byte sequences
// that do not form valid UTF-8. Decoding never fails; malformed input
// degrades to the valid subset of the content.
func DecodeText(data []byte) string {
	content := string(data)
	return strings.ToValidUTF8(content, "")
}
