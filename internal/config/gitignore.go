// Package config loads gitignore patterns and application configuration.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ctxpack/internal/utils"
)

const commentLinePrefix = "#"

// LoadGitignorePatterns reads the .gitignore file at rootPath and returns its
// patterns in file order. Comment lines and blank lines are skipped. A
// missing file is not an error and yields no patterns; any other failure is
// returned so the caller can degrade to default rules with a warning.
//
// #nosec G304
func LoadGitignorePatterns(rootPath string) ([]string, error) {
	gitignoreFilePath := filepath.Join(rootPath, utils.GitIgnoreFileName)
	fileHandle, openFileError := os.Open(gitignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", gitignoreFilePath, openFileError)
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", gitignoreFilePath, closeError)
		}
	}()

	loadedPatterns := []string{}
	lineScanner := bufio.NewScanner(fileHandle)
	for lineScanner.Scan() {
		trimmedLine := strings.TrimSpace(lineScanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentLinePrefix) {
			continue
		}
		loadedPatterns = append(loadedPatterns, trimmedLine)
	}
	if scanError := lineScanner.Err(); scanError != nil {
		return nil, fmt.Errorf("scanning %s: %w", gitignoreFilePath, scanError)
	}
	return loadedPatterns, nil
}
