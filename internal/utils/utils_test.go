package utils_test

import (
	"path/filepath"
	"reflect"
	"testing"

	"ctxpack/internal/utils"
)

// TestDeduplicatePatterns verifies order-preserving duplicate removal.
func TestDeduplicatePatterns(testingHandle *testing.T) {
	inputPatterns := []string{"*.log", "dist/", "*.log", "dist/", "node_modules"}
	expectedPatterns := []string{"*.log", "dist/", "node_modules"}

	deduplicated := utils.DeduplicatePatterns(inputPatterns)
	if !reflect.DeepEqual(deduplicated, expectedPatterns) {
		testingHandle.Fatalf("unexpected patterns: got %v want %v", deduplicated, expectedPatterns)
	}
}

// TestRelativePathOrSelf verifies relative path calculation against a root.
func TestRelativePathOrSelf(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	nestedPath := filepath.Join(rootDirectory, "pkg", "lib.go")

	if relativePath := utils.RelativePathOrSelf(nestedPath, rootDirectory); relativePath != "pkg/lib.go" {
		testingHandle.Fatalf("unexpected relative path: got %s want pkg/lib.go", relativePath)
	}
	if selfPath := utils.RelativePathOrSelf(rootDirectory, rootDirectory); selfPath != "." {
		testingHandle.Fatalf("expected '.' for the root itself, got %s", selfPath)
	}
}

// TestDecodeTextDropsInvalidSequences verifies best-effort decoding of
// malformed UTF-8 input.
func TestDecodeTextDropsInvalidSequences(testingHandle *testing.T) {
	malformedInput := append([]byte("ab\xfe"), []byte("ç")...)

	decodedContent := utils.DecodeText(malformedInput)
	if decodedContent != "abç" {
		testingHandle.Fatalf("unexpected decoded content: %q", decodedContent)
	}
}

// TestDecodeTextPassesValidContent verifies that valid input is unchanged.
func TestDecodeTextPassesValidContent(testingHandle *testing.T) {
	validInput := "package main\n\nfunc main() {}\n"

	if decodedContent := utils.DecodeText([]byte(validInput)); decodedContent != validInput {
		testingHandle.Fatalf("expected valid content to pass through unchanged")
	}
}
