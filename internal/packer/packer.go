// Package packer walks a project tree and aggregates eligible file contents
// into the context artifact.
package packer

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"ctxpack/internal/ignore"
	"ctxpack/internal/tokenizer"
	"ctxpack/internal/types"
	"ctxpack/internal/utils"
)

const (
	errorRootInaccessibleFormat = "root path %s is not accessible: %w"
	errorRootNotDirectoryFormat = "root path %s is not a directory"
	warningAccessFormat         = "Warning: error accessing path %s: %v\n"
	warningReadFormat           = "  Skipped (Read Error): %s - %v\n"
	warningTokenCountFormat     = "Warning: failed to count tokens for %s: %v\n"
	packedFileFormat            = "  Packed: %s\n"
)

// SectionWriter receives packed file entries as traversal produces them.
type SectionWriter interface {
	WriteFileSection(entry types.PackedFileEntry) error
}

// Options configures one packing run. Rule set, allowlist, and reserved
// names are injected so the traversal carries no ambient state.
type Options struct {
	// RootPath is the traversal root; it must be an existing directory.
	RootPath string
	// RuleSet answers exclusion queries for directories and files.
	RuleSet *ignore.RuleSet
	// Allowlist answers extension eligibility for files.
	Allowlist *ExtensionAllowlist
	// ReservedNames are basenames never packed, such as the output artifact itself.
	ReservedNames []string
	// Artifact receives packed file sections incrementally.
	Artifact SectionWriter
	// TokenCounter, when non-nil, accumulates token totals per packed file.
	TokenCounter tokenizer.Counter
	// StatusWriter receives per-file pack confirmations; nil discards them.
	StatusWriter io.Writer
	// WarningWriter receives recoverable per-file failures; nil discards them.
	WarningWriter io.Writer
}

// Pack performs the traversal described by options and returns aggregate
// statistics. Individual file failures are reported and skipped; only an
// unusable root path or an artifact write failure aborts the run. A
// cancelled context surfaces as context.Canceled with the totals packed so
// far, leaving the partially written artifact in place.
func Pack(packContext context.Context, options Options) (types.PackResult, error) {
	result := types.PackResult{}

	rootInformation, rootStatError := os.Stat(options.RootPath)
	if rootStatError != nil {
		return result, fmt.Errorf(errorRootInaccessibleFormat, options.RootPath, rootStatError)
	}
	if !rootInformation.IsDir() {
		return result, fmt.Errorf(errorRootNotDirectoryFormat, options.RootPath)
	}

	absoluteRootPath, absolutePathError := filepath.Abs(options.RootPath)
	if absolutePathError != nil {
		return result, fmt.Errorf("failed to get absolute path for %s: %w", options.RootPath, absolutePathError)
	}
	cleanedRootPath := filepath.Clean(absoluteRootPath)

	statusWriter := options.StatusWriter
	if statusWriter == nil {
		statusWriter = io.Discard
	}
	warningWriter := options.WarningWriter
	if warningWriter == nil {
		warningWriter = io.Discard
	}

	if options.TokenCounter != nil {
		result.TokenizerName = options.TokenCounter.Name()
	}

	reservedNames := make(map[string]struct{}, len(options.ReservedNames))
	for _, reservedName := range options.ReservedNames {
		reservedNames[reservedName] = struct{}{}
	}

	walkError := filepath.WalkDir(cleanedRootPath, func(walkedPath string, directoryEntry fs.DirEntry, accessError error) error {
		if contextError := packContext.Err(); contextError != nil {
			return contextError
		}
		if accessError != nil {
			fmt.Fprintf(warningWriter, warningAccessFormat, walkedPath, accessError)
			if directoryEntry != nil && directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relativePath := utils.RelativePathOrSelf(walkedPath, cleanedRootPath)
		if relativePath == "." {
			return nil
		}

		if directoryEntry.IsDir() {
			if options.RuleSet.ShouldIgnore(walkedPath, cleanedRootPath, true) {
				return filepath.SkipDir
			}
			return nil
		}

		entryName := directoryEntry.Name()
		if _, isReserved := reservedNames[entryName]; isReserved {
			return nil
		}
		if options.RuleSet.ShouldIgnore(walkedPath, cleanedRootPath, false) {
			return nil
		}
		if !options.Allowlist.Contains(entryName) {
			return nil
		}

		fileBytes, fileReadError := os.ReadFile(walkedPath)
		if fileReadError != nil {
			fmt.Fprintf(warningWriter, warningReadFormat, relativePath, fileReadError)
			return nil
		}
		decodedContent := utils.DecodeText(fileBytes)

		entry := types.PackedFileEntry{RelativePath: relativePath, Content: decodedContent}
		if writeError := options.Artifact.WriteFileSection(entry); writeError != nil {
			return writeError
		}

		result.FilesPacked++
		result.TotalCharacters += int64(utf8.RuneCountInString(decodedContent))

		if options.TokenCounter != nil {
			countResult, countError := tokenizer.CountText(options.TokenCounter, decodedContent)
			if countError != nil {
				fmt.Fprintf(warningWriter, warningTokenCountFormat, relativePath, countError)
			} else if countResult.Counted {
				result.TotalTokens += countResult.Tokens
			}
		}

		fmt.Fprintf(statusWriter, packedFileFormat, relativePath)
		return nil
	})
	if walkError != nil {
		return result, walkError
	}

	return result, nil
}
