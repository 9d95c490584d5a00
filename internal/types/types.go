// Package types defines cross-package data structures used by the ctxpack CLI.
package types

// PackedFileEntry is one eligible file's root-relative path and decoded
// content. Entries are handed to the artifact writer as they are produced and
// are not retained.
type PackedFileEntry struct {
	RelativePath string
	Content      string
}

// PackResult captures the aggregate outcome of one packing run.
type PackResult struct {
	// FilesPacked counts the files whose content reached the artifact.
	FilesPacked int
	// TotalCharacters sums the decoded content length of every packed file.
	// The value counts characters rather than bytes and is advisory.
	TotalCharacters int64
	// TotalTokens sums token counts across packed files when counting is enabled.
	TotalTokens int
	// TokenizerName names the encoding used for TotalTokens, empty when counting is disabled.
	TokenizerName string
}
