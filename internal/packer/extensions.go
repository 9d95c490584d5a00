package packer

import (
	"path/filepath"
	"strings"
)

// DefaultExtensionAllowlist lists the file extensions eligible for packing.
// Entries are lowercase and include the leading dot; matching is
// case-insensitive against the candidate file name.
var DefaultExtensionAllowlist = []string{
	".py", ".js", ".ts", ".tsx", ".html", ".css", ".json", ".md",
	".sql", ".go", ".rs", ".java", ".cpp", ".c", ".h", ".hpp", ".ino",
	".txt", ".yaml", ".yml", ".toml", ".xml", ".sh", ".bat", ".env",
}

// ExtensionAllowlist answers file eligibility by extension, independently of
// ignore rules. Constant for the process lifetime.
type ExtensionAllowlist struct {
	extensions map[string]struct{}
}

// NewExtensionAllowlist constructs an allowlist from extension strings with
// leading dots. Entries are normalized to lowercase.
func NewExtensionAllowlist(extensions []string) *ExtensionAllowlist {
	extensionSet := make(map[string]struct{}, len(extensions))
	for _, extensionValue := range extensions {
		extensionSet[strings.ToLower(extensionValue)] = struct{}{}
	}
	return &ExtensionAllowlist{extensions: extensionSet}
}

// NewDefaultExtensionAllowlist constructs the allowlist carrying the built-in entries.
func NewDefaultExtensionAllowlist() *ExtensionAllowlist {
	return NewExtensionAllowlist(DefaultExtensionAllowlist)
}

// Contains reports whether fileName's extension is eligible for packing.
func (allowlist *ExtensionAllowlist) Contains(fileName string) bool {
	extensionValue := strings.ToLower(filepath.Ext(fileName))
	_, isAllowed := allowlist.extensions[extensionValue]
	return isAllowed
}
