// Package ignore decides whether filesystem paths are excluded from packing.
//
// Exclusion rules come from three sources evaluated in order: an exact
// basename set of well-known noise entries, a wildcard pattern list matched
// against basenames, and patterns loaded from a .gitignore file matched
// against both the root-relative path and the basename. The first matching
// rule wins. The gitignore emulation is deliberately partial: negation
// patterns, double-wildcard semantics, and nested ignore files are not
// supported.
package ignore

import (
	"path/filepath"
	"strings"

	"ctxpack/internal/utils"
)

const pathSegmentSeparator = "/"

// DefaultIgnoreNames lists basenames excluded by exact match: version-control
// metadata, dependency directories, build output, IDE state, lockfiles, and
// noisy asset directories.
var DefaultIgnoreNames = []string{
	".git",
	"node_modules",
	"venv",
	".venv",
	"pycache",
	"__pycache__",
	"dist",
	"build",
	".idea",
	".vscode",
	".gemini",
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"bun.lockb",
	"images",
	"assets",
	"public",
	"test-results",
	"playwright-report",
	"coverage",
	".next",
	".nuxt",
	"target",
	"logs.txt",
}

// DefaultIgnorePatterns lists glob patterns matched against basenames.
var DefaultIgnorePatterns = []string{
	"*.log",
	"*.audit.json",
}

// RuleSet answers exclusion queries for one traversal run. It is immutable
// after construction and holds no state beyond the loaded patterns.
type RuleSet struct {
	exactNames        map[string]struct{}
	wildcardPatterns  []string
	gitignorePatterns []string
}

// NewRuleSet constructs a RuleSet from an exact basename set, a wildcard
// pattern list, and loaded gitignore-style patterns. Pattern order is
// preserved.
func NewRuleSet(exactNames []string, wildcardPatterns []string, gitignorePatterns []string) *RuleSet {
	exactNameSet := make(map[string]struct{}, len(exactNames))
	for _, exactName := range exactNames {
		exactNameSet[exactName] = struct{}{}
	}
	return &RuleSet{
		exactNames:        exactNameSet,
		wildcardPatterns:  append([]string(nil), wildcardPatterns...),
		gitignorePatterns: append([]string(nil), gitignorePatterns...),
	}
}

// NewDefaultRuleSet constructs a RuleSet carrying the built-in defaults plus
// the provided gitignore-style patterns.
func NewDefaultRuleSet(gitignorePatterns []string) *RuleSet {
	return NewRuleSet(DefaultIgnoreNames, DefaultIgnorePatterns, gitignorePatterns)
}

// ShouldIgnore reports whether candidatePath is excluded from traversal and
// packing. rootPath anchors root-relative gitignore matching; isDirectory
// gates directory-only patterns. The decision short-circuits on the first
// matching rule and never fails: a pattern that does not parse as a glob is
// treated as a literal non-match.
func (ruleSet *RuleSet) ShouldIgnore(candidatePath string, rootPath string, isDirectory bool) bool {
	baseName := filepath.Base(candidatePath)

	if _, isExactMatch := ruleSet.exactNames[baseName]; isExactMatch {
		return true
	}

	for _, patternValue := range ruleSet.wildcardPatterns {
		if matchesGlob(patternValue, baseName) {
			return true
		}
	}

	if len(ruleSet.gitignorePatterns) == 0 {
		return false
	}

	relativePath := utils.RelativePathOrSelf(candidatePath, rootPath)
	for _, patternValue := range ruleSet.gitignorePatterns {
		if strings.HasSuffix(patternValue, pathSegmentSeparator) {
			if !isDirectory {
				continue
			}
			if matchesGlob(patternValue, relativePath+pathSegmentSeparator) ||
				matchesGlob(patternValue, baseName+pathSegmentSeparator) {
				return true
			}
			continue
		}
		if matchesGlob(patternValue, relativePath) || matchesGlob(patternValue, baseName) {
			return true
		}
	}

	return false
}

// matchesGlob evaluates patternValue against candidate using filepath.Match
// semantics. Malformed patterns report no match rather than an error.
func matchesGlob(patternValue string, candidate string) bool {
	isMatched, matchError := filepath.Match(patternValue, candidate)
	return matchError == nil && isMatched
}
