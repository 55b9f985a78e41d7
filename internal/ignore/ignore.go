// Package ignore decides which files the page scanner skips. Rules use a
// gitignore-like syntax loaded from a .wikigenignore file at the scanned
// root, on top of built-in defaults for dot directories.
package ignore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// IgnoreFileName is the per-tree exclusion file read by the scanner.
const IgnoreFileName = ".wikigenignore"

// Ruleset holds compiled exclusion rules. Later rules win, so a negation
// can re-include a path an earlier rule excluded.
type Ruleset struct {
	rules []rule
}

type rule struct {
	regex    *regexp.Regexp
	negation bool
	dirOnly  bool
	anchored bool
}

// New creates a ruleset with the built-in default: dot files and dot
// directories are skipped everywhere.
func New() *Ruleset {
	r := &Ruleset{}
	r.Add(".*")
	return r
}

// Add compiles one pattern into the ruleset. Empty lines and # comments
// are ignored. Supported syntax: * and ? wildcards (not crossing /),
// a leading **/ for any depth, a trailing / for directory-only rules,
// a leading / to anchor at the scanned root, and a leading ! for negation.
func (r *Ruleset) Add(pattern string) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" || strings.HasPrefix(pattern, "#") {
		return
	}

	var rl rule
	if strings.HasPrefix(pattern, "!") {
		rl.negation = true
		pattern = pattern[1:]
	}
	if strings.HasSuffix(pattern, "/") {
		rl.dirOnly = true
		pattern = strings.TrimSuffix(pattern, "/")
	}
	if strings.HasPrefix(pattern, "/") {
		rl.anchored = true
		pattern = strings.TrimPrefix(pattern, "/")
	} else if strings.Contains(pattern, "/") && !strings.HasPrefix(pattern, "**/") {
		// A slash inside the pattern anchors it at the root, matching
		// gitignore semantics.
		rl.anchored = true
	}

	rl.regex = regexp.MustCompile("^" + globToRegex(pattern) + "$")
	r.rules = append(r.rules, rl)
}

// Load reads IgnoreFileName under root into a fresh ruleset. A missing
// file yields just the defaults.
func Load(root string) (*Ruleset, error) {
	r := New()

	f, err := os.Open(filepath.Join(root, IgnoreFileName))
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open ignore file: %w", err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		r.Add(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ignore file: %w", err)
	}
	return r, nil
}

// Match reports whether the root-relative path is excluded. Slashes are
// normalized, and a rule matching a directory also covers everything
// beneath it.
func (r *Ruleset) Match(path string, isDir bool) bool {
	path = filepath.ToSlash(path)
	if path == "." || path == "" {
		return false
	}

	excluded := false
	for _, rl := range r.rules {
		if rl.matches(path, isDir) {
			excluded = !rl.negation
		}
	}
	return excluded
}

func (rl rule) matches(path string, isDir bool) bool {
	parts := strings.Split(path, "/")

	if rl.anchored {
		if rl.regex.MatchString(path) {
			return !rl.dirOnly || isDir
		}
		if rl.dirOnly {
			// A directory rule covers the files inside it.
			for i := range parts[:len(parts)-1] {
				if rl.regex.MatchString(strings.Join(parts[:i+1], "/")) {
					return true
				}
			}
		}
		return false
	}

	if rl.dirOnly {
		for i, part := range parts {
			if rl.regex.MatchString(part) {
				return i < len(parts)-1 || isDir
			}
		}
		return false
	}

	if rl.regex.MatchString(path) {
		return true
	}
	for _, part := range parts {
		if rl.regex.MatchString(part) {
			return true
		}
	}
	return false
}

// globToRegex translates the glob subset into a regular expression body.
func globToRegex(pattern string) string {
	var b strings.Builder

	i := 0
	for i < len(pattern) {
		c := pattern[i]
		switch c {
		case '*':
			if strings.HasPrefix(pattern[i:], "**/") {
				b.WriteString("(?:.*/)?")
				i += 3
				continue
			}
			if strings.HasPrefix(pattern[i:], "**") {
				b.WriteString(".*")
				i += 2
				continue
			}
			b.WriteString("[^/]*")
			i++
		case '?':
			b.WriteString("[^/]")
			i++
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
			i++
		}
	}
	return b.String()
}
