package scanner

import (
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// ignoreLayer is one .gitignore file; its patterns apply to paths
// below the directory that declared it.
type ignoreLayer struct {
	base string // slash-relative dir, "" at the root
	gi   *ignore.GitIgnore
}

// ignoreSet accumulates the .gitignore files encountered during a walk.
// Match asks the deepest applicable file first, so nested files
// override ancestors the way git resolves them.
type ignoreSet struct {
	layers []ignoreLayer
}

// add compiles absDir/.gitignore when it exists. Missing or unreadable
// files contribute nothing.
func (s *ignoreSet) add(relDir, absDir string) {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(absDir, ".gitignore"))
	if err != nil {
		return
	}
	base := relDir
	if base == "." {
		base = ""
	}
	s.layers = append(s.layers, ignoreLayer{base: base, gi: gi})
}

// Match reports whether relPath (slash-separated, relative to the walk
// root) is git-ignored. Directories are matched with a trailing slash
// so "target/" style patterns apply.
func (s *ignoreSet) Match(relPath string, isDir bool) bool {
	p := relPath
	if isDir {
		p += "/"
	}
	for i := len(s.layers) - 1; i >= 0; i-- {
		layer := s.layers[i]
		sub := p
		if layer.base != "" {
			if !strings.HasPrefix(p, layer.base+"/") {
				continue
			}
			sub = p[len(layer.base)+1:]
		}
		if matched, pattern := layer.gi.MatchesPathHow(sub); pattern != nil {
			return matched
		}
	}
	return false
}
