package fonts

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Exts are the file extensions treated as fonts.
var Exts = []string{".ttf", ".otf"}

// BaseDirs returns the directories searched for the overlay font, relative to the working
// directory, so it is found from the repo root and from cmd/spincube alike.
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

func isFont(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// ScanDir lists font files under dir as slash-separated paths relative to dir.
// A missing dir yields an empty list.
func ScanDir(dir string) ([]string, error) {
	root := filepath.Clean(dir)
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		switch {
		case err != nil && path == root && os.IsNotExist(err):
			return fs.SkipAll
		case err != nil:
			return err
		case d.IsDir() || !isFont(d.Name()):
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}

// fold drops case, spaces, dashes and underscores so "Inter Regular" matches "inter-regular".
func fold(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(s))
}

// SearchCandidates expands a configured font into lookups tried in order: the term itself,
// its first path segment, the part before the first dash, and the term without its extension.
// A stale path such as "Inter/Inter-Medium.ttf" thereby still resolves by family.
func SearchCandidates(term string) []string {
	out := []string{term}
	seen := map[string]bool{term: true}
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	if i := strings.IndexAny(term, `/\`); i > 0 {
		add(term[:i])
	}
	if i := strings.IndexByte(term, '-'); i > 0 {
		add(term[:i])
	}
	if isFont(term) {
		add(term[:len(term)-len(filepath.Ext(term))])
	}
	return out
}

// find returns the first font under bases whose folded relative path contains the folded
// term. A "regular" face wins over other matches.
func find(bases []string, term string) (string, bool) {
	want := fold(term)
	if want == "" {
		return "", false
	}
	first := ""
	for _, base := range bases {
		list, err := ScanDir(base)
		if err != nil {
			continue
		}
		for _, rel := range list {
			if !strings.Contains(fold(rel), want) {
				continue
			}
			full := filepath.Join(base, filepath.FromSlash(rel))
			if strings.Contains(strings.ToLower(rel), "regular") {
				return full, true
			}
			if first == "" {
				first = full
			}
		}
	}
	return first, first != ""
}
