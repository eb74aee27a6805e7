// Package loader abstracts the single file-system dependency the
// compiler core takes: reading a source file's text given a path.
// Grounded on the teacher's psl/database loading patterns, generalized
// from "read a schema file" to the general loader interface this
// language's module system requires.
package loader

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/dbschema-go/dbschema/internal/diagnostics"
)

// Loader resolves a path to its source text.
type Loader interface {
	Load(path string) (string, error)
}

// Resolve joins a path referenced from within fromFile relative to that
// file's directory (absolute paths are returned as is). It does not map
// a directory onto its `main.hcl` entry file; ResolveEntryPath does.
func Resolve(fromFile, path string) string {
	dir := filepath.Dir(fromFile)
	joined := path
	if !filepath.IsAbs(path) {
		joined = filepath.Join(dir, path)
	}
	return joined
}

// ResolveEntryPath maps a directory-style module reference onto its
// main.hcl entry file, independent of any real file system: any path
// not already ending in ".hcl" is assumed to name a directory. Callers
// that need recursive module resolution (eval.LoadFile) always work
// with the result of this function, so later Resolve() calls compute
// "relative to the including file's directory" against a real file
// path rather than an ambiguous directory reference.
func ResolveEntryPath(path string) string {
	if strings.HasSuffix(path, ".hcl") {
		return path
	}
	return strings.TrimSuffix(path, "/") + "/main.hcl"
}

// EntryFile maps a directory path to its main.hcl entry point; a path
// that already names a file is returned unchanged.
func EntryFile(fs afero.Fs, path string) (string, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return "", diagnostics.Runtime("cannot stat %q: %v", path, err)
	}
	if info.IsDir() {
		return filepath.Join(path, "main.hcl"), nil
	}
	return path, nil
}

// OSLoader loads source files from a real (or faked, via afero.Fs)
// file system.
type OSLoader struct {
	Fs afero.Fs
}

// NewOSLoader builds a loader backed by the OS file system.
func NewOSLoader() *OSLoader {
	return &OSLoader{Fs: afero.NewOsFs()}
}

func (l *OSLoader) Load(path string) (string, error) {
	resolved, err := EntryFile(l.Fs, path)
	if err != nil {
		return "", err
	}
	data, err := afero.ReadFile(l.Fs, resolved)
	if err != nil {
		return "", diagnostics.Runtime("cannot read %q: %v", resolved, err)
	}
	return string(data), nil
}

// MapLoader is an in-memory loader over a path->source map, used by
// parser/evaluator/extractor tests and by directory-style module
// resolution against a fake tree (a path ending in "/" or not naming a
// key directly falls back to "<path>/main.hcl").
type MapLoader struct {
	Files map[string]string
}

func NewMapLoader(files map[string]string) *MapLoader {
	return &MapLoader{Files: files}
}

func (l *MapLoader) Load(path string) (string, error) {
	if src, ok := l.Files[path]; ok {
		return src, nil
	}
	entry := strings.TrimSuffix(path, "/") + "/main.hcl"
	if src, ok := l.Files[entry]; ok {
		return src, nil
	}
	return "", diagnostics.Runtime("no such file %q", path)
}
