package loader

import (
	"path/filepath"

	"github.com/dbschema-go/dbschema/internal/diagnostics"
)

// Stack tracks the absolute paths currently being loaded, depth-first,
// so re-entering one is detected as a cycle rather than looping
// forever. Not safe for concurrent use — the compiler is single
// threaded (see SPEC_FULL.md §5).
type Stack struct {
	paths []string
	seen  map[string]bool
}

func NewStack() *Stack {
	return &Stack{seen: make(map[string]bool)}
}

// Enter pushes path onto the stack, or fails with a Cycle error
// listing every path on the stack, from the root, followed by path itself.
func (s *Stack) Enter(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if s.seen[abs] {
		cyclePath := append(append([]string{}, s.paths...), abs)
		return diagnostics.Cycle(cyclePath)
	}
	s.seen[abs] = true
	s.paths = append(s.paths, abs)
	return nil
}

// Leave pops the most recently entered path.
func (s *Stack) Leave() {
	if len(s.paths) == 0 {
		return
	}
	last := s.paths[len(s.paths)-1]
	s.paths = s.paths[:len(s.paths)-1]
	delete(s.seen, last)
}
