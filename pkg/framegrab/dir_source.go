package framegrab

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/net/context"
)

var frameExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// DirSource walks a directory of still images in lexical order. Used by the
// headless CLI to replay a captured frame set through a session.
type DirSource struct {
	mu    sync.Mutex
	paths []string
	next  int
	done  bool
}

func NewDirSource(dir string) (*DirSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading frame directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if frameExtensions[ext] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no image frames in %s", dir)
	}

	sort.Strings(paths)

	return &DirSource{paths: paths}, nil
}

// Len reports the total number of frames in the set.
func (s *DirSource) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.paths)
}

func (s *DirSource) Grab(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return nil, ErrClosed
	}
	if s.next >= len(s.paths) {
		return nil, ErrExhausted
	}

	path := s.paths[s.next]
	s.next++

	frame, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading frame %s: %w", path, err)
	}

	return frame, nil
}

func (s *DirSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done = true
	return nil
}
