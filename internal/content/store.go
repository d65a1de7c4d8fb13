package content

import (
	"embed"
	"io/fs"
	"os"
	"sync/atomic"
)

//go:embed defaults
var defaults embed.FS

// Defaults returns the content bundled with the binary.
func Defaults() fs.FS {
	sub, err := fs.Sub(defaults, "defaults")
	if err != nil {
		panic(err)
	}
	return sub
}

// Source returns dir as a filesystem, or the bundled defaults when dir is
// empty.
func Source(dir string) fs.FS {
	if dir == "" {
		return Defaults()
	}
	return os.DirFS(dir)
}

// Store holds the current Site and lets it be swapped on reload.
type Store struct {
	fsys fs.FS
	site atomic.Pointer[Site]
}

// NewStore loads fsys once and returns a store serving the result.
func NewStore(fsys fs.FS) (*Store, error) {
	s := &Store{fsys: fsys}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Site returns the most recently loaded content.
func (s *Store) Site() *Site {
	return s.site.Load()
}

// Reload re-reads the filesystem. On failure the previous content is kept.
func (s *Store) Reload() error {
	site, err := Load(s.fsys)
	if err != nil {
		return err
	}
	s.site.Store(site)
	return nil
}
