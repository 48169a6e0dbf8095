package file

import (
	"context"
	"os"
	"path/filepath"
)

// Persist implements the ptrie.Persist interface for storing and
// loading trie nodes as files in a directory.
type Persist struct {
	basepath string
}

// Load loads the bytes persisted in the named file.
func (p Persist) Load(ctx context.Context, name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(p.basepath, name))
}

// Store persists the given bytes in a file of the given name, if it
// doesn't exist already. Nodes are content-addressed so an existing
// file never needs rewriting.
func (p Persist) Store(ctx context.Context, name string, bytes []byte) error {
	path := filepath.Join(p.basepath, name)
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return os.WriteFile(path, bytes, 0o644)
	}
	return nil
}

// NewPersistForPath returns a Persist that loads and stores nodes as
// files in the directory at the given path.
//
//	p := NewPersistForPath("/var/db/config")
//	blob, err := p.Load(ctx, "MfNMBjj1rEcFzxZvMvJWNvRbvMMINkYZ5f4MWmTK9yg")
func NewPersistForPath(path string) Persist {
	return Persist{path}
}
