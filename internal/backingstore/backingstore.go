// Package backingstore mirrors each loaded script onto disk under a
// scratch directory, the way the shell's original backing_store folder
// did. It is write-only at load time; nothing reads it back during
// execution — the script store is the copy that schedulers fetch from.
//
// The directory is checked for existence on construction and created
// or cleared idempotently.
package backingstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// DefaultDir is the conventional backing-store directory name.
const DefaultDir = "backing_store"

// Store mirrors loaded scripts as plain files under Dir.
type Store struct {
	Dir string
	log *logrus.Entry
}

// New creates (or clears, if present) the backing-store directory.
func New(dir string, log *logrus.Entry) (*Store, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if dir == "" {
		dir = DefaultDir
	}
	st := &Store{Dir: dir, log: log}

	if info, err := os.Stat(dir); err == nil {
		if !info.IsDir() {
			return nil, fmt.Errorf("backingstore: %s exists and is not a directory", dir)
		}
		if err := st.Clear(); err != nil {
			return nil, err
		}
	} else if os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o777); err != nil {
			return nil, fmt.Errorf("backingstore: mkdir %s: %w", dir, err)
		}
	} else {
		return nil, fmt.Errorf("backingstore: stat %s: %w", dir, err)
	}

	return st, nil
}

// Clear removes every file currently under the backing-store directory,
// leaving the directory itself in place.
func (s *Store) Clear() error {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return fmt.Errorf("backingstore: read %s: %w", s.Dir, err)
	}
	for _, e := range entries {
		p := filepath.Join(s.Dir, e.Name())
		if err := os.RemoveAll(p); err != nil {
			s.log.WithError(err).Warnf("backingstore: could not remove %s", p)
		}
	}
	return nil
}

// Remove deletes the backing-store directory entirely, used on clean
// shell exit.
func (s *Store) Remove() error {
	if err := s.Clear(); err != nil {
		return err
	}
	if err := os.Remove(s.Dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("backingstore: rmdir %s: %w", s.Dir, err)
	}
	return nil
}

// Mirror copies srcPath verbatim into the backing store under its own
// basename and returns the mirrored file's path.
func (s *Store) Mirror(srcPath string) (string, error) {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return "", err
	}
	dst := filepath.Join(s.Dir, filepath.Base(srcPath))
	if err := os.WriteFile(dst, data, 0o600); err != nil {
		return "", fmt.Errorf("backingstore: write %s: %w", dst, err)
	}
	return dst, nil
}
