package aisle

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// searchPatterns are tried in order against the workspace root when
// locating the aisle config.
var searchPatterns = []string{
	"aisle.conf",
	"config/aisle.conf",
	"**/aisle.conf",
}

// Store holds the live alias table behind a read-mostly lock. Readers
// always get a complete snapshot; Reload builds the next table off to
// the side and swaps it in one step.
type Store struct {
	fs   afero.Fs
	root string

	mu    sync.RWMutex
	table *Table
	path  string
}

// NewStore creates a store rooted at the workspace directory. The
// table starts empty; call Reload to populate it.
func NewStore(fs afero.Fs, root string) *Store {
	return &Store{fs: fs, root: root, table: NewTable()}
}

// Snapshot returns the current table. The table is immutable; callers
// may hold it as long as they like.
func (s *Store) Snapshot() *Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// Path returns the config file the last successful Reload used.
func (s *Store) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// Reload locates the aisle config under the workspace root, parses it
// and swaps the snapshot. A missing or malformed file leaves an empty
// or partial table and is never an error for the caller's session;
// problems are logged and swallowed here.
func (s *Store) Reload(ctx context.Context) {
	logger := zerolog.Ctx(ctx)

	path, err := s.locate()
	if err != nil {
		logger.Debug().Err(err).Str("root", s.root).Msg("no aisle config found, alias table left empty")
		s.swap(NewTable(), "")
		return
	}

	file, err := s.fs.Open(s.absPath(path))
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("opening aisle config failed, alias table left empty")
		s.swap(NewTable(), "")
		return
	}
	defer file.Close()

	table, issues := Parse(file)
	if issues != nil {
		logger.Warn().Err(issues).Str("path", path).Msg("aisle config had entries that were skipped")
	}

	s.swap(table, path)
	logger.Info().Str("path", path).Int("entries", table.Len()).Msg("aisle table loaded")
}

func (s *Store) swap(table *Table, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = table
	s.path = path
}

func (s *Store) locate() (string, error) {
	iofs := afero.NewIOFS(afero.NewBasePathFs(s.fs, s.root))
	for _, pattern := range searchPatterns {
		matches, err := doublestar.Glob(iofs, pattern)
		if err != nil {
			continue
		}
		if len(matches) > 0 {
			return matches[0], nil
		}
	}
	return "", errors.New("no aisle.conf in workspace")
}

// Watch reloads the table whenever the located config file changes.
// It blocks until ctx is done and is meant to run on its own
// goroutine. Watching is best-effort: if the watcher cannot be set up
// the initial snapshot simply stays as it is.
func (s *Store) Watch(ctx context.Context) {
	logger := zerolog.Ctx(ctx)

	path := s.Path()
	if path == "" {
		logger.Debug().Msg("no aisle config to watch")
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn().Err(err).Msg("aisle watcher unavailable")
		return
	}
	defer watcher.Close()

	if err := watcher.Add(s.absPath(path)); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("watching aisle config failed")
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				logger.Debug().Str("path", event.Name).Msg("aisle config changed, reloading")
				s.Reload(ctx)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn().Err(err).Msg("aisle watcher error")
		}
	}
}

func (s *Store) absPath(rel string) string {
	if s.root == "" {
		return rel
	}
	return filepath.Join(s.root, rel)
}
