package suggest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

const reloadDebounce = 100 * time.Millisecond

// FileSource serves candidates listed in a YAML file. The file holds a
// sequence of {label, value, detail} mappings.
type FileSource struct {
	*Memory

	path   string
	logger *slog.Logger
}

// LoadFile reads path into a new FileSource.
func LoadFile(path string, logger *slog.Logger) (*FileSource, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fs := &FileSource{Memory: NewMemory(), path: path, logger: logger}
	if err := fs.Reload(); err != nil {
		return nil, err
	}
	return fs, nil
}

// Path returns the backing file.
func (f *FileSource) Path() string { return f.path }

// Reload re-reads the backing file. On error the previous set is kept.
func (f *FileSource) Reload() error {
	items, err := ReadCandidates(f.path)
	if err != nil {
		return err
	}
	f.Replace(items)
	return nil
}

// ReadCandidates decodes a YAML candidate list.
func ReadCandidates(path string) ([]Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read candidates: %w", err)
	}
	var items []Candidate
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode candidates %s: %w", path, err)
	}
	return items, nil
}

// Watch reloads the file whenever it is written or replaced, until ctx is
// done. The returned channel receives after every successful reload and is
// closed when watching stops.
func (f *FileSource) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory so editors that replace the file are seen.
	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	target := filepath.Clean(f.path)
	reloaded := make(chan struct{}, 1)

	go func() {
		var (
			mu     sync.Mutex
			timer  *time.Timer
			closed bool
		)
		defer func() {
			mu.Lock()
			closed = true
			if timer != nil {
				timer.Stop()
			}
			mu.Unlock()
			_ = watcher.Close()
			close(reloaded)
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				mu.Lock()
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(reloadDebounce, func() {
					mu.Lock()
					defer mu.Unlock()
					if closed {
						return
					}
					if err := f.Reload(); err != nil {
						f.logger.Warn("suggest: reload failed", "path", f.path, "error", err)
						return
					}
					f.logger.Debug("suggest: reloaded candidates", "path", f.path, "count", f.Len())
					select {
					case reloaded <- struct{}{}:
					default:
					}
				})
				mu.Unlock()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				f.logger.Warn("suggest: watch error", "path", f.path, "error", err)
			}
		}
	}()

	return reloaded, nil
}
