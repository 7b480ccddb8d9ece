// Package preview serves the generated site locally and rebuilds it when
// source files change.
package preview

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// debounceDelay coalesces bursts of filesystem events into one rebuild.
const debounceDelay = 300 * time.Millisecond

// Server watches a site's source tree and serves the rendered output.
// Rebuild runs after changes settle; when it fails, the previous output
// stays up and the error is logged.
type Server struct {
	SiteRoot string
	OutDir   string
	Addr     string
	Rebuild  func(ctx context.Context) error
	Log      zerolog.Logger
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer watcher.Close()
	if err := s.addDirsRecursive(watcher, s.SiteRoot); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    s.Addr,
		Handler: http.FileServer(http.Dir(s.OutDir)),
	}
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.Addr, err)
	}
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()
	s.Log.Info().Str("addr", "http://"+ln.Addr().String()).Msg("preview server listening")

	rebuildReq, trigger := debouncer()
	go s.rebuildWorker(ctx, rebuildReq)

	for {
		select {
		case <-ctx.Done():
			return s.shutdown(srv)
		case err := <-serveErr:
			return err
		case ev, ok := <-watcher.Events:
			if !ok {
				return s.shutdown(srv)
			}
			s.handleEvent(watcher, ev, trigger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return s.shutdown(srv)
			}
			s.Log.Warn().Err(err).Msg("watcher error")
		}
	}
}

func (s *Server) shutdown(srv *http.Server) error {
	s.Log.Info().Msg("shutting down preview server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func (s *Server) handleEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if ignoreEvent(ev.Name) {
		return
	}
	// Changes under the output tree are our own writes.
	if within(ev.Name, s.OutDir) {
		return
	}
	if ev.Op&fsnotify.Create != 0 {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = s.addDirsRecursive(watcher, ev.Name)
		}
	}
	s.Log.Debug().Str("path", ev.Name).Str("op", ev.Op.String()).Msg("change detected")
	trigger()
}

// rebuildWorker serializes rebuilds: one at a time, with one pending slot.
func (s *Server) rebuildWorker(ctx context.Context, rebuildReq chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-rebuildReq:
			s.Log.Info().Msg("source changed, rebuilding")
			if err := s.Rebuild(ctx); err != nil {
				s.Log.Warn().Err(err).Msg("rebuild failed, keeping previous output")
			}
		}
	}
}

// debouncer returns a buffered request channel and a trigger that arms a
// fresh delay on every call.
func debouncer() (chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounceDelay, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	return rebuildReq, trigger
}

// addDirsRecursive watches root and every subdirectory, skipping hidden
// directories and the output tree.
func (s *Server) addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (strings.HasPrefix(filepath.Base(path), ".") || within(path, s.OutDir)) {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			s.Log.Warn().Str("dir", path).Err(err).Msg("watch add failed")
		}
		return nil
	})
}

// ignoreEvent filters hidden files and editor temp/swap files.
func ignoreEvent(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".swx") {
		return true
	}
	return base == "Thumbs.db"
}

func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || !strings.HasPrefix(rel, "..")
}
