// Package discovery finds candidate fleet data files beneath a root directory.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultExtension is the marker suffix for fleet data files. Matching is case-sensitive.
const DefaultExtension = ".json"

// Error reports a directory that could not be listed. It aborts the whole discovery.
type Error struct {
	Dir string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("reading directory %s: %v", e.Dir, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Discoverer walks a directory tree collecting files with a fixed extension.
type Discoverer struct {
	ext    string
	logger zerolog.Logger
}

// New creates a Discoverer matching ext (including the leading dot).
func New(ext string, logger zerolog.Logger) *Discoverer {
	return &Discoverer{
		ext:    ext,
		logger: logger.With().Str("component", "discovery").Logger(),
	}
}

// Discover walks root with the default extension and no logging.
func Discover(root string) ([]string, error) {
	return New(DefaultExtension, zerolog.Nop()).Discover(root)
}

// frame is one directory being iterated on the work-list.
type frame struct {
	dir     string
	key     string
	entries []os.DirEntry
	next    int
}

// Discover returns every matching file reachable from root, depth-first.
// A root that exists but is not a directory yields no paths and no error.
func (d *Discoverer) Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, &Error{Dir: root, Err: err}
	}
	if !info.IsDir() {
		d.logger.Debug().Str("root", root).Msg("root is not a directory, nothing to discover")
		return []string{}, nil
	}

	files := []string{}

	rootFrame, err := d.open(root)
	if err != nil {
		return nil, err
	}
	stack := []*frame{rootFrame}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next >= len(top.entries) {
			stack = stack[:len(stack)-1]
			continue
		}
		entry := top.entries[top.next]
		top.next++

		path := filepath.Join(top.dir, entry.Name())
		// Stat follows symlinks; entries that cannot be stat'ed are neither files nor dirs.
		entryInfo, err := os.Stat(path)
		if err != nil {
			d.logger.Debug().Str("path", path).Err(err).Msg("skipping unresolvable entry")
			continue
		}

		switch {
		case entryInfo.IsDir():
			if onPath(stack, canonical(path)) {
				d.logger.Debug().Str("dir", path).Msg("skipping symlink cycle")
				continue
			}
			child, err := d.open(path)
			if err != nil {
				return nil, err
			}
			stack = append(stack, child)
		case entryInfo.Mode().IsRegular() && d.matches(entry.Name()):
			files = append(files, path)
		}
	}

	d.logger.Debug().Str("root", root).Int("files", len(files)).Msg("discovery complete")
	return files, nil
}

// open lists dir into a new frame keyed by its resolved path.
func (d *Discoverer) open(dir string) (*frame, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &Error{Dir: dir, Err: err}
	}
	d.logger.Debug().Str("dir", dir).Int("entries", len(entries)).Msg("listing directory")
	return &frame{dir: dir, key: canonical(dir), entries: entries}, nil
}

// onPath reports whether key is one of the directories currently being walked.
// Only ancestors count, so a directory reached through two aliases is listed twice.
func onPath(stack []*frame, key string) bool {
	for _, f := range stack {
		if f.key == key {
			return true
		}
	}
	return false
}

// matches requires a non-empty stem before the extension, so ".json" itself is not a candidate.
func (d *Discoverer) matches(name string) bool {
	return len(name) > len(d.ext) && strings.HasSuffix(name, d.ext)
}

// canonical resolves symlinks so that a directory and its aliases compare equal.
func canonical(dir string) string {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return filepath.Clean(dir)
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return resolved
	}
	return abs
}

// IsDiscoveryError reports whether err came from directory listing.
func IsDiscoveryError(err error) bool {
	var de *Error
	return errors.As(err, &de)
}

// IsNotExist reports whether a discovery error was caused by a missing root.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
