// Package traverse walks the start paths given on the command line and
// collects the files that survive the exclusion policy.
package traverse

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/agusx1211/recap/internal/pathutil"
	"github.com/agusx1211/recap/internal/pattern"
)

// Kind tells regular files and symbolic links apart.
type Kind int

const (
	Regular Kind = iota
	Symlink
)

func (k Kind) String() string {
	if k == Symlink {
		return "symlink"
	}
	return "regular"
}

// MatchedFile is a file selected for the report.
type MatchedFile struct {
	// FullPath is usable with the os package.
	FullPath string
	// RelPath is normalised, slash separated and relative to the working
	// directory when the file lives under it.
	RelPath string
	Kind    Kind
	Size    int64
}

// Stats counts what a walk visited.
type Stats struct {
	Dirs     int
	Files    int
	Symlinks int
	Skipped  int
	Warnings int
}

// Engine walks start paths. Policy may be nil, in which case nothing is
// excluded.
type Engine struct {
	Policy *pattern.ExclusionPolicy
	Cwd    string
	Logger zerolog.Logger
}

// readDir is replaced in tests to simulate unreadable directories.
var readDir = os.ReadDir

// walker holds the state of one Walk call.
type walker struct {
	*Engine
	seen  map[string]struct{}
	files []MatchedFile
	stats Stats
}

// Walk visits every start path and returns the matched files sorted by
// RelPath, without duplicates. Start paths that are symbolic links are
// followed; links found below them are recorded but never followed.
// Filesystem errors are logged and the affected entry is skipped.
func (e *Engine) Walk(starts []string) ([]MatchedFile, Stats) {
	if len(starts) == 0 {
		starts = []string{"."}
	}
	w := &walker{Engine: e, seen: make(map[string]struct{})}
	for _, start := range starts {
		w.start(start)
	}

	sort.Slice(w.files, func(i, j int) bool {
		return w.files[i].RelPath < w.files[j].RelPath
	})
	e.Logger.Debug().
		Int("dirs", w.stats.Dirs).
		Int("files", w.stats.Files).
		Int("symlinks", w.stats.Symlinks).
		Int("skipped", w.stats.Skipped).
		Int("warnings", w.stats.Warnings).
		Msg("traversal finished")
	return w.files, w.stats
}

func (w *walker) start(start string) {
	norm := pathutil.Normalize(start)
	full := filepath.FromSlash(norm)
	if !pathutil.IsAbs(norm) && w.Cwd != "" {
		full = filepath.Join(w.Cwd, full)
	}
	rel := pathutil.Relativize(norm, pathutil.Normalize(w.Cwd))

	info, err := os.Stat(full)
	if err != nil {
		w.warn(err, rel, "cannot access start path")
		return
	}
	// the working directory itself is never a candidate
	if rel != "." && w.excluded(rel, full, info.IsDir()) {
		return
	}
	switch {
	case info.IsDir():
		w.walkDir(full, rel)
	case info.Mode().IsRegular():
		w.record(full, rel, Regular, info.Size())
	default:
		w.stats.Skipped++
		w.Logger.Debug().Str("path", rel).Msg("skipping special file")
	}
}

func (w *walker) walkDir(full, rel string) {
	w.stats.Dirs++
	entries, err := readDir(full)
	if err != nil {
		w.warn(err, rel, "cannot read directory")
		return
	}

	for _, d := range entries {
		childFull := filepath.Join(full, d.Name())
		childRel := pathutil.Join(rel, d.Name())
		typ := d.Type()

		switch {
		case typ.IsDir():
			if !w.excluded(childRel, childFull, true) {
				w.walkDir(childFull, childRel)
			}
		case typ&fs.ModeSymlink != 0:
			if !w.excluded(childRel, childFull, false) {
				w.record(childFull, childRel, Symlink, 0)
			}
		case typ.IsRegular():
			if w.excluded(childRel, childFull, false) {
				continue
			}
			info, err := d.Info()
			if err != nil {
				w.warn(err, childRel, "cannot stat file")
				continue
			}
			w.record(childFull, childRel, Regular, info.Size())
		default:
			w.stats.Skipped++
		}
	}
}

func (w *walker) excluded(rel, full string, isDir bool) bool {
	if w.Policy == nil {
		return false
	}
	self := !isDir && w.Policy.IsSelf(full)
	if !self && !w.Policy.Excluded(rel, isDir) {
		return false
	}
	w.stats.Skipped++
	w.Logger.Trace().Str("path", rel).Bool("dir", isDir).Msg("excluded")
	return true
}

func (w *walker) record(full, rel string, kind Kind, size int64) {
	if _, dup := w.seen[rel]; dup {
		return
	}
	w.seen[rel] = struct{}{}
	if kind == Symlink {
		w.stats.Symlinks++
	} else {
		w.stats.Files++
	}
	w.files = append(w.files, MatchedFile{FullPath: full, RelPath: rel, Kind: kind, Size: size})
}

func (w *walker) warn(err error, rel, msg string) {
	w.stats.Warnings++
	w.Logger.Warn().Err(err).Str("path", rel).Msg(msg)
}
