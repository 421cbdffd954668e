// Package output decides where a report goes and writes it there.
package output

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/agusx1211/recap/internal/pathutil"
)

// FilePrefix starts the name of every generated report file.
const FilePrefix = "recap-output"

// Mode is the primary destination of a report.
type Mode int

const (
	ModeStdout Mode = iota
	ModeFile
	// ModeClipboard keeps the report in memory for the clipboard only.
	ModeClipboard
	// ModeRemote writes a temporary local file that is uploaded and then
	// removed.
	ModeRemote
)

func (m Mode) String() string {
	switch m {
	case ModeStdout:
		return "stdout"
	case ModeFile:
		return "file"
	case ModeClipboard:
		return "clipboard"
	case ModeRemote:
		return "remote"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Options are the output related command line settings.
type Options struct {
	File      string // -o
	Dir       string // -O
	Clipboard bool
	Upload    bool
}

// Target is the resolved destination.
type Target struct {
	Mode Mode
	// Path is the file written for ModeFile and ModeRemote.
	Path string
	// RelPath is Path relative to the working directory. The traversal
	// excludes it so the report never lists itself.
	RelPath string
	// Temporary files are removed after a successful upload.
	Temporary bool
}

// GenerateName returns the timestamped report file name for now.
func GenerateName(now time.Time) string {
	return FilePrefix + "-" + now.Format("20060102-150405") + ".txt"
}

// Resolve picks the report destination before traversal starts.
func Resolve(opts Options, cwd string, now time.Time) (Target, error) {
	if opts.File != "" && opts.Dir != "" {
		return Target{}, errors.New("--output and --output-dir are mutually exclusive")
	}

	switch {
	case opts.File != "":
		return fileTarget(ModeFile, opts.File, cwd, false), nil
	case opts.Dir != "":
		info, err := os.Stat(opts.Dir)
		if err != nil {
			return Target{}, fmt.Errorf("output directory: %w", err)
		}
		if !info.IsDir() {
			return Target{}, fmt.Errorf("output directory %s is not a directory", opts.Dir)
		}
		return fileTarget(ModeFile, filepath.Join(opts.Dir, GenerateName(now)), cwd, false), nil
	case opts.Upload:
		return fileTarget(ModeRemote, GenerateName(now), cwd, true), nil
	case opts.Clipboard:
		return Target{Mode: ModeClipboard}, nil
	default:
		return Target{Mode: ModeStdout}, nil
	}
}

func fileTarget(mode Mode, p, cwd string, temporary bool) Target {
	full := p
	if !filepath.IsAbs(full) && cwd != "" {
		full = filepath.Join(cwd, full)
	}
	return Target{
		Mode:      mode,
		Path:      full,
		RelPath:   pathutil.Relativize(pathutil.Normalize(full), pathutil.Normalize(cwd)),
		Temporary: temporary,
	}
}

// WritesFile reports whether Emit creates a file.
func (t Target) WritesFile() bool {
	return t.Mode == ModeFile || t.Mode == ModeRemote
}

// Emit delivers report. Files are replaced atomically. ModeClipboard writes
// nothing; the caller copies the report itself.
func (t Target) Emit(report []byte, stdout io.Writer) error {
	switch t.Mode {
	case ModeStdout:
		if _, err := stdout.Write(report); err != nil {
			return fmt.Errorf("failed to write report to stdout: %w", err)
		}
	case ModeFile, ModeRemote:
		if err := atomic.WriteFile(t.Path, bytes.NewReader(report)); err != nil {
			return fmt.Errorf("failed to write report to %s: %w", t.Path, err)
		}
	}
	return nil
}

// Remove deletes the file written by Emit.
func (t Target) Remove() error {
	if !t.WritesFile() {
		return nil
	}
	if err := os.Remove(t.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", t.Path, err)
	}
	return nil
}

// ListReports returns the regular files in dir whose names start with
// FilePrefix, sorted by name.
func ListReports(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	var out []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasPrefix(e.Name(), FilePrefix) {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}

// Clear removes every report file ListReports finds in dir and returns the
// removed paths. Removal continues past individual failures.
func Clear(dir string) ([]string, error) {
	paths, err := ListReports(dir)
	if err != nil {
		return nil, err
	}
	return RemoveAll(paths)
}

// RemoveAll deletes paths and returns the ones that were removed.
func RemoveAll(paths []string) ([]string, error) {
	var removed []string
	var errs []error
	for _, p := range paths {
		if err := os.Remove(p); err != nil {
			errs = append(errs, err)
			continue
		}
		removed = append(removed, p)
	}
	return removed, errors.Join(errs...)
}
