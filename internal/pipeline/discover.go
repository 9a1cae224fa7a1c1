package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/backmassage/seq2vid/internal/domain"
	"github.com/backmassage/seq2vid/internal/planner"
)

// Supported image extensions (lowercase, with leading dot).
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".tif":  true,
}

// IsImage reports whether name has a supported image extension, ignoring case.
func IsImage(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// Lister lists the frames of a folder.
type Lister interface {
	List(dir string) (planner.ImageSequence, error)
}

// DirLister lists frames from the local filesystem with [Discover].
type DirLister struct{}

// List implements Lister.
func (DirLister) List(dir string) (planner.ImageSequence, error) { return Discover(dir) }

// Discover reads inputDir (not recursively), keeps regular files with a
// supported image extension and returns their absolute paths sorted
// lexicographically by file name.
//
// A missing or non-directory inputDir wraps domain.ErrInvalidInput; a folder
// with no images wraps domain.ErrEmptySequence.
func Discover(inputDir string) (planner.ImageSequence, error) {
	dir, err := filepath.Abs(filepath.Clean(inputDir))
	if err != nil {
		return nil, fmt.Errorf("%w: please select a valid image folder: %w", domain.ErrInvalidInput, err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || isNotDir(dir) {
			return nil, fmt.Errorf("%w: please select a valid image folder (%s)", domain.ErrInvalidInput, inputDir)
		}
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if !IsImage(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if !isRegular(e, path) {
			continue
		}
		files = append(files, path)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in the folder %s", domain.ErrEmptySequence, inputDir)
	}
	sort.Strings(files)
	return planner.ImageSequence(files), nil
}

// isRegular follows symlinks so linked frames are accepted.
func isRegular(e fs.DirEntry, path string) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular()
}

func isNotDir(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
