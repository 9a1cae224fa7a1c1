package naming

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// BaseName is the stem of the default output file.
const BaseName = "output_video"

// OutputPath returns the artifact path for a build of inputDir. An explicit
// override wins; otherwise the file is <inputDir>/output_video.<container>.
// container is the file extension without dot (e.g. "mp4", "mkv"). The
// result is cleaned and absolute when possible.
func OutputPath(inputDir, override, container string) string {
	p := override
	if p == "" {
		p = filepath.Join(inputDir, BaseName+"."+container)
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// ErrOutputExists is returned by CheckClobber when the output already exists.
var ErrOutputExists = errors.New("output file already exists")

// CheckClobber reports whether writing to path is allowed. With noClobber
// set an existing file is an error; a directory at path always is.
func CheckClobber(path string, noClobber bool) error {
	st, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if st.IsDir() {
		return fmt.Errorf("output %s is a directory", path)
	}
	if noClobber {
		return fmt.Errorf("%w: %s", ErrOutputExists, path)
	}
	return nil
}
