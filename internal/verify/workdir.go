package verify

import (
	"fmt"
	"os"
)

// inDir runs fn with the working directory set to dir and restores the
// previous working directory on every return path, including failures
// inside fn. Only the directory changes themselves are fatal here; fn's
// error passes through untouched.
func inDir(dir string, fn func() error) error {
	prev, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWorkdir, err)
	}
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("%w: %v", ErrWorkdir, err)
	}
	defer func() {
		// Nothing sensible to do if the restore fails; the process is
		// about to exit either way.
		_ = os.Chdir(prev)
	}()

	return fn()
}
