package domain

import (
	"fmt"
	"os"
)

// CheckOutputDir returns ErrOutputDir unless dir is an existing directory.
// Runs never create it.
func CheckOutputDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %q", ErrOutputDir, dir)
	}
	return nil
}
