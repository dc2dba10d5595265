package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataDirName marks a directory holding project-local notes.
const DataDirName = ".tempnotes"

// FindRoot looks upwards from startDir for a directory containing DataDirName
// and returns the absolute path of the DataDirName directory itself.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for dir := abs; ; {
		candidate := filepath.Join(dir, DataDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("no %s directory found above %s", DataDirName, abs)
}
