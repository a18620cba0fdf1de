package gen

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"
)

// BackupSuffix is appended to the name of replaced file copy.
const BackupSuffix = ".bak"

// Write stores files in dir. Each file is written as a whole.
// If backup is set, existing file is copied to a file with BackupSuffix appended first.
func Write(dir string, files []File, backup bool) error {
	if e := os.MkdirAll(dir, 0o777); e != nil {
		return writeFileError(dir, e)
	}

	for _, f := range files {
		name := filepath.Join(dir, f.Name)
		if backup {
			old, e := os.ReadFile(name)
			if e == nil {
				e = os.WriteFile(name+BackupSuffix, old, 0o666)
			}
			if e != nil && !errors.Is(e, fs.ErrNotExist) {
				return writeFileError(name+BackupSuffix, e)
			}
		}

		if e := os.WriteFile(name, f.Content, 0o666); e != nil {
			return writeFileError(name, e)
		}
	}
	return nil
}

// Diff returns unified diff between files stored in dir and generated files,
// empty string if nothing changed. Missing files are compared as empty.
func Diff(dir string, files []File) (string, error) {
	var result string
	for _, f := range files {
		name := filepath.Join(dir, f.Name)
		old, e := os.ReadFile(name)
		if e != nil && !errors.Is(e, fs.ErrNotExist) {
			return "", readFileError(name, e)
		}

		diff, e := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(old)),
			B:        difflib.SplitLines(string(f.Content)),
			FromFile: name,
			ToFile:   name + " (generated)",
			Context:  3,
		})
		if e != nil {
			return "", readFileError(name, e)
		}
		result += diff
	}
	return result, nil
}
