package extract

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// newFileMode is the mode of a first snapshot before the umask applies.
const newFileMode os.FileMode = 0o666

// Write replaces the file at path with one JSON line per snapshot, in order,
// and returns the number of records written. The parent directory is created
// when missing. The new content is written to a temporary file and renamed
// into place, so a failed write leaves any previous file untouched. A replaced
// file keeps its permissions; a new one gets 0666 less the umask.
func Write(snapshots []ModelSnapshot, path string) (n int, err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("%w: create %s: %w", ErrIO, dir, err)
	}

	mode, keep := newFileMode, false
	if info, err := os.Stat(path); err == nil {
		mode, keep = info.Mode().Perm(), true
	}
	tmpPath := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString())
	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, s := range snapshots {
		if err := enc.Encode(s); err != nil {
			return 0, fmt.Errorf("%w: encode %s: %w", ErrIO, s.Name, err)
		}
	}
	if err := w.Flush(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err := tmp.Sync(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if keep {
		if err := os.Chmod(tmp.Name(), mode); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrIO, err)
		}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, fmt.Errorf("%w: replace %s: %w", ErrIO, path, err)
	}
	return len(snapshots), nil
}
