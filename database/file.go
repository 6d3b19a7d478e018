package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// writeFileAtomic writes data next to filename and renames it into place, a
// crash leaves either the old or the new content.
func writeFileAtomic(filename string, data []byte) (err error) {

	dir, base := filepath.Split(filename)
	tmp := filepath.Join(dir, "."+base+"."+uuid.NewString()+".tmp")

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	_, err = f.Write(data)
	if err != nil {
		f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}

	err = f.Sync()
	if err != nil {
		f.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	err = os.Rename(tmp, filename)
	if err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
