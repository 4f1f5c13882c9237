// Package files writes extraction results to disk.
package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// candidateName returns name with _n inserted before the extension; n=0 is name itself.
func candidateName(name string, n int) string {
	if n == 0 {
		return name
	}
	ext := filepath.Ext(name)
	base := name[:len(name)-len(ext)]
	return fmt.Sprintf("%s_%d%s", base, n, ext)
}

// SaveFile saves data to a new file in dir. If name is taken, _1, _2, etc. are
// inserted before the extension. The name is reduced to its base element to
// prevent path traversal. Returns the final path used.
//
// Files are created exclusively, so concurrent saves of the same name never
// overwrite each other.
func SaveFile(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	cleanName := filepath.Base(name)
	for i := 0; ; i++ {
		path := filepath.Join(dir, candidateName(cleanName, i))
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create file: %w", err)
		}

		_, werr := f.Write(data)
		cerr := f.Close()
		if err := errors.Join(werr, cerr); err != nil {
			return "", fmt.Errorf("failed to write file: %w", err)
		}
		return path, nil
	}
}

// SaveEmails writes one address per line to a new file in dir.
func SaveEmails(dir, name string, emails []string) (string, error) {
	var b strings.Builder
	for _, e := range emails {
		b.WriteString(e)
		b.WriteByte('\n')
	}
	return SaveFile(dir, name, []byte(b.String()))
}
