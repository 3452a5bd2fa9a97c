package installer

import (
	"bytes"
	"fmt"
	"os"
)

// MergeIndex installs the bundle index at src into dst. A missing dst is
// created as a byte-identical copy. An existing dst keeps its content and
// gets a blank line followed by the bundle index appended; an unterminated
// last line is closed first so the separator is always one empty line.
//
// Appending is not idempotent: each call adds the index again.
func MergeIndex(src, dst string) (IndexAction, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return IndexCreated, fmt.Errorf("reading bundle index: %w", err)
	}

	existing, err := os.ReadFile(dst)
	if err != nil {
		if !os.IsNotExist(err) {
			return IndexCreated, fmt.Errorf("reading %s: %w", dst, err)
		}
		if err := copyFile(src, dst); err != nil {
			return IndexCreated, fmt.Errorf("writing %s: %w", dst, err)
		}
		return IndexCreated, nil
	}

	var buf bytes.Buffer
	if len(existing) > 0 && !bytes.HasSuffix(existing, []byte("\n")) {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(data)

	f, err := os.OpenFile(dst, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return IndexAppended, fmt.Errorf("opening %s for append: %w", dst, err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return IndexAppended, fmt.Errorf("appending to %s: %w", dst, err)
	}
	if err := f.Close(); err != nil {
		return IndexAppended, fmt.Errorf("closing %s: %w", dst, err)
	}
	return IndexAppended, nil
}
