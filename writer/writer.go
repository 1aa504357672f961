// Package writer re-serializes a part.Part tree back into bytes. Writing is
// just part.Part.WriteTo; this package exists as the spec's own named
// collaborator for that operation, and as a home for the small conveniences
// built on top of it (writing to a path, or to a fresh in-memory buffer).
package writer

import (
	"bytes"
	"io"
	"os"

	"github.com/mimeforge/mimetree/part"
)

// Write re-emits p (and, transitively, every descendant it owns) to w,
// returning the number of bytes written. Any part of the tree still
// unparsed is pulled from its underlying source on demand as WriteTo walks
// it, consistent with the lazy streaming contract: writing a tree that has
// never been traversed still produces the complete, correct output.
func Write(p part.Part, w io.Writer) (int64, error) {
	return p.WriteTo(w)
}

// WriteToFile re-emits p to the file at path, creating it if necessary and
// truncating it if it already exists.
func WriteToFile(p part.Part, path string) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	n, err := Write(p, f)
	if err != nil {
		return n, err
	}
	return n, f.Close()
}

// Bytes re-emits p into a freshly allocated byte slice.
func Bytes(p part.Part) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Write(p, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
