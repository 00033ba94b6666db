package app

import (
	"os"

	"github.com/dshills/tabstorm/internal/buffer"
)

// Document pairs a buffer with the file it came from.
type Document struct {
	Path  string
	Buf   *buffer.Buffer
	Dirty bool
}

// OpenDocument loads a file into a buffer. A missing file yields an
// empty document pointed at the path, so editing a new song just works.
func OpenDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Document{Path: path, Buf: buffer.New()}, nil
		}
		return nil, err
	}
	return &Document{Path: path, Buf: buffer.FromString(string(data))}, nil
}

// Save writes the buffer back to the document's file.
func (d *Document) Save() error {
	if err := os.WriteFile(d.Path, []byte(d.Buf.Text()), 0o644); err != nil {
		return err
	}
	d.Dirty = false
	return nil
}
