package window

import (
	"io/fs"
	"time"

	"github.com/zostay/go-partstream/registry"
)

// sizer is satisfied by in-memory handles such as *bytes.Reader.
type sizer interface {
	Size() int64
}

// Stat describes the window. The underlying resource's stat record is
// passed through with one change: whenever the underlying size is
// non-zero, the reported size becomes the window length, end minus start.
// Timestamps, mode, and name are the resource's own.
//
// Handles without a Stat() method are described synthetically: the name
// is the document id, the mode and timestamps are zero, and the
// underlying size is taken from a Size() method when the handle has one.
func (s *Stream) Stat() (fs.FileInfo, error) {
	h := s.res.Handle()

	if sh, ok := h.(registry.StatHandle); ok {
		fi, err := sh.Stat()
		if err != nil {
			return nil, err
		}
		return &windowInfo{
			name:    fi.Name(),
			size:    fi.Size(),
			mode:    fi.Mode(),
			modTime: fi.ModTime(),
			window:  s.loc,
		}, nil
	}

	info := &windowInfo{
		name:   string(s.loc.DocumentID),
		window: s.loc,
	}
	if sz, ok := h.(sizer); ok {
		info.size = sz.Size()
	}
	return info, nil
}

type windowInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	window  Locator
}

func (wi *windowInfo) Name() string { return wi.name }

func (wi *windowInfo) Size() int64 {
	if wi.size != 0 {
		return int64(wi.window.Size())
	}
	return wi.size
}

func (wi *windowInfo) Mode() fs.FileMode  { return wi.mode }
func (wi *windowInfo) ModTime() time.Time { return wi.modTime }
func (wi *windowInfo) IsDir() bool        { return false }
func (wi *windowInfo) Sys() any           { return nil }
