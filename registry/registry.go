// Package registry maps opaque document ids to the shared resource
// handles that hold the raw bytes of each document. A document is
// registered once, when parsing begins, and unregistered when the
// consumer is done with the message built from it. Every window opened
// over the document resolves its handle through the same registry entry.
package registry

import (
	"io"
	"io/fs"
	"sync"

	"github.com/google/uuid"
)

// DocumentID is the opaque identifier assigned to a registered document.
type DocumentID string

// Handle is the shared readable and seekable entity holding the full raw
// bytes of a document. All windows over the document alias this one
// handle, and therefore its single positional cursor.
type Handle interface {
	io.ReadSeeker
}

// StatHandle is implemented by handles that can describe themselves, such
// as *os.File. Windows consult it to answer Stat() calls.
type StatHandle interface {
	Stat() (fs.FileInfo, error)
}

// Resource pairs a registered handle with the mutex that serializes
// cursor movement on it. Each read performed through a window saves,
// moves, and restores the shared cursor; holding this lock for the whole
// sequence keeps interleaved and parallel readers from observing a
// cursor some other window left behind mid-operation.
type Resource struct {
	handle Handle
	mu     *sync.Mutex
}

// Handle returns the underlying shared handle.
func (r *Resource) Handle() Handle {
	return r.handle
}

// Lock acquires the cursor lock for the handle.
func (r *Resource) Lock() {
	r.mu.Lock()
}

// Unlock releases the cursor lock for the handle.
func (r *Resource) Unlock() {
	r.mu.Unlock()
}

// Registry maps document ids to shared resource handles. The zero value
// is not usable; construct one with New(). A Registry is an explicit
// collaborator: pass it to whatever constructs windows and parts rather
// than holding one in package-level state.
type Registry struct {
	mu      sync.Mutex
	entries map[DocumentID]*Resource
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		entries: make(map[DocumentID]*Resource),
	}
}

// Register stores the given handle under a freshly generated document id
// and returns the id. Registration of distinct documents is independent;
// ids never repeat within a process.
func (r *Registry) Register(h Handle) DocumentID {
	id := DocumentID(uuid.NewString())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = &Resource{
		handle: h,
		mu:     &sync.Mutex{},
	}

	return id
}

// Get returns the resource registered under the given id. The second
// return value is false if the id is unknown, which includes ids that
// have been unregistered.
func (r *Registry) Get(id DocumentID) (*Resource, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.entries[id]
	return res, ok
}

// Unregister removes the entry for the given id. Subsequent Get() calls
// for the id will fail. Unregistering an unknown id is a no-op.
func (r *Registry) Unregister(id DocumentID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

// Len returns the number of registered documents.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
