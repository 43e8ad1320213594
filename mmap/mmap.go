// Package mmap exposes the contents of a dump file as a read-only byte slice
// backed by a memory mapping, so that multi-gigabyte dumps are paged in on
// demand instead of being read into process memory.
package mmap

import (
	"github.com/pkg/errors"
)

// ErrEmpty is returned by Open for zero-length files, which cannot be mapped.
var ErrEmpty = errors.New("mmap: file is empty")

// Region is a read-only view of an entire file.
//
// The slice returned by Bytes must never be written to; on unix systems it is
// mapped PROT_READ and a write faults. It becomes invalid after Close.
type Region struct {
	path string
	data []byte

	unmap func([]byte) error
}

// Bytes returns the file contents.
func (r *Region) Bytes() []byte {
	return r.data
}

// Len returns the size of the file in bytes.
func (r *Region) Len() int {
	return len(r.data)
}

// Path returns the path the region was opened from.
func (r *Region) Path() string {
	return r.path
}

// Close releases the mapping. Calling Close more than once is a no-op.
func (r *Region) Close() error {
	if r.data == nil {
		return nil
	}
	data := r.data
	r.data = nil
	if r.unmap == nil {
		return nil
	}
	if err := r.unmap(data); err != nil {
		return errors.Wrapf(err, "mmap: unmapping %q", r.path)
	}
	return nil
}

// Open maps the file at path into memory.
//
// Errors name the path and wrap the underlying OS error, so os.IsNotExist and
// friends keep working through errors.Cause.
func Open(path string) (*Region, error) {
	return openImp(path)
}
