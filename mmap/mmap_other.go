//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris)

package mmap

import (
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// openImp reads the whole file. There is no portable mapping primitive in
// golang.org/x/sys outside of unix, so other platforms pay for a full read.
func openImp(path string) (*Region, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "mmap: stat %q", path)
	}
	if fi.IsDir() {
		return nil, errors.Errorf("mmap: %q is a directory", path)
	}
	if fi.Size() == 0 {
		return nil, errors.Wrapf(ErrEmpty, "mmap: %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "mmap: reading %q", path)
	}
	glog.V(1).Infof("mmap: read %q (%d bytes) without mapping", path, len(data))
	return &Region{path: path, data: data}, nil
}
