//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package mmap

import (
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

func openImp(path string) (*Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "mmap: opening %q", path)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "mmap: stat %q", path)
	}
	if fi.IsDir() {
		return nil, errors.Errorf("mmap: %q is a directory", path)
	}
	size := fi.Size()
	if size == 0 {
		return nil, errors.Wrapf(ErrEmpty, "mmap: %q", path)
	}
	if int64(int(size)) != size {
		return nil, errors.Errorf("mmap: %q is too large to map (%d bytes)", path, size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Wrapf(err, "mmap: mapping %q", path)
	}
	if err := unix.Madvise(data, unix.MADV_SEQUENTIAL); err != nil {
		glog.V(1).Infof("mmap: madvise(%q, MADV_SEQUENTIAL): %v", path, err)
	}
	glog.V(1).Infof("mmap: mapped %q (%d bytes)", path, size)

	return &Region{
		path:  path,
		data:  data,
		unmap: unix.Munmap,
	}, nil
}
